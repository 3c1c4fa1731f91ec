package main

import (
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

type pathOp int

const (
	opMove pathOp = iota
	opLine
	opQuad
	opCube
	opClose
)

func (op pathOp) points() int {
	switch op {
	case opMove, opLine:
		return 1
	case opQuad:
		return 2
	case opCube:
		return 3
	}
	return 0
}

type pathSeg struct {
	op  pathOp
	pts [3]Point // control points then the end point; opMove/opLine use pts[0]
}

// Outline is a vector shape in canvas coordinates. Glyphs and sticker shapes
// are built as outlines so the stroke, fill and shadow passes can be drawn
// separately.
type Outline struct {
	segs []pathSeg
}

func (o *Outline) MoveTo(x, y float64) {
	o.segs = append(o.segs, pathSeg{op: opMove, pts: [3]Point{{x, y}}})
}

func (o *Outline) LineTo(x, y float64) {
	o.segs = append(o.segs, pathSeg{op: opLine, pts: [3]Point{{x, y}}})
}

func (o *Outline) QuadTo(cx, cy, x, y float64) {
	o.segs = append(o.segs, pathSeg{op: opQuad, pts: [3]Point{{cx, cy}, {x, y}}})
}

func (o *Outline) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	o.segs = append(o.segs, pathSeg{op: opCube, pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (o *Outline) Close() {
	o.segs = append(o.segs, pathSeg{op: opClose})
}

func (o Outline) Empty() bool { return len(o.segs) == 0 }

func (o Outline) transform(fn func(Point) Point) Outline {
	out := Outline{segs: make([]pathSeg, len(o.segs))}
	for i, s := range o.segs {
		out.segs[i].op = s.op
		for j := 0; j < s.op.points(); j++ {
			out.segs[i].pts[j] = fn(s.pts[j])
		}
	}
	return out
}

func (o Outline) Translate(dx, dy float64) Outline {
	return o.transform(func(p Point) Point { return Point{p.X + dx, p.Y + dy} })
}

// Rotate turns the outline clockwise (y grows downward) by degrees about c.
func (o Outline) Rotate(degrees float64, c Point) Outline {
	if degrees == 0 {
		return o
	}
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return o.transform(func(p Point) Point {
		dx, dy := p.X-c.X, p.Y-c.Y
		return Point{c.X + dx*cos - dy*sin, c.Y + dx*sin + dy*cos}
	})
}

// Bounds returns the box around every point, control points included.
func (o Outline) Bounds() (min, max Point, ok bool) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	grow := func(p Point) {
		min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
		max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
		ok = true
	}
	for _, s := range o.segs {
		for j := 0; j < s.op.points(); j++ {
			grow(s.pts[j])
		}
	}
	return min, max, ok
}

// appendTo replays the outline as the current path of dc.
func (o Outline) appendTo(dc *gg.Context) {
	for _, s := range o.segs {
		switch s.op {
		case opMove:
			dc.MoveTo(s.pts[0].X, s.pts[0].Y)
		case opLine:
			dc.LineTo(s.pts[0].X, s.pts[0].Y)
		case opQuad:
			dc.QuadraticTo(s.pts[0].X, s.pts[0].Y, s.pts[1].X, s.pts[1].Y)
		case opCube:
			dc.CubicTo(s.pts[0].X, s.pts[0].Y, s.pts[1].X, s.pts[1].Y, s.pts[2].X, s.pts[2].Y)
		case opClose:
			dc.ClosePath()
		}
	}
}

func strokeOutline(dc *gg.Context, o Outline, c color.Color, width float64) {
	if width <= 0 || o.Empty() {
		return
	}
	o.appendTo(dc)
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	dc.Stroke()
}

func fillOutline(dc *gg.Context, o Outline, c color.Color) {
	if o.Empty() {
		return
	}
	o.appendTo(dc)
	dc.SetColor(c)
	dc.Fill()
}

var shadowColor = color.NRGBA{0, 0, 0, 204}

// drawStrokeShadow paints a blurred, offset copy of the outline's stroke.
// Only the region around the outline that can reach the surface is
// rasterized and blurred, so the layer never exceeds the surface plus the
// blur margin however large the outline is.
func drawStrokeShadow(dc *gg.Context, o Outline, width float64) {
	if width <= 0 {
		return
	}
	lo, hi, ok := o.Bounds()
	if !ok {
		return
	}
	pad := width/2 + shadowBlur*2
	x0 := int(math.Floor(lo.X - pad))
	y0 := int(math.Floor(lo.Y - pad))
	x1 := int(math.Ceil(hi.X + pad))
	y1 := int(math.Ceil(hi.Y + pad))

	// Layer pixel x lands on surface pixel x+shadowOffsetX.
	margin := int(math.Ceil(shadowBlur * 2))
	x0 = max(x0, -shadowOffsetX-margin)
	y0 = max(y0, -shadowOffsetY-margin)
	x1 = min(x1, dc.Width()-shadowOffsetX+margin)
	y1 = min(y1, dc.Height()-shadowOffsetY+margin)
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return
	}

	layer := gg.NewContext(w, h)
	strokeOutline(layer, o.Translate(float64(-x0), float64(-y0)), shadowColor, width)
	blurred := imaging.Blur(layer.Image(), shadowBlur/2)
	dc.DrawImage(blurred, x0+shadowOffsetX, y0+shadowOffsetY)
}
