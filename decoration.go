package main

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// symbolOutline builds the sticker shape centered on the origin with a
// height of about size, before rotation.
func symbolOutline(fonts *FontSet, kind SymbolKind, size float64) (Outline, error) {
	switch kind {
	case SymbolStar:
		return starOutline(size), nil
	case SymbolArrow:
		return arrowOutline(size), nil
	default:
		return glyphSymbol(fonts, kind.String(), size)
	}
}

// glyphSymbol centers a font glyph on the origin, horizontally by advance
// and vertically by the middle baseline.
func glyphSymbol(fonts *FontSet, s string, size float64) (Outline, error) {
	r := []rune(s)[0]
	o, advance, err := fonts.Glyph(decorationFamily, size, r)
	if err != nil {
		return Outline{}, err
	}
	mid, err := fonts.MiddleBaseline(decorationFamily, size)
	if err != nil {
		return Outline{}, err
	}
	return o.Translate(-advance/2, mid), nil
}

// starOutline is a five-pointed star whose bounding box is centered on the
// origin.
func starOutline(size float64) Outline {
	outer := size / 2
	inner := outer * 0.382
	// Lowest points sit at outer*cos(36deg); shift so top and bottom balance.
	shift := (outer - outer*math.Cos(math.Pi/5)) / 2
	var o Outline
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		x, y := r*math.Cos(a), r*math.Sin(a)+shift
		if i == 0 {
			o.MoveTo(x, y)
		} else {
			o.LineTo(x, y)
		}
	}
	o.Close()
	return o
}

// arrowOutline is a right-pointing block arrow about size wide.
func arrowOutline(size float64) Outline {
	half := size / 2
	shaft := size * 0.12
	head := size * 0.3
	neck := size * 0.05
	var o Outline
	o.MoveTo(-half, -shaft)
	o.LineTo(neck, -shaft)
	o.LineTo(neck, -head)
	o.LineTo(half, 0)
	o.LineTo(neck, head)
	o.LineTo(neck, shaft)
	o.LineTo(-half, shaft)
	o.Close()
	return o
}

// drawDecoration paints one sticker: optional shadow under the outline
// stroke, the stroke at 15% of size, then the fill.
func drawDecoration(dc *gg.Context, fonts *FontSet, dec Decoration, shadow bool) error {
	size := float64(dec.Size)
	shape, err := symbolOutline(fonts, dec.Kind, size)
	if err != nil {
		return err
	}
	shape = shape.Translate(dec.Position.X, dec.Position.Y).
		Rotate(float64(dec.RotationDegrees), dec.Position)

	strokeWidth := size * decorationStrokeRatio
	if shadow {
		drawStrokeShadow(dc, shape, strokeWidth)
	}
	strokeOutline(dc, shape, colorOr(dec.OutlineColor, color.Black), strokeWidth)
	fillOutline(dc, shape, colorOr(dec.Color, color.Black))
	return nil
}

// decorationHighlight is the dashed square drawn around a selected sticker,
// rotated with it.
func decorationHighlight(dec Decoration) Outline {
	side := float64(dec.Size) + 2*highlightPadding
	return rectOutline(dec.Position, side, side).Rotate(float64(dec.RotationDegrees), dec.Position)
}

func textHighlight(anchor Point) Outline {
	return rectOutline(anchor, textHitboxWidth, textHitboxHeight)
}

func rectOutline(center Point, w, h float64) Outline {
	x0, y0 := center.X-w/2, center.Y-h/2
	var o Outline
	o.MoveTo(x0, y0)
	o.LineTo(x0+w, y0)
	o.LineTo(x0+w, y0+h)
	o.LineTo(x0, y0+h)
	o.Close()
	return o
}

func drawHighlight(dc *gg.Context, o Outline) {
	o.appendTo(dc)
	dc.SetColor(colorOr(highlightColor, color.Black))
	dc.SetLineWidth(highlightWidth)
	dc.SetLineJoin(gg.LineJoinBevel)
	dc.SetLineCap(gg.LineCapButt)
	dc.SetDash(highlightDash, highlightGap)
	dc.Stroke()
	dc.SetDash()
}
