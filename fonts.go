package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// fontChoices is the family list offered by the editor. The first seven come
// from the caption presets; they load from the font directory when present.
var fontChoices = []string{
	"Black Han Sans",
	"Do Hyeon",
	"Jua",
	"Nanum Gothic",
	"Nanum Pen Script",
	"Gowun Batang",
	"Sunflower",
	"Go Bold",
	"Go",
	"Go Mono",
}

var bundledFonts = map[string][]byte{
	"go":             goregular.TTF,
	"go regular":     goregular.TTF,
	"go medium":      gomedium.TTF,
	"go bold":        gobold.TTF,
	"go italic":      goitalic.TTF,
	"go bold italic": gobolditalic.TTF,
	"go mono":        gomono.TTF,
	"go mono bold":   gomonobold.TTF,
}

// decorationFamily is used for the "!" and "?" stickers.
const decorationFamily = "Go Bold"

type glyphKey struct {
	family string
	size   float64
	r      rune
}

type glyph struct {
	outline Outline // relative to the pen position on the baseline
	advance float64
}

// loadedFont keeps both parses of one font file: truetype for advances,
// sfnt for outlines and vertical metrics.
type loadedFont struct {
	tt *truetype.Font
	sf *sfnt.Font
	// mid is (ascent - descent) / 2 for a size of one pixel. Unhinted
	// metrics scale linearly, so it is computed once per font.
	mid float64
}

// FontSet resolves font families and caches parsed fonts and glyph
// outlines. It is used from the event loop only.
type FontSet struct {
	dir      string
	fonts    map[string]*loadedFont
	glyphs   map[glyphKey]glyph
	fallback *loadedFont
	buf      sfnt.Buffer
}

func NewFontSet(dir string) *FontSet {
	return &FontSet{
		dir:    dir,
		fonts:  make(map[string]*loadedFont),
		glyphs: make(map[glyphKey]glyph),
	}
}

// font returns the parsed font for family. Lookup order: font directory,
// bundled Go fonts, bold fallback.
func (fs *FontSet) font(family string) (*loadedFont, error) {
	key := strings.ToLower(strings.TrimSpace(family))
	if f, ok := fs.fonts[key]; ok {
		return f, nil
	}

	if data, ok := fs.readFromDir(family); ok {
		f, err := fs.parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %q: %w", family, err)
		}
		fs.fonts[key] = f
		return f, nil
	}

	if data, ok := bundledFonts[key]; ok {
		f, err := fs.parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse bundled font %q: %w", family, err)
		}
		fs.fonts[key] = f
		return f, nil
	}

	f, err := fs.fallbackFont()
	if err != nil {
		return nil, err
	}
	fs.fonts[key] = f
	return f, nil
}

func (fs *FontSet) fallbackFont() (*loadedFont, error) {
	if fs.fallback != nil {
		return fs.fallback, nil
	}
	f, err := fs.parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fallback font: %w", err)
	}
	fs.fallback = f
	return f, nil
}

func (fs *FontSet) parse(data []byte) (*loadedFont, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	// Metrics at one em per font unit keep full precision.
	upem := int(sf.UnitsPerEm())
	m, err := sf.Metrics(&fs.buf, fixed.I(upem), font.HintingNone)
	if err != nil {
		return nil, err
	}
	mid := (unfix(m.Ascent) - unfix(m.Descent)) / 2 / float64(upem)
	return &loadedFont{tt: tt, sf: sf, mid: mid}, nil
}

func (fs *FontSet) readFromDir(family string) ([]byte, bool) {
	if fs.dir == "" {
		return nil, false
	}
	compact := strings.ReplaceAll(family, " ", "")
	for _, name := range []string{compact + ".ttf", family + ".ttf", compact + "-Regular.ttf"} {
		data, err := os.ReadFile(filepath.Join(fs.dir, name))
		if err == nil {
			return data, true
		}
	}
	return nil, false
}

func scaleFor(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

func unfix(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func unfixPoint(p fixed.Point26_6) Point {
	return Point{unfix(p.X), unfix(p.Y)}
}

// Glyph returns the outline and advance width of r at size pixels.
func (fs *FontSet) Glyph(family string, size float64, r rune) (Outline, float64, error) {
	key := glyphKey{strings.ToLower(family), size, r}
	if g, ok := fs.glyphs[key]; ok {
		return g.outline, g.advance, nil
	}
	f, err := fs.font(family)
	if err != nil {
		return Outline{}, 0, err
	}

	idx, err := f.sf.GlyphIndex(&fs.buf, r)
	if err != nil {
		return Outline{}, 0, fmt.Errorf("failed to find glyph %q: %w", r, err)
	}
	segs, err := f.sf.LoadGlyph(&fs.buf, idx, scaleFor(size), nil)
	if err != nil {
		return Outline{}, 0, fmt.Errorf("failed to load glyph %q: %w", r, err)
	}
	g := glyph{
		outline: segmentOutline(segs),
		advance: unfix(f.tt.HMetric(scaleFor(size), f.tt.Index(r)).AdvanceWidth),
	}
	fs.glyphs[key] = g
	return g.outline, g.advance, nil
}

// segmentOutline copies sfnt segments (y grows downward) into an outline,
// closing every contour so strokes join at the start point.
func segmentOutline(segs sfnt.Segments) Outline {
	var o Outline
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				o.Close()
			}
			p := unfixPoint(s.Args[0])
			o.MoveTo(p.X, p.Y)
			open = true
		case sfnt.SegmentOpLineTo:
			p := unfixPoint(s.Args[0])
			o.LineTo(p.X, p.Y)
		case sfnt.SegmentOpQuadTo:
			c, p := unfixPoint(s.Args[0]), unfixPoint(s.Args[1])
			o.QuadTo(c.X, c.Y, p.X, p.Y)
		case sfnt.SegmentOpCubeTo:
			c1, c2, p := unfixPoint(s.Args[0]), unfixPoint(s.Args[1]), unfixPoint(s.Args[2])
			o.CubeTo(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
		}
	}
	if open {
		o.Close()
	}
	return o
}

// AdvanceWidth reports the advance of r without loading its outline.
func (fs *FontSet) AdvanceWidth(family string, size float64, r rune) (float64, error) {
	if g, ok := fs.glyphs[glyphKey{strings.ToLower(family), size, r}]; ok {
		return g.advance, nil
	}
	f, err := fs.font(family)
	if err != nil {
		return 0, err
	}
	return unfix(f.tt.HMetric(scaleFor(size), f.tt.Index(r)).AdvanceWidth), nil
}

// MiddleBaseline is the distance from a line's vertical middle to its
// baseline, so text drawn at y is centered on y.
func (fs *FontSet) MiddleBaseline(family string, size float64) (float64, error) {
	f, err := fs.font(family)
	if err != nil {
		return 0, err
	}
	return f.mid * size, nil
}

// Measurer binds a family and size for the layout engine.
func (fs *FontSet) Measurer(family string, size float64) GlyphMeasurer {
	return fontMeasurer{fs: fs, family: family, size: size}
}

type fontMeasurer struct {
	fs     *FontSet
	family string
	size   float64
}

func (m fontMeasurer) AdvanceWidth(r rune) float64 {
	w, err := m.fs.AdvanceWidth(m.family, m.size, r)
	if err != nil {
		return 0
	}
	return w
}
