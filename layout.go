package main

// GlyphMeasurer reports per-character advance widths at a fixed font and size.
type GlyphMeasurer interface {
	AdvanceWidth(r rune) float64
}

// GlyphDraw is one character placed by the layout engine. X and Y are the
// glyph's center: X is the running pen position plus half its advance, Y is
// the line's vertical middle.
type GlyphDraw struct {
	Char    rune
	X, Y    float64
	Advance float64
	Color   string
}

type LineLayout struct {
	Y      float64
	Width  float64
	Glyphs []GlyphDraw
}

type TextLayout struct {
	Lines []LineLayout
}

// Glyphs returns every draw in line order.
func (l TextLayout) Glyphs() []GlyphDraw {
	var out []GlyphDraw
	for _, line := range l.Lines {
		out = append(out, line.Glyphs...)
	}
	return out
}

// splitLines breaks cells at line-break sentinels. Consecutive or trailing
// breaks produce empty lines.
func splitLines(cells []CharacterCell) [][]CharacterCell {
	lines := [][]CharacterCell{nil}
	for _, c := range cells {
		if c.IsLineBreak() {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], c)
	}
	return lines
}

// LayoutText centers each line horizontally on the anchor and the whole
// block vertically around it. An empty caption yields no lines.
func LayoutText(cfg TextLayoutConfig, m GlyphMeasurer) TextLayout {
	if len(cfg.Cells) == 0 {
		return TextLayout{}
	}
	lines := splitLines(cfg.Cells)
	step := float64(cfg.FontSize) * cfg.LineHeight
	top := cfg.Anchor.Y - float64(len(lines)-1)*step/2

	out := TextLayout{Lines: make([]LineLayout, len(lines))}
	for i, cells := range lines {
		line := LineLayout{Y: top + float64(i)*step}
		advances := make([]float64, len(cells))
		for j, c := range cells {
			advances[j] = m.AdvanceWidth(c.Char)
			line.Width += advances[j]
		}

		x := cfg.Anchor.X - line.Width/2
		for j, c := range cells {
			line.Glyphs = append(line.Glyphs, GlyphDraw{
				Char:    c.Char,
				X:       x + advances[j]/2,
				Y:       line.Y,
				Advance: advances[j],
				Color:   c.Color,
			})
			x += advances[j]
		}
		out.Lines[i] = line
	}
	return out
}
