package main

import (
	"math"
	"testing"
)

// fixedMeasurer gives every character the same advance.
type fixedMeasurer float64

func (m fixedMeasurer) AdvanceWidth(r rune) float64 { return float64(m) }

func cellsOf(s, color string) []CharacterCell {
	var cells []CharacterCell
	for _, r := range s {
		cells = append(cells, CharacterCell{Char: r, Color: color})
	}
	return cells
}

func TestLayoutTextTwoLines(t *testing.T) {
	cfg := defaultTextConfig()
	cfg.Cells = []CharacterCell{
		{Char: 'H', Color: "#fff"},
		{Char: lineBreak},
		{Char: 'I', Color: "#f00"},
	}
	cfg.FontSize = 100
	cfg.LineHeight = 1.0
	cfg.Anchor = Point{640, 360}

	layout := LayoutText(cfg, fixedMeasurer(60))
	if len(layout.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(layout.Lines))
	}
	if layout.Lines[0].Y != 310 || layout.Lines[1].Y != 410 {
		t.Fatalf("Expected lines at y=310 and y=410, got %v and %v", layout.Lines[0].Y, layout.Lines[1].Y)
	}

	h := layout.Lines[0].Glyphs[0]
	if h.Char != 'H' || h.Color != "#fff" || h.X != 640 || h.Y != 310 {
		t.Fatalf("Unexpected draw for H: %+v", h)
	}
	i := layout.Lines[1].Glyphs[0]
	if i.Char != 'I' || i.Color != "#f00" || i.X != 640 || i.Y != 410 {
		t.Fatalf("Unexpected draw for I: %+v", i)
	}
}

func TestLayoutTextLineSpacing(t *testing.T) {
	cfg := defaultTextConfig()
	cfg.Cells = cellsOf("ONE\nTWO\n\nFOUR\n", "#ffffff")
	cfg.FontSize = 160
	cfg.LineHeight = 1.1

	layout := LayoutText(cfg, fixedMeasurer(50))
	if len(layout.Lines) != 5 {
		t.Fatalf("Expected 5 lines (empty and trailing lines kept), got %d", len(layout.Lines))
	}
	step := 160 * 1.1
	for i := 1; i < len(layout.Lines); i++ {
		got := layout.Lines[i].Y - layout.Lines[i-1].Y
		if math.Abs(got-step) > 1e-9 {
			t.Fatalf("Line %d: expected spacing %v, got %v", i, step, got)
		}
	}
	// Block is centered vertically on the anchor.
	mid := (layout.Lines[0].Y + layout.Lines[4].Y) / 2
	if math.Abs(mid-cfg.Anchor.Y) > 1e-9 {
		t.Fatalf("Expected block centered at %v, got %v", cfg.Anchor.Y, mid)
	}
	if len(layout.Lines[2].Glyphs) != 0 || len(layout.Lines[4].Glyphs) != 0 {
		t.Fatal("Expected empty lines to have no draws")
	}
}

func TestLayoutTextSingleCharacterCentered(t *testing.T) {
	cfg := defaultTextConfig()
	cfg.Cells = cellsOf("W", "#ffffff")
	cfg.Anchor = Point{123, 456}

	for _, adv := range []float64{0, 17, 90} {
		glyphs := LayoutText(cfg, fixedMeasurer(adv)).Glyphs()
		if len(glyphs) != 1 {
			t.Fatalf("Expected 1 glyph, got %d", len(glyphs))
		}
		if glyphs[0].X != 123 || glyphs[0].Y != 456 {
			t.Fatalf("advance %v: expected glyph at anchor, got (%v, %v)", adv, glyphs[0].X, glyphs[0].Y)
		}
	}
}

func TestLayoutTextAdvanceAccumulates(t *testing.T) {
	cfg := defaultTextConfig()
	cfg.Cells = cellsOf("ABCD", "#ffffff")
	cfg.Anchor = Point{640, 360}

	line := LayoutText(cfg, fixedMeasurer(40)).Lines[0]
	if line.Width != 160 {
		t.Fatalf("Expected width 160, got %v", line.Width)
	}
	want := []float64{580, 620, 660, 700}
	for i, g := range line.Glyphs {
		if g.X != want[i] {
			t.Fatalf("Glyph %d: expected x=%v, got %v", i, want[i], g.X)
		}
	}
}

func TestLayoutTextEmpty(t *testing.T) {
	cfg := defaultTextConfig()
	if got := LayoutText(cfg, fixedMeasurer(10)); len(got.Lines) != 0 || len(got.Glyphs()) != 0 {
		t.Fatalf("Expected no draws for empty caption, got %+v", got)
	}
}

func TestLayoutTextWithFontMeasurer(t *testing.T) {
	fonts := NewFontSet("")
	cfg := defaultTextConfig()
	cfg.FontFamily = "Go Mono"
	cfg.Cells = cellsOf("il", "#ffffff")

	m := fonts.Measurer(cfg.FontFamily, float64(cfg.FontSize))
	if m.AdvanceWidth('i') <= 0 || m.AdvanceWidth('i') != m.AdvanceWidth('W') {
		t.Fatal("Expected equal non-zero advances for a monospace font")
	}
	line := LayoutText(cfg, m).Lines[0]
	if math.Abs(line.Glyphs[0].X+line.Glyphs[1].X-2*cfg.Anchor.X) > 1e-6 {
		t.Fatalf("Expected glyphs symmetric around the anchor, got %v and %v", line.Glyphs[0].X, line.Glyphs[1].X)
	}
}
