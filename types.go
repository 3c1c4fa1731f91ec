package main

import (
	"fmt"
	"math"
	"strings"
)

type Point struct {
	X, Y float64
}

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Size struct {
	W, H float64
}

// lineBreak is the cell value that splits the caption into lines.
const lineBreak = '\n'

type CharacterCell struct {
	Char  rune
	Color string
}

func (c CharacterCell) IsLineBreak() bool { return c.Char == lineBreak }

// TextLayoutConfig describes the caption. Anchor is the visual center of the
// whole (possibly multi-line) block.
type TextLayoutConfig struct {
	Cells         []CharacterCell
	FontFamily    string
	FontSize      int
	StrokeColor   string
	StrokeWidth   int
	LineHeight    float64
	Anchor        Point
	ShadowEnabled bool
}

func defaultTextConfig() TextLayoutConfig {
	return TextLayoutConfig{
		FontFamily:    defaultFontFamily,
		FontSize:      defaultFontSize,
		StrokeColor:   defaultStrokeColor,
		StrokeWidth:   defaultStrokeWidth,
		LineHeight:    defaultLineHeight,
		Anchor:        Point{canvasWidth / 2, canvasHeight / 2},
		ShadowEnabled: true,
	}
}

// Caption returns the cells joined back into a string.
func (t TextLayoutConfig) Caption() string {
	var b strings.Builder
	for _, c := range t.Cells {
		b.WriteRune(c.Char)
	}
	return b.String()
}

func (t TextLayoutConfig) clone() TextLayoutConfig {
	out := t
	out.Cells = append([]CharacterCell(nil), t.Cells...)
	return out
}

type SymbolKind int

const (
	SymbolExclamation SymbolKind = iota
	SymbolQuestion
	SymbolArrow
	SymbolStar
)

var symbolKinds = []SymbolKind{SymbolExclamation, SymbolQuestion, SymbolArrow, SymbolStar}

func (k SymbolKind) String() string {
	switch k {
	case SymbolExclamation:
		return "!"
	case SymbolQuestion:
		return "?"
	case SymbolArrow:
		return "arrow"
	case SymbolStar:
		return "star"
	default:
		return fmt.Sprintf("SymbolKind(%d)", int(k))
	}
}

// Glyph is the character shown for the kind in menus and status text.
func (k SymbolKind) Glyph() string {
	switch k {
	case SymbolArrow:
		return "➡"
	case SymbolStar:
		return "★"
	default:
		return k.String()
	}
}

func ParseSymbolKind(s string) (SymbolKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "!", "exclamation":
		return SymbolExclamation, nil
	case "?", "question":
		return SymbolQuestion, nil
	case "arrow", "➡":
		return SymbolArrow, nil
	case "star", "★":
		return SymbolStar, nil
	}
	return 0, fmt.Errorf("unknown symbol kind %q", s)
}

// Decoration is a sticker. Size drives both the glyph size and its hit radius.
type Decoration struct {
	ID              string
	Kind            SymbolKind
	Position        Point
	Size            int
	Color           string
	RotationDegrees int
	OutlineColor    string
}

type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectText
	SelectDecoration
)

type Selection struct {
	Kind SelectionKind
	ID   string // decoration id when Kind == SelectDecoration
}

func NoSelection() Selection { return Selection{} }
func TextSelection() Selection { return Selection{Kind: SelectText} }
func DecorationSelection(id string) Selection { return Selection{Kind: SelectDecoration, ID: id} }

func (s Selection) IsNone() bool { return s.Kind == SelectNone }

func (s Selection) IsDecoration(id string) bool {
	return s.Kind == SelectDecoration && s.ID == id
}

func (s Selection) String() string {
	switch s.Kind {
	case SelectText:
		return "text"
	case SelectDecoration:
		return "sticker " + s.ID
	default:
		return "none"
	}
}
