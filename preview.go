package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// previewGrid is the terminal area showing the surface. Each cell holds two
// vertically stacked pixels drawn with an upper half block.
type previewGrid struct {
	cols, rows int
}

// fitPreview picks the largest 16:9 grid that fits width x height cells.
func fitPreview(width, height int) previewGrid {
	if width < 1 || height < 1 {
		return previewGrid{}
	}
	cols := width
	rows := cols * canvasHeight / canvasWidth / 2
	if rows > height {
		rows = height
		cols = rows * 2 * canvasWidth / canvasHeight
	}
	if cols < 1 || rows < 1 {
		return previewGrid{}
	}
	return previewGrid{cols: cols, rows: rows}
}

// Size is the displayed size used for pointer scaling.
func (g previewGrid) Size() Size {
	return Size{float64(g.cols), float64(g.rows)}
}

// Contains reports whether the cell (x, y) lies inside the preview.
func (g previewGrid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}

// CellCenter is the display-space point for a mouse cell.
func (g previewGrid) CellCenter(x, y int) Point {
	return Point{float64(x) + 0.5, float64(y) + 0.5}
}

type previewCache struct {
	grid  previewGrid
	frame int
	text  string
}

func renderPreview(img image.Image, g previewGrid) string {
	if g.cols == 0 || g.rows == 0 {
		return ""
	}
	small := imaging.Resize(img, g.cols, g.rows*2, imaging.Box)

	var b strings.Builder
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			top := small.NRGBAAt(x, 2*y)
			bottom := small.NRGBAAt(x, 2*y+1)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(overBlack(top))).
				Background(lipgloss.Color(overBlack(bottom)))
			b.WriteString(style.Render("▀"))
		}
		if y < g.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// overBlack flattens a pixel onto black and formats it as #rrggbb.
func overBlack(c color.NRGBA) string {
	a := uint32(c.A)
	return fmt.Sprintf("#%02x%02x%02x", uint32(c.R)*a/255, uint32(c.G)*a/255, uint32(c.B)*a/255)
}
