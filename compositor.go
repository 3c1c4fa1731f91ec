package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// ErrNoBackground means the current background reference has not finished
// loading (or failed), so nothing can be drawn.
var ErrNoBackground = errors.New("no background image available")

// Compositor owns the output surface. Every Redraw is total: clear,
// background, text, stickers in insertion order, then the selection
// highlight.
type Compositor struct {
	dc    *gg.Context
	fonts *FontSet

	bgRef string
	bg    image.Image // already stretched to the surface size
}

func NewCompositor(width, height int, fonts *FontSet) *Compositor {
	return &Compositor{dc: gg.NewContext(width, height), fonts: fonts}
}

func (c *Compositor) Size() Size {
	return Size{float64(c.dc.Width()), float64(c.dc.Height())}
}

// Image is the current frame.
func (c *Compositor) Image() image.Image { return c.dc.Image() }

// SetBackground stores a loaded image for ref.
func (c *Compositor) SetBackground(ref string, img image.Image) {
	c.bgRef = ref
	c.bg = img
}

// Ready reports whether the image for ref is loaded.
func (c *Compositor) Ready(ref string) bool {
	return c.bg != nil && c.bgRef == ref
}

// Redraw renders the live frame with the selection highlight.
func (c *Compositor) Redraw(doc *Document) error {
	return c.render(doc, true)
}

// render leaves the previous frame untouched when the background for the
// document's reference is not loaded.
func (c *Compositor) render(doc *Document, showSelection bool) error {
	if !c.Ready(doc.background) {
		return ErrNoBackground
	}

	dc := c.dc
	dc.Identity()
	dc.ClearPath()
	dc.SetColor(color.Transparent)
	dc.Clear()
	dc.DrawImage(c.bg, 0, 0)

	if err := c.drawText(doc.text); err != nil {
		return fmt.Errorf("failed to draw caption: %w", err)
	}
	for _, dec := range doc.decorations {
		if err := drawDecoration(dc, c.fonts, dec, doc.text.ShadowEnabled); err != nil {
			return fmt.Errorf("failed to draw sticker %s: %w", dec.ID, err)
		}
	}

	if !showSelection {
		return nil
	}
	switch sel := doc.selection; sel.Kind {
	case SelectText:
		drawHighlight(dc, textHighlight(doc.text.Anchor))
	case SelectDecoration:
		if dec, ok := doc.Decoration(sel.ID); ok {
			drawHighlight(dc, decorationHighlight(dec))
		}
	}
	return nil
}

// drawText draws each character as outline then fill, in layout order. The
// shadow sits under the outline only.
func (c *Compositor) drawText(cfg TextLayoutConfig) error {
	size := float64(cfg.FontSize)
	layout := LayoutText(cfg, c.fonts.Measurer(cfg.FontFamily, size))
	if len(layout.Lines) == 0 {
		return nil
	}
	mid, err := c.fonts.MiddleBaseline(cfg.FontFamily, size)
	if err != nil {
		return err
	}

	stroke := colorOr(cfg.StrokeColor, color.Black)
	strokeWidth := float64(cfg.StrokeWidth)
	for _, g := range layout.Glyphs() {
		o, _, err := c.fonts.Glyph(cfg.FontFamily, size, g.Char)
		if err != nil {
			return err
		}
		o = o.Translate(g.X-g.Advance/2, g.Y+mid)
		if cfg.ShadowEnabled {
			drawStrokeShadow(c.dc, o, strokeWidth)
		}
		strokeOutline(c.dc, o, stroke, strokeWidth)
		fillOutline(c.dc, o, colorOr(g.Color, color.Black))
	}
	return nil
}
