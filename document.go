package main

import (
	"math/rand"
)

// Document is the editor state: background reference, caption, stickers and
// the current selection. Every mutation goes through a method that ends with
// requestRedraw, and all of them run on the event loop.
type Document struct {
	background  string
	text        TextLayoutConfig
	decorations []Decoration
	selection   Selection

	onRedraw func()
	newID    func() string
}

func NewDocument(text TextLayoutConfig) *Document {
	d := &Document{text: text.clone()}
	d.newID = func() string { return randomID(9) }
	return d
}

// SetRedrawHandler installs the callback run after every mutation.
func (d *Document) SetRedrawHandler(fn func()) {
	d.onRedraw = fn
}

func (d *Document) requestRedraw() {
	if d.onRedraw != nil {
		d.onRedraw()
	}
}

func (d *Document) Background() string { return d.background }
func (d *Document) Text() TextLayoutConfig { return d.text.clone() }
func (d *Document) Selection() Selection { return d.selection }

func (d *Document) Decorations() []Decoration {
	return append([]Decoration(nil), d.decorations...)
}

func (d *Document) Decoration(id string) (Decoration, bool) {
	if i := d.indexOf(id); i >= 0 {
		return d.decorations[i], true
	}
	return Decoration{}, false
}

// SelectedDecoration returns the selected sticker, if the selection is one
// and it still exists.
func (d *Document) SelectedDecoration() (Decoration, bool) {
	if d.selection.Kind != SelectDecoration {
		return Decoration{}, false
	}
	return d.Decoration(d.selection.ID)
}

func (d *Document) indexOf(id string) int {
	for i := range d.decorations {
		if d.decorations[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) SetBackground(ref string) {
	d.background = ref
	d.requestRedraw()
}

func (d *Document) SetSelection(sel Selection) {
	d.selection = sel
	d.requestRedraw()
}

func (d *Document) UpdateTextConfig(fn func(*TextLayoutConfig)) {
	fn(&d.text)
	d.requestRedraw()
}

// EntityPosition returns the anchor of the text block or the center of a
// sticker.
func (d *Document) EntityPosition(sel Selection) (Point, bool) {
	switch sel.Kind {
	case SelectText:
		return d.text.Anchor, true
	case SelectDecoration:
		if dec, ok := d.Decoration(sel.ID); ok {
			return dec.Position, true
		}
	}
	return Point{}, false
}

// MoveEntity places the entity at pos. Moving a sticker that no longer
// exists is a no-op and reports false.
func (d *Document) MoveEntity(sel Selection, pos Point) bool {
	switch sel.Kind {
	case SelectText:
		d.text.Anchor = pos
	case SelectDecoration:
		i := d.indexOf(sel.ID)
		if i < 0 {
			return false
		}
		d.decorations[i].Position = pos
	default:
		return false
	}
	d.requestRedraw()
	return true
}

// SetCaption replaces the caption text. Colours are kept by index; new
// positions take the brush colour.
func (d *Document) SetCaption(text string, brush string) {
	runes := []rune(text)
	cells := make([]CharacterCell, len(runes))
	for i, r := range runes {
		cells[i] = CharacterCell{Char: r, Color: brush}
		if i < len(d.text.Cells) {
			cells[i].Color = d.text.Cells[i].Color
		}
	}
	d.text.Cells = cells
	d.requestRedraw()
}

// ColorChar paints the cell at index. Out-of-range indexes are ignored.
func (d *Document) ColorChar(index int, c string) {
	if index < 0 || index >= len(d.text.Cells) {
		return
	}
	d.text.Cells[index].Color = c
	d.requestRedraw()
}

func (d *Document) ColorAllChars(c string) {
	for i := range d.text.Cells {
		d.text.Cells[i].Color = c
	}
	d.requestRedraw()
}

// AddDecoration inserts a sticker at the canvas center and selects it.
func (d *Document) AddDecoration(kind SymbolKind, c string) Decoration {
	id := d.newID()
	for d.indexOf(id) >= 0 {
		id = d.newID()
	}
	dec := Decoration{
		ID:           id,
		Kind:         kind,
		Position:     Point{canvasWidth / 2, canvasHeight / 2},
		Size:         defaultStickerSize,
		Color:        c,
		OutlineColor: defaultOutlineColor,
	}
	d.decorations = append(d.decorations, dec)
	d.selection = DecorationSelection(id)
	d.requestRedraw()
	return dec
}

// UpdateDecoration edits a sticker in place. The id is not editable.
func (d *Document) UpdateDecoration(id string, fn func(*Decoration)) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	fn(&d.decorations[i])
	d.decorations[i].ID = id
	d.requestRedraw()
	return true
}

// DeleteDecoration removes a sticker and clears the selection.
func (d *Document) DeleteDecoration(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	d.decorations = append(d.decorations[:i], d.decorations[i+1:]...)
	d.selection = NoSelection()
	d.requestRedraw()
	return true
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
