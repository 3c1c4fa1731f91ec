package main

import "testing"

func TestSetCaptionKeepsColorsByIndex(t *testing.T) {
	doc := newTestDocument()
	doc.SetCaption("AB", "#ff0000")
	doc.ColorChar(1, "#00ff00")
	doc.SetCaption("ABCD", "#0000ff")

	want := []string{"#ff0000", "#00ff00", "#0000ff", "#0000ff"}
	cells := doc.Text().Cells
	if len(cells) != len(want) {
		t.Fatalf("Expected %d cells, got %d", len(want), len(cells))
	}
	for i, c := range cells {
		if c.Color != want[i] {
			t.Fatalf("Cell %d: expected %s, got %s", i, want[i], c.Color)
		}
	}
	if got := doc.Text().Caption(); got != "ABCD" {
		t.Fatalf("Expected caption ABCD, got %q", got)
	}
}

func TestColorCharOutOfRangeIgnored(t *testing.T) {
	doc := newTestDocument()
	redraws := 0
	doc.SetRedrawHandler(func() { redraws++ })
	doc.SetCaption("A", "#ffffff")
	doc.ColorChar(5, "#000000")
	doc.ColorChar(-1, "#000000")
	if redraws != 1 {
		t.Fatalf("Expected 1 redraw, got %d", redraws)
	}
	if doc.Text().Cells[0].Color != "#ffffff" {
		t.Fatal("Expected cell colour to be unchanged")
	}
}

func TestTextReturnsCopy(t *testing.T) {
	doc := newTestDocument()
	doc.SetCaption("A", "#ffffff")
	text := doc.Text()
	text.Cells[0].Color = "#000000"
	if doc.Text().Cells[0].Color != "#ffffff" {
		t.Fatal("Expected Text to return a copy of the cells")
	}
}

func TestAddDecorationSelectsIt(t *testing.T) {
	doc := newTestDocument()
	dec := doc.AddDecoration(SymbolArrow, "#ff0000")
	if dec.ID == "" || dec.OutlineColor != defaultOutlineColor || dec.RotationDegrees != 0 {
		t.Fatalf("Unexpected sticker: %+v", dec)
	}
	if !doc.Selection().IsDecoration(dec.ID) {
		t.Fatalf("Expected new sticker to be selected, got %v", doc.Selection())
	}
	got, ok := doc.SelectedDecoration()
	if !ok || got != dec {
		t.Fatalf("Expected selected sticker %+v, got %+v", dec, got)
	}
}

func TestAddDecorationUniqueIDs(t *testing.T) {
	doc := NewDocument(defaultTextConfig())
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		dec := doc.AddDecoration(SymbolStar, "#ffffff")
		if len(dec.ID) != 9 {
			t.Fatalf("Expected a 9 character id, got %q", dec.ID)
		}
		if seen[dec.ID] {
			t.Fatalf("Duplicate id %q", dec.ID)
		}
		seen[dec.ID] = true
	}
}

func TestUpdateDecorationKeepsID(t *testing.T) {
	doc := newTestDocument()
	dec := doc.AddDecoration(SymbolStar, "#ffffff")
	ok := doc.UpdateDecoration(dec.ID, func(d *Decoration) {
		d.ID = "other"
		d.Size = 400
		d.RotationDegrees = -45
	})
	if !ok {
		t.Fatal("Expected update to apply")
	}
	got, ok := doc.Decoration(dec.ID)
	if !ok || got.Size != 400 || got.RotationDegrees != -45 {
		t.Fatalf("Unexpected sticker after update: %+v", got)
	}
	if doc.UpdateDecoration("missing", func(d *Decoration) {}) {
		t.Fatal("Expected update of a missing sticker to report false")
	}
}

func TestDeleteDecorationClearsSelection(t *testing.T) {
	doc := newTestDocument()
	first := doc.AddDecoration(SymbolStar, "#ffffff")
	second := doc.AddDecoration(SymbolQuestion, "#ffffff")

	if !doc.DeleteDecoration(second.ID) {
		t.Fatal("Expected delete to succeed")
	}
	if !doc.Selection().IsNone() {
		t.Fatalf("Expected selection cleared, got %v", doc.Selection())
	}
	decs := doc.Decorations()
	if len(decs) != 1 || decs[0].ID != first.ID {
		t.Fatalf("Expected only %s to remain, got %+v", first.ID, decs)
	}
	if doc.DeleteDecoration(second.ID) {
		t.Fatal("Expected second delete to report false")
	}
}

func TestEveryMutationRequestsRedraw(t *testing.T) {
	doc := newTestDocument()
	redraws := 0
	doc.SetRedrawHandler(func() { redraws++ })

	doc.SetBackground("color:#000000")
	doc.SetCaption("HI", "#ffffff")
	doc.UpdateTextConfig(func(t *TextLayoutConfig) { t.FontSize = 200 })
	dec := doc.AddDecoration(SymbolStar, "#ffffff")
	doc.MoveEntity(DecorationSelection(dec.ID), Point{1, 2})
	doc.SetSelection(TextSelection())
	doc.ColorAllChars("#ff0000")
	doc.DeleteDecoration(dec.ID)

	if redraws != 8 {
		t.Fatalf("Expected 8 redraws, got %d", redraws)
	}
	if doc.MoveEntity(DecorationSelection(dec.ID), Point{}) || redraws != 8 {
		t.Fatal("Expected moving a deleted sticker to be a silent no-op")
	}
}
