package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	m := initialModel(defaultConfig(), "", "")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 128, Height: 36 + statusLines})
	return updated.(model)
}

func press(m model, key string) model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated.(model)
}

func mouse(m model, action tea.MouseAction, button tea.MouseButton, x, y int) model {
	updated, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return updated.(model)
}

func TestModelStickerDrag(t *testing.T) {
	m := newTestModel(t)
	if m.grid != (previewGrid{cols: 128, rows: 36}) {
		t.Fatalf("Unexpected preview grid %+v", m.grid)
	}

	m = press(m, "4")
	dec, ok := m.editor.Doc.SelectedDecoration()
	if !ok || dec.Kind != SymbolStar || m.panel != PanelStickers {
		t.Fatal("Expected a new selected star")
	}

	m = mouse(m, tea.MouseActionRelease, tea.MouseButtonNone, 0, 0)
	m = mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, 64, 18)
	if !m.editor.Pointer.Dragging() {
		t.Fatal("Expected drag to start on the star")
	}
	// One cell is 10x20 canvas pixels. A drag reports motion with the
	// left button held.
	m = mouse(m, tea.MouseActionMotion, tea.MouseButtonLeft, 74, 20)
	m = mouse(m, tea.MouseActionRelease, tea.MouseButtonNone, 74, 20)
	got, _ := m.editor.Doc.Decoration(dec.ID)
	if got.Position != (Point{740, 400}) {
		t.Fatalf("Expected star at (740,400), got %v", got.Position)
	}
	if m.editor.Pointer.Dragging() {
		t.Fatal("Expected drag to end on release")
	}
}

func TestModelMotionOutsidePreviewEndsDrag(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "1")
	m = mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, 64, 18)
	m = mouse(m, tea.MouseActionMotion, tea.MouseButtonLeft, 64, 37)
	if m.editor.Pointer.Dragging() {
		t.Fatal("Expected leaving the preview to end the drag")
	}
}

func TestModelPlainMotionDoesNotDrag(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "4")
	dec, _ := m.editor.Doc.SelectedDecoration()

	m = mouse(m, tea.MouseActionMotion, tea.MouseButtonNone, 74, 20)
	m = mouse(m, tea.MouseActionPress, tea.MouseButtonRight, 64, 18)
	m = mouse(m, tea.MouseActionMotion, tea.MouseButtonRight, 74, 20)
	if got, _ := m.editor.Doc.Decoration(dec.ID); got.Position != dec.Position {
		t.Fatalf("Expected sticker to stay at %v, got %v", dec.Position, got.Position)
	}
}

func TestModelEscapeEndsDrag(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "4")
	dec, _ := m.editor.Doc.SelectedDecoration()

	m = mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, 64, 18)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(model)
	m = mouse(m, tea.MouseActionMotion, tea.MouseButtonLeft, 74, 20)
	if got, _ := m.editor.Doc.Decoration(dec.ID); got.Position != dec.Position {
		t.Fatalf("Expected sticker to stay at %v after escape, got %v", dec.Position, got.Position)
	}
	if m.editor.Pointer.Dragging() {
		t.Fatal("Expected drag to end once the selection is cleared")
	}
}

func TestModelResizeAndRotateClamped(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "2")
	for i := 0; i < 100; i++ {
		m = press(m, "+")
		m = press(m, "]")
	}
	dec, _ := m.editor.Doc.SelectedDecoration()
	if dec.Size != maxStickerSize || dec.RotationDegrees != maxRotation {
		t.Fatalf("Expected clamped size and rotation, got %d and %d", dec.Size, dec.RotationDegrees)
	}

	m = press(m, "x")
	if len(m.editor.Doc.Decorations()) != 0 || !m.editor.Doc.Selection().IsNone() {
		t.Fatal("Expected sticker deleted and selection cleared")
	}
}

func TestModelCaptionEditing(t *testing.T) {
	m := newTestModel(t)
	m = press(m, "i")
	if m.mode != ModeTextInput {
		t.Fatal("Expected text input mode")
	}
	m = press(m, "GO")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = press(updated.(model), "!")
	if got := m.editor.Doc.Text().Caption(); got != "GO\n!" {
		t.Fatalf("Expected live caption update, got %q", got)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(model)
	if m.mode != ModeNormal || m.editor.Doc.Text().Caption() != "" {
		t.Fatalf("Expected escape to restore the caption, got %q", m.editor.Doc.Text().Caption())
	}
}

func TestModelBackgroundLoad(t *testing.T) {
	m := newTestModel(t)
	m.editor.Doc.SetBackground("color:#112233")
	cmd := loadBackground(m.loader, "color:#112233")
	updated, _ := m.Update(cmd())
	m = updated.(model)
	if !m.editor.Ready() {
		t.Fatal("Expected background ready after load")
	}
	if m.View() == "" {
		t.Fatal("Expected a rendered view")
	}
}
