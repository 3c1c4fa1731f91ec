package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusLines is the number of rows below the preview.
const statusLines = 2

type backgroundLoadedMsg struct {
	ref string
	img image.Image
	err error
}

type model struct {
	width  int
	height int

	editor  *Editor
	loader  *BackgroundLoader
	config  *Config
	grid    previewGrid
	preview *previewCache

	mode       Mode
	panel      Panel
	brushIndex int
	charIndex  int
	fontIndex  int

	editText         string
	originalEditText string
	inputText        string

	errorMessage   string
	successMessage string
}

func initialModel(config *Config, background, caption string) model {
	wd, _ := os.Getwd()
	m := model{
		editor:  NewEditor(NewFontSet(config.FontDir), config.textConfig()),
		loader:  NewBackgroundLoader(wd),
		config:  config,
		preview: &previewCache{frame: -1},
		mode:    ModeNormal,
		panel:   PanelText,
	}
	for i, f := range fontChoices {
		if strings.EqualFold(f, config.FontFamily) {
			m.fontIndex = i
		}
	}
	if caption != "" {
		m.editor.Doc.SetCaption(caption, m.brush())
		m.editor.Doc.SetSelection(TextSelection())
	}
	if background != "" {
		m.editor.Doc.SetBackground(background)
	}
	return m
}

func (m model) Init() tea.Cmd {
	if ref := m.editor.Doc.Background(); ref != "" {
		return loadBackground(m.loader, ref)
	}
	return nil
}

func loadBackground(l *BackgroundLoader, ref string) tea.Cmd {
	return func() tea.Msg {
		img, err := l.Load(context.Background(), ref)
		return backgroundLoadedMsg{ref: ref, img: img, err: err}
	}
}

func (m *model) brush() string {
	if len(m.config.Palette) == 0 {
		return defaultTextColor
	}
	return m.config.Palette[m.brushIndex%len(m.config.Palette)]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid = fitPreview(m.width, m.height-statusLines)
		return m, nil

	case backgroundLoadedMsg:
		if m.editor.BackgroundLoaded(msg.ref, msg.img, msg.err) {
			m.errorMessage = ""
		} else if msg.err != nil && msg.ref == m.editor.Doc.Background() {
			m.errorMessage = fmt.Sprintf("Background failed: %s", msg.err.Error())
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		case ModeTextInput:
			return m.handleTextInput(msg)
		case ModeBackgroundInput, ModeFileInput:
			return m.handleLineInput(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.mode != ModeNormal {
		return
	}
	pointer := m.editor.Pointer
	inside := m.grid.Contains(msg.X, msg.Y)
	p := m.grid.CellCenter(msg.X, msg.Y)
	display := m.grid.Size()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		switch sel := pointer.PointerDown(p, display); sel.Kind {
		case SelectText:
			m.panel = PanelText
		case SelectDecoration:
			m.panel = PanelStickers
		}
	case tea.MouseActionMotion:
		// Drags arrive as motion with the held button.
		if !inside {
			pointer.PointerLeave()
			return
		}
		pointer.PointerMove(p, display)
	case tea.MouseActionRelease:
		pointer.PointerUp()
	}
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := m.editor.Doc
	key := msg.String()
	m.successMessage = ""

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.mode = ModeHelp
	case "esc":
		doc.SetSelection(NoSelection())
		m.errorMessage = ""
	case "tab":
		if m.panel == PanelText {
			m.panel = PanelStickers
		} else {
			m.panel = PanelText
			doc.SetSelection(TextSelection())
		}
	case "1", "2", "3", "4":
		kind := symbolKinds[key[0]-'1']
		doc.AddDecoration(kind, m.brush())
		m.panel = PanelStickers
	case "x", "delete":
		if dec, ok := doc.SelectedDecoration(); ok {
			doc.DeleteDecoration(dec.ID)
		}
	case "+", "=":
		m.resizeSelection(10)
	case "-", "_":
		m.resizeSelection(-10)
	case "[":
		m.rotateSelection(-5)
	case "]":
		m.rotateSelection(5)
	case "c":
		m.brushIndex = (m.brushIndex + 1) % max(len(m.config.Palette), 1)
		m.applyBrush()
	case "C":
		m.brushIndex = (m.brushIndex + max(len(m.config.Palette), 1) - 1) % max(len(m.config.Palette), 1)
		m.applyBrush()
	case ",":
		m.selectChar(-1)
	case ".":
		m.selectChar(1)
	case "a":
		doc.ColorAllChars(m.brush())
	case "o":
		outline := m.brush()
		doc.UpdateTextConfig(func(t *TextLayoutConfig) { t.StrokeColor = outline })
	case "f":
		m.fontIndex = (m.fontIndex + 1) % len(fontChoices)
		family := fontChoices[m.fontIndex]
		doc.UpdateTextConfig(func(t *TextLayoutConfig) { t.FontFamily = family })
	case "s":
		doc.UpdateTextConfig(func(t *TextLayoutConfig) { t.ShadowEnabled = !t.ShadowEnabled })
	case "i":
		m.originalEditText = doc.Text().Caption()
		m.editText = m.originalEditText
		m.mode = ModeTextInput
		doc.SetSelection(TextSelection())
		m.panel = PanelText
	case "p":
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %s", err.Error())
			break
		}
		doc.SetCaption(clipboardCaption(text), m.brush())
		m.successMessage = "Caption pasted"
	case "b":
		m.inputText = doc.Background()
		m.mode = ModeBackgroundInput
	case "e":
		m.inputText = m.config.Output
		m.mode = ModeFileInput
	default:
		m.handleNudge(key, m.getMoveSpeed(key))
	}
	return m, nil
}

func (m *model) resizeSelection(delta int) {
	doc := m.editor.Doc
	switch sel := doc.Selection(); sel.Kind {
	case SelectText:
		doc.UpdateTextConfig(func(t *TextLayoutConfig) {
			t.FontSize = clamp(t.FontSize+delta, minFontSize, maxFontSize)
		})
	case SelectDecoration:
		doc.UpdateDecoration(sel.ID, func(d *Decoration) {
			d.Size = clamp(d.Size+delta, minStickerSize, maxStickerSize)
		})
	}
}

func (m *model) rotateSelection(delta int) {
	if dec, ok := m.editor.Doc.SelectedDecoration(); ok {
		m.editor.Doc.UpdateDecoration(dec.ID, func(d *Decoration) {
			d.RotationDegrees = clamp(d.RotationDegrees+delta, minRotation, maxRotation)
		})
	}
}

// applyBrush paints the selected character or sticker with the brush.
func (m *model) applyBrush() {
	doc := m.editor.Doc
	brush := m.brush()
	switch sel := doc.Selection(); sel.Kind {
	case SelectText:
		doc.ColorChar(m.charIndex, brush)
	case SelectDecoration:
		doc.UpdateDecoration(sel.ID, func(d *Decoration) { d.Color = brush })
	}
}

// selectChar moves the character cursor, skipping line breaks.
func (m *model) selectChar(dir int) {
	cells := m.editor.Doc.Text().Cells
	if len(cells) == 0 {
		return
	}
	i := m.charIndex
	for range cells {
		i = (i + dir + len(cells)) % len(cells)
		if !cells[i].IsLineBreak() {
			break
		}
	}
	m.charIndex = i
	m.editor.Doc.SetSelection(TextSelection())
}

func (m model) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := m.editor.Doc
	switch msg.Type {
	case tea.KeyEscape:
		doc.SetCaption(m.originalEditText, m.brush())
		m.mode = ModeNormal
		return m, nil
	case tea.KeyCtrlS, tea.KeyCtrlD:
		m.mode = ModeNormal
		m.successMessage = "Caption updated"
		return m, nil
	case tea.KeyEnter:
		m.editText += "\n"
	case tea.KeyBackspace:
		if runes := []rune(m.editText); len(runes) > 0 {
			m.editText = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.editText += " "
	case tea.KeyRunes:
		m.editText += string(msg.Runes)
	default:
		return m, nil
	}
	doc.SetCaption(m.editText, m.brush())
	if m.charIndex >= len([]rune(m.editText)) {
		m.charIndex = 0
	}
	return m, nil
}

// handleLineInput edits the background reference or the export filename.
func (m model) handleLineInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.errorMessage = ""
	case tea.KeyEnter:
		value := strings.TrimSpace(m.inputText)
		if value == "" {
			m.errorMessage = "Please enter a value"
			return m, nil
		}
		mode := m.mode
		m.mode = ModeNormal
		if mode == ModeBackgroundInput {
			m.editor.Doc.SetBackground(value)
			m.successMessage = "Loading background..."
			return m, loadBackground(m.loader, value)
		}
		m.exportTo(value)
	case tea.KeyBackspace:
		if runes := []rune(m.inputText); len(runes) > 0 {
			m.inputText = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.inputText += " "
	case tea.KeyRunes:
		m.inputText += string(msg.Runes)
	}
	return m, nil
}

func (m *model) exportTo(filename string) {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}
	path := m.config.GetSavePath(filename)
	if err := m.editor.ExportPNG(path); err != nil {
		m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", err.Error())
		return
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	m.config.Output = filename
	m.errorMessage = ""
	m.successMessage = fmt.Sprintf("Exported to %s", absPath)
	if err := writeClipboardText(absPath); err == nil {
		m.successMessage += " (path copied)"
	}
}

func (m model) View() string {
	if m.mode == ModeHelp {
		return m.helpView()
	}

	var result strings.Builder
	if m.editor.Ready() {
		if m.preview.grid != m.grid || m.preview.frame != m.editor.FrameCount() {
			m.preview.text = renderPreview(m.editor.Frame(), m.grid)
			m.preview.grid = m.grid
			m.preview.frame = m.editor.FrameCount()
		}
		result.WriteString(m.preview.text)
	} else {
		result.WriteString(m.placeholderView())
	}
	result.WriteString("\n")
	result.WriteString(m.panelView())
	result.WriteString("\n")
	result.WriteString(m.statusView())
	return result.String()
}

func (m model) placeholderView() string {
	msg := "No background. Press b to set one (path, URL, data URI or color:#rrggbb)"
	if m.editor.Doc.Background() != "" {
		msg = "Loading background..."
	}
	lines := make([]string, max(m.grid.rows, 1))
	lines[len(lines)/2] = msg
	return strings.Join(lines, "\n")
}

var (
	selectedCharStyle = lipgloss.NewStyle().Reverse(true)
	panelLabelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
)

func (m model) panelView() string {
	doc := m.editor.Doc
	var b strings.Builder
	if m.panel == PanelText {
		b.WriteString(panelLabelStyle.Render("TEXT "))
		for i, c := range doc.Text().Cells {
			if c.IsLineBreak() {
				b.WriteString(" ⏎ ")
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorOrHex(c.Color)))
			if i == m.charIndex {
				style = style.Inherit(selectedCharStyle)
			}
			b.WriteString(style.Render(string(c.Char)))
		}
		return b.String()
	}

	b.WriteString(panelLabelStyle.Render("STICKERS "))
	for i, k := range symbolKinds {
		fmt.Fprintf(&b, "%d:%s ", i+1, k.Glyph())
	}
	if dec, ok := doc.SelectedDecoration(); ok {
		fmt.Fprintf(&b, "| %s size %d rot %d° %s", dec.Kind.Glyph(), dec.Size, dec.RotationDegrees, dec.Color)
	} else {
		b.WriteString("| click a sticker to edit it")
	}
	return b.String()
}

func colorOrHex(s string) string {
	if hex, err := normalizeHex(s); err == nil {
		return hex
	}
	return "#ffffff"
}

func (m model) statusView() string {
	var statusLine string
	switch m.mode {
	case ModeTextInput:
		caption := strings.ReplaceAll(m.editText, "\n", "⏎")
		statusLine = fmt.Sprintf("Mode: TEXT | %s█ | Enter=newline, Ctrl+S=done, Esc=cancel", caption)
	case ModeBackgroundInput:
		statusLine = fmt.Sprintf("Mode: BACKGROUND | %s█ | Enter=load, Esc=cancel", m.inputText)
	case ModeFileInput:
		statusLine = fmt.Sprintf("Mode: EXPORT | filename: %s█ | Enter=confirm, Esc=cancel", m.inputText)
	default:
		text := m.editor.Doc.Text()
		statusLine = fmt.Sprintf("Mode: %s | Selected: %s | Brush: %s | Font: %s %dpx",
			m.modeString(), m.editor.Doc.Selection(), m.brush(), text.FontFamily, text.FontSize)
		if m.editor.Pointer.Dragging() {
			statusLine += " | dragging"
		}
		if m.successMessage != "" {
			statusLine += fmt.Sprintf(" | %s", m.successMessage)
		}
		if m.errorMessage == "" && m.successMessage == "" {
			statusLine += " | ? for help | q to quit"
		}
	}
	if m.errorMessage != "" {
		statusLine += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	return statusLine
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeTextInput:
		return "TEXT"
	case ModeBackgroundInput:
		return "BACKGROUND"
	case ModeFileInput:
		return "EXPORT"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"thumbforge help",
		"===============",
		"",
		"Mouse:",
		"  click            Select the sticker or caption under the pointer",
		"  drag             Move the selection",
		"",
		"Caption:",
		"  i                Edit caption (Enter=newline, Ctrl+S=done, Esc=cancel)",
		"  p                Paste caption from clipboard",
		"  , / .            Select previous/next character",
		"  a                Paint every character with the brush",
		"  o                Use the brush as outline colour",
		"  f                Next font",
		"  s                Toggle shadow",
		"",
		"Stickers:",
		"  1 2 3 4          Add ! ? ➡ ★",
		"  x                Delete selected sticker",
		"  [ / ]            Rotate selected sticker",
		"",
		"General:",
		"  tab              Switch text/sticker panel",
		"  c / C            Next/previous brush colour (applied to the selection)",
		"  + / -            Grow/shrink the selection",
		"  h/j/k/l, arrows  Nudge the selection (Shift = faster)",
		"  b                Set background",
		"  e                Export PNG",
		"  Esc              Clear selection",
		"  q/Ctrl+C         Quit",
		"",
		"Press any key to close",
	}
	visible := helpLines
	if m.height > 0 && len(visible) > m.height {
		visible = visible[:m.height]
	}
	return strings.Join(visible, "\n")
}
