package main

const nudgeStep = 10.0

// handleNudge moves the selected entity with the arrow keys.
func (m *model) handleNudge(key string, speed float64) bool {
	sel := m.editor.Doc.Selection()
	pos, ok := m.editor.Doc.EntityPosition(sel)
	if !ok {
		return false
	}
	switch key {
	case "h", "left", "H", "shift+left":
		pos.X -= speed
	case "l", "right", "L", "shift+right":
		pos.X += speed
	case "k", "up", "K", "shift+up":
		pos.Y -= speed
	case "j", "down", "J", "shift+down":
		pos.Y += speed
	default:
		return false
	}
	return m.editor.Doc.MoveEntity(sel, pos)
}

func (m *model) getMoveSpeed(key string) float64 {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return nudgeStep * 4
	default:
		return nudgeStep
	}
}
