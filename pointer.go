package main

// PointerController turns pointer events in display space into selection
// changes and drags on a Document.
//
//	Idle --down on entity--> Dragging(target, grab) --up/leave--> Idle
type PointerController struct {
	doc    *Document
	native Size

	dragging bool
	target   Selection
	grab     Point // pointer minus entity position at pointer-down
}

func NewPointerController(doc *Document, native Size) *PointerController {
	return &PointerController{doc: doc, native: native}
}

func (pc *PointerController) Dragging() bool { return pc.dragging }

// ToCanvas scales a display-space point by the native/displayed ratio.
func (pc *PointerController) ToCanvas(p Point, display Size) Point {
	if display.W <= 0 || display.H <= 0 {
		return p
	}
	return Point{p.X * pc.native.W / display.W, p.Y * pc.native.H / display.H}
}

// HitTest returns what lies under p (canvas space). Stickers are tested
// topmost first, then the fixed text box around the anchor.
func (pc *PointerController) HitTest(p Point) Selection {
	return hitTest(pc.doc.text, pc.doc.decorations, p)
}

func hitTest(text TextLayoutConfig, decorations []Decoration, p Point) Selection {
	for i := len(decorations) - 1; i >= 0; i-- {
		dec := decorations[i]
		if p.Distance(dec.Position) < float64(dec.Size)/2+grabMargin {
			return DecorationSelection(dec.ID)
		}
	}
	// An empty caption has nothing to grab.
	if len(text.Cells) > 0 && textHitbox(text.Anchor, p) {
		return TextSelection()
	}
	return NoSelection()
}

// textHitbox is a fixed 640x240 box centered on the anchor, independent of
// the rendered extent.
func textHitbox(anchor, p Point) bool {
	dx, dy := p.X-anchor.X, p.Y-anchor.Y
	return dx > -textHitboxWidth/2 && dx < textHitboxWidth/2 &&
		dy > -textHitboxHeight/2 && dy < textHitboxHeight/2
}

// PointerDown selects the entity under p and starts dragging it. A miss
// clears the selection.
func (pc *PointerController) PointerDown(p Point, display Size) Selection {
	cp := pc.ToCanvas(p, display)
	sel := pc.HitTest(cp)
	if sel.IsNone() {
		pc.reset()
		pc.doc.SetSelection(sel)
		return sel
	}

	pos, _ := pc.doc.EntityPosition(sel)
	pc.dragging = true
	pc.target = sel
	pc.grab = cp.Sub(pos)
	pc.doc.SetSelection(sel)
	return sel
}

// PointerMove drags the target so the grab point stays under the pointer.
// Positions are not clamped. The drag ends if the target is no longer the
// selection.
func (pc *PointerController) PointerMove(p Point, display Size) bool {
	if !pc.dragging {
		return false
	}
	if pc.doc.selection != pc.target {
		pc.reset()
		return false
	}
	cp := pc.ToCanvas(p, display)
	return pc.doc.MoveEntity(pc.target, cp.Sub(pc.grab))
}

func (pc *PointerController) PointerUp() { pc.reset() }
func (pc *PointerController) PointerLeave() { pc.reset() }

func (pc *PointerController) reset() {
	pc.dragging = false
	pc.target = NoSelection()
	pc.grab = Point{}
}
