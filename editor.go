package main

import (
	"errors"
	"image"
	"log"
)

// Editor wires the document to the compositor and the pointer controller.
// Each document mutation triggers one full redraw.
type Editor struct {
	Doc     *Document
	Pointer *PointerController

	comp    *Compositor
	fonts   *FontSet
	lastErr error
	frame   int // bumped on every completed redraw
}

func NewEditor(fonts *FontSet, text TextLayoutConfig) *Editor {
	e := &Editor{
		Doc:   NewDocument(text),
		comp:  NewCompositor(canvasWidth, canvasHeight, fonts),
		fonts: fonts,
	}
	e.Pointer = NewPointerController(e.Doc, e.comp.Size())
	e.Doc.SetRedrawHandler(e.redraw)
	return e
}

func (e *Editor) redraw() {
	err := e.comp.Redraw(e.Doc)
	e.lastErr = err
	switch {
	case err == nil:
		e.frame++
	case errors.Is(err, ErrNoBackground):
		// previous frame stays visible until the background arrives
	default:
		log.Printf("redraw failed: %v", err)
	}
}

// BackgroundLoaded delivers a finished load. Only the load for the current
// reference is accepted; late results for older references are dropped.
func (e *Editor) BackgroundLoaded(ref string, img image.Image, err error) bool {
	if ref != e.Doc.Background() {
		log.Printf("discarding stale background load for %.40q", ref)
		return false
	}
	if err != nil {
		log.Printf("background load failed: %v", err)
		e.lastErr = err
		return false
	}
	e.comp.SetBackground(ref, img)
	e.redraw()
	return true
}

// Frame is the current surface.
func (e *Editor) Frame() image.Image { return e.comp.Image() }

// FrameCount increases with each successful redraw.
func (e *Editor) FrameCount() int { return e.frame }

// Ready reports whether the current background is loaded.
func (e *Editor) Ready() bool { return e.comp.Ready(e.Doc.Background()) }

func (e *Editor) LastError() error { return e.lastErr }
