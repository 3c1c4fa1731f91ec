package main

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
)

// Export writes the document as PNG. The export frame is drawn without the
// selection highlight; the live frame is restored afterwards.
func (e *Editor) Export(w io.Writer) error {
	if err := e.comp.render(e.Doc, false); err != nil {
		return err
	}
	encodeErr := png.Encode(w, e.comp.Image())
	e.redraw()
	if encodeErr != nil {
		return fmt.Errorf("failed to encode PNG: %w", encodeErr)
	}
	return nil
}

func (e *Editor) ExportPNG(filename string) error {
	if !e.Ready() {
		return ErrNoBackground
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := e.Export(file); err != nil {
		file.Close()
		os.Remove(filename)
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Printf("exported %s", filename)
	return nil
}
