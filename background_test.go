package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func assertStretched(t *testing.T, img image.Image, want color.NRGBA) {
	t.Helper()
	if img.Bounds().Dx() != canvasWidth || img.Bounds().Dy() != canvasHeight {
		t.Fatalf("Expected %dx%d, got %v", canvasWidth, canvasHeight, img.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {640, 360}, {1279, 719}} {
		got := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)
		if got != want {
			t.Fatalf("Pixel %v: expected %v, got %v", p, want, got)
		}
	}
}

func TestLoadColorReference(t *testing.T) {
	img, err := NewBackgroundLoader("").Load(context.Background(), "color:#336699")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertStretched(t, img, color.NRGBA{0x33, 0x66, 0x99, 0xff})
}

func TestLoadDataURI(t *testing.T) {
	src := imaging.New(16, 9, color.NRGBA{200, 10, 10, 255})
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, src))

	img, err := NewBackgroundLoader("").Load(context.Background(), ref)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertStretched(t, img, color.NRGBA{200, 10, 10, 255})
}

func TestLoadFilePath(t *testing.T) {
	dir := t.TempDir()
	src := imaging.New(32, 18, color.NRGBA{0, 128, 0, 255})
	if err := os.WriteFile(filepath.Join(dir, "bg.png"), encodePNG(t, src), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := NewBackgroundLoader(dir).Load(context.Background(), "bg.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertStretched(t, img, color.NRGBA{0, 128, 0, 255})

	if _, err := NewBackgroundLoader(dir).Load(context.Background(), "nope.png"); err == nil {
		t.Fatal("Expected error for a missing file")
	}
}

func TestLoadHTTP(t *testing.T) {
	body := encodePNG(t, imaging.New(8, 8, color.NRGBA{10, 20, 30, 255}))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bg.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	loader := NewBackgroundLoader("")
	loader.Client = srv.Client()
	img, err := loader.Load(context.Background(), srv.URL+"/bg.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertStretched(t, img, color.NRGBA{10, 20, 30, 255})

	if _, err := loader.Load(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("Expected error for a 404")
	}
}

func TestLoadRejectsBadReferences(t *testing.T) {
	loader := NewBackgroundLoader("")
	for _, ref := range []string{"", "   ", "ftp://example.com/a.png"} {
		if _, err := loader.Load(context.Background(), ref); !errors.Is(err, ErrUnsupportedReference) {
			t.Fatalf("Load(%q): expected ErrUnsupportedReference, got %v", ref, err)
		}
	}
	for _, ref := range []string{"color:#zzzzzz", "data:image/png;base64,!!!", "data:image/png"} {
		if _, err := loader.Load(context.Background(), ref); err == nil {
			t.Fatalf("Load(%q): expected error", ref)
		}
	}
}
