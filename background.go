package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

var ErrUnsupportedReference = errors.New("unsupported background reference")

// maxBackgroundBytes caps downloads and data URIs.
const maxBackgroundBytes = 32 << 20

// BackgroundLoader resolves a background reference to an image stretched to
// the surface size. References: data URIs, http(s) URLs, "color:#rrggbb",
// and file paths (relative ones resolved against BaseDir).
type BackgroundLoader struct {
	Client  *http.Client
	BaseDir string
	Size    image.Point
}

func NewBackgroundLoader(baseDir string) *BackgroundLoader {
	return &BackgroundLoader{
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseDir: baseDir,
		Size:    image.Pt(canvasWidth, canvasHeight),
	}
}

func (l *BackgroundLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrUnsupportedReference)
	}

	if hex, ok := strings.CutPrefix(ref, "color:"); ok {
		c, err := parseColor(hex)
		if err != nil {
			return nil, err
		}
		return imaging.New(l.Size.X, l.Size.Y, c), nil
	}

	var (
		img image.Image
		err error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		img, err = decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		img, err = l.fetch(ctx, ref)
	case strings.Contains(ref, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedReference, schemeOf(ref))
	default:
		img, err = l.open(ref)
	}
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, l.Size.X, l.Size.Y, imaging.Linear), nil
}

func schemeOf(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return u.Scheme
	}
	return ref
}

// decodeDataURI handles "data:[<mime>][;base64],<payload>".
func decodeDataURI(ref string) (image.Image, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	var data []byte
	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URI: %w", err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URI: %w", err)
		}
		data = []byte(unescaped)
	}
	if len(data) > maxBackgroundBytes {
		return nil, fmt.Errorf("data URI image exceeds %d bytes", maxBackgroundBytes)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (l *BackgroundLoader) fetch(ctx context.Context, ref string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", ref, resp.Status)
	}
	img, err := imaging.Decode(io.LimitReader(resp.Body, maxBackgroundBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ref, err)
	}
	return img, nil
}

func (l *BackgroundLoader) open(ref string) (image.Image, error) {
	path := ref
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open background %s: %w", ref, err)
	}
	return img, nil
}
