package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.thumbforgerc)")
	background := flag.String("bg", "", "background: file path, http(s) URL, data URI or color:#rrggbb")
	caption := flag.String("caption", "", `caption text; "\n" starts a new line`)
	output := flag.String("out", "", "PNG output path")
	headless := flag.Bool("render", false, "render and export without the editor")
	flag.Parse()

	config := loadConfig(*configPath)
	if *output != "" {
		config.Output = *output
	}
	text := strings.ReplaceAll(*caption, `\n`, "\n")

	if *headless {
		if err := renderHeadless(config, *background, text); err != nil {
			log.Fatalf("render failed: %v", err)
		}
		fmt.Printf("Exported to %s\n", config.GetSavePath(config.Output))
		return
	}

	if path := os.Getenv("THUMBFORGE_DEBUG"); path != "" {
		f, err := tea.LogToFile(path, "thumbforge")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(
		initialModel(config, *background, text),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// renderHeadless loads the background synchronously and writes the PNG.
func renderHeadless(config *Config, background, caption string) error {
	if background == "" {
		return fmt.Errorf("-bg is required with -render")
	}
	editor := NewEditor(NewFontSet(config.FontDir), config.textConfig())
	editor.Doc.SetCaption(caption, defaultTextColor)
	editor.Doc.SetBackground(background)

	wd, _ := os.Getwd()
	img, err := NewBackgroundLoader(wd).Load(context.Background(), background)
	if err != nil {
		return err
	}
	editor.BackgroundLoaded(background, img, nil)

	path := config.GetSavePath(config.Output)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return editor.ExportPNG(path)
}
