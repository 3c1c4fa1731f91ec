package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	SaveDirectory string
	FontDir       string
	FontFamily    string
	FontSize      int
	StrokeWidth   int
	LineHeight    float64
	Shadow        bool
	Palette       []string
	Output        string
}

func defaultConfig() *Config {
	return &Config{
		FontFamily:  defaultFontFamily,
		FontSize:    defaultFontSize,
		StrokeWidth: defaultStrokeWidth,
		LineHeight:  defaultLineHeight,
		Shadow:      true,
		Palette:     defaultPalette(),
		Output:      defaultExportName,
	}
}

// loadConfig reads path, or ~/.thumbforgerc when path is empty. A missing
// file yields the defaults.
func loadConfig(path string) *Config {
	homeDir, _ := os.UserHomeDir()
	if path == "" {
		if homeDir == "" {
			return defaultConfig()
		}
		path = filepath.Join(homeDir, ".thumbforgerc")
	}
	file, err := os.Open(path)
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()
	return parseConfig(file, homeDir)
}

func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "fontdir", "font_dir", "fontdirectory":
			config.FontDir = expandPath(value, homeDir)
		case "font", "fontfamily", "font_family":
			config.FontFamily = value
		case "fontsize", "font_size":
			if n, err := strconv.Atoi(value); err == nil {
				config.FontSize = n
			}
		case "strokewidth", "stroke_width", "stroke":
			if n, err := strconv.Atoi(value); err == nil {
				config.StrokeWidth = n
			}
		case "lineheight", "line_height":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				config.LineHeight = f
			}
		case "shadow":
			config.Shadow = strings.ToLower(value) == "true"
		case "palette", "colors":
			var palette []string
			for _, c := range strings.Split(value, ",") {
				if hex, err := normalizeHex(c); err == nil {
					palette = append(palette, hex)
				}
			}
			if len(palette) > 0 {
				config.Palette = palette
			}
		case "output", "out":
			config.Output = value
		}
	}

	return config
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// textConfig builds the initial caption settings from the config.
func (c *Config) textConfig() TextLayoutConfig {
	text := defaultTextConfig()
	text.FontFamily = c.FontFamily
	text.FontSize = c.FontSize
	text.StrokeWidth = c.StrokeWidth
	text.LineHeight = c.LineHeight
	text.ShadowEnabled = c.Shadow
	return text
}
