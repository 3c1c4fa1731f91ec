package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// clipboardCaption turns pasted clipboard content into caption text: markup
// is stripped, line endings normalized, and trailing newlines dropped.
func clipboardCaption(text string) string {
	switch {
	case isRTF(text):
		text = stripRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.TrimRight(normalized, "\n")
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div"))
}

func extractTextFromHTML(html string) string {
	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(result.String())
}

// stripRTF drops control words and groups braces; \par becomes a newline.
func stripRTF(text string) string {
	var result strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
			if i+1 >= len(runes) {
				continue
			}
			next := runes[i+1]
			if next == '\\' || next == '{' || next == '}' {
				result.WriteRune(next)
				i++
				continue
			}
			if next == '\'' {
				// \'hh escapes are dropped
				i = min(i+3, len(runes)-1)
				continue
			}
			j := i + 1
			for j < len(runes) && isASCIILetter(runes[j]) {
				j++
			}
			word := string(runes[i+1 : j])
			for j < len(runes) && (runes[j] == '-' || (runes[j] >= '0' && runes[j] <= '9')) {
				j++
			}
			if j < len(runes) && runes[j] == ' ' {
				j++
			}
			if word == "par" || word == "line" {
				result.WriteRune('\n')
			}
			i = j - 1
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
