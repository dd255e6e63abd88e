// Package batch reads texts to translate from files.
package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one text to translate. Empty Source and Target mean the
// language pair is chosen the same way as for typed text.
type Entry struct {
	Line   int
	Text   string
	Source string
	Target string
}

// HasPair reports whether the entry names its own language pair
func (e Entry) HasPair() bool {
	return e.Source != "" && e.Target != ""
}

// ReadBatchFile reads texts from a file and returns an Entry slice
// Supports formats:
// - Text only: "Guten Morgen" (language is detected)
// - With language pair: "de>ko: Guten Morgen"
// Empty lines and lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []Entry
	for i, line := range splitLines(string(content)) {
		line = trimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Line: i + 1, Text: line}
		if source, target, text, ok := parsePair(line); ok {
			if text == "" {
				// Ignore lines with a pair but no text
				continue
			}
			entry.Source, entry.Target, entry.Text = source, target, text
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parsePair splits "src>tgt: text"
func parsePair(line string) (source, target, text string, ok bool) {
	prefix, rest, found := strings.Cut(line, ":")
	if !found {
		return "", "", "", false
	}
	source, target, found = strings.Cut(prefix, ">")
	if !found || !isLanguageCode(source) || !isLanguageCode(target) {
		return "", "", "", false
	}
	return source, target, trimSpace(rest), true
}

// isLanguageCode accepts codes such as "ko" or "zh-TW"
func isLanguageCode(s string) bool {
	if len(s) < 2 || len(s) > 7 {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-') {
			return false
		}
	}
	return true
}

// splitLines splits a string by newlines, keeping empty lines so that
// line numbers stay correct
func splitLines(s string) []string {
	var lines []string
	current := ""
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// trimSpace trims whitespace from string
func trimSpace(s string) string {
	start := 0
	end := len(s)

	// Trim from start
	for start < end && isSpace(rune(s[start])) {
		start++
	}

	// Trim from end
	for end > start && isSpace(rune(s[end-1])) {
		end--
	}

	return s[start:end]
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
