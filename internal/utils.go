package internal

import "unicode/utf8"

// Version is the application version reported by the CLI and the GUI title
const Version = "0.3.0"

const excerptLength = 32

// Excerpt shortens user text for log lines
func Excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:excerptLength]) + "…"
}
