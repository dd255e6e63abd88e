package internal

import (
	"strings"
	"testing"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "hello", "hello"},
		{"empty", "", ""},
		{"exact length", strings.Repeat("a", 32), strings.Repeat("a", 32)},
		{"long ascii", strings.Repeat("b", 40), strings.Repeat("b", 32) + "…"},
		{"long hangul", strings.Repeat("한", 33), strings.Repeat("한", 32) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.in); got != tt.want {
				t.Errorf("Excerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}
