package selection

import (
	"testing"

	"codeberg.org/snonux/livetrans/internal/catalog"
)

func TestNew(t *testing.T) {
	m := New(catalog.Default(), "ko")

	sel := m.Selection()
	if !sel.Detect() || sel.Target != "ko" {
		t.Errorf("initial selection = %+v, want unset source and ko target", sel)
	}
	if len(m.Targets()) != len(catalog.Default().DefaultTargets()) {
		t.Error("expected default targets while source is unset")
	}
}

func TestNew_InvalidTarget(t *testing.T) {
	m := New(catalog.Default(), "tlh")
	if got := m.Selection().Target; got != "ko" {
		t.Errorf("target = %q, want first default target ko", got)
	}
}

func TestSetSource(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		source     string
		wantTarget string
		wantErr    bool
	}{
		{"keeps allowed target", "ko", "en", "ko", false},
		{"replaces disallowed target", "ko", "ko", "en", false},
		{"restricted source", "ja", "vi", "ko", false},
		{"back to detection", "ko", Unset, "ko", false},
		{"unknown source", "ko", "xx", "ko", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(catalog.Default(), tt.target)
			err := m.SetSource(tt.source)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetSource(%q) error = %v, wantErr %v", tt.source, err, tt.wantErr)
			}
			if got := m.Selection().Target; got != tt.wantTarget {
				t.Errorf("target = %q, want %q", got, tt.wantTarget)
			}
		})
	}
}

func TestSetTarget(t *testing.T) {
	m := New(catalog.Default(), "ko")
	if err := m.SetSource("en"); err != nil {
		t.Fatal(err)
	}

	if err := m.SetTarget("ja"); err != nil {
		t.Errorf("SetTarget(ja) failed: %v", err)
	}
	if err := m.SetTarget("vi"); err == nil {
		t.Error("expected error for target not allowed from en")
	}
	if got := m.Selection(); got != (Selection{Source: "en", Target: "ja"}) {
		t.Errorf("selection = %+v", got)
	}
}

func TestSet(t *testing.T) {
	m := New(catalog.Default(), "ko")

	if err := m.Set(Selection{Source: "fr", Target: "en"}); err != nil {
		t.Errorf("Set failed: %v", err)
	}
	if err := m.Set(Selection{Source: "fr", Target: "ja"}); err == nil {
		t.Error("expected error for invalid pair")
	}
	if got := m.Selection(); got != (Selection{Source: "fr", Target: "en"}) {
		t.Errorf("selection = %+v", got)
	}
}

func TestOnChange(t *testing.T) {
	m := New(catalog.Default(), "ko")

	var changes []Selection
	m.OnChange(func(s Selection) {
		changes = append(changes, s)
	})

	m.SetSource("en")
	m.SetTarget("ko") // unchanged, no callback
	m.SetTarget("ja")
	m.Reset()

	want := []Selection{
		{Source: "en", Target: "ko"},
		{Source: "en", Target: "ja"},
		{Source: Unset, Target: "ko"},
	}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes %v, want %d", len(changes), changes, len(want))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, changes[i], want[i])
		}
	}
}
