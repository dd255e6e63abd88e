package gui

import (
	"reflect"
	"testing"

	"codeberg.org/snonux/livetrans/internal/catalog"
	"codeberg.org/snonux/livetrans/internal/selection"
)

func TestSourceOptions(t *testing.T) {
	c := catalog.Default()
	o := sourceOptions(c)

	if len(o.titles) != len(c.Entries())+1 {
		t.Fatalf("got %d options, want %d", len(o.titles), len(c.Entries())+1)
	}
	if o.titles[0] != c.DetectTitle() || o.ids[0] != selection.Unset {
		t.Errorf("first option = (%q, %q), want detect", o.ids[0], o.titles[0])
	}

	id, ok := o.id(c.DetectTitle())
	if !ok || id != selection.Unset {
		t.Errorf("id(detect) = %q, %v", id, ok)
	}
	if got := o.title("ja"); got != "일본어" {
		t.Errorf("title(ja) = %q", got)
	}
}

func TestOptionsLookup(t *testing.T) {
	o := newOptions([]catalog.Language{{ID: "ko", Title: "한국어"}, {ID: "en", Title: "영어"}})

	if !reflect.DeepEqual(o.titles, []string{"한국어", "영어"}) {
		t.Errorf("titles = %v", o.titles)
	}
	if id, ok := o.id("영어"); !ok || id != "en" {
		t.Errorf("id(영어) = %q, %v", id, ok)
	}
	if _, ok := o.id("클링온어"); ok {
		t.Error("unknown title found")
	}
	if got := o.title("fr"); got != "" {
		t.Errorf("title(fr) = %q, want empty", got)
	}
}
