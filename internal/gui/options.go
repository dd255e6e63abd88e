package gui

import (
	"codeberg.org/snonux/livetrans/internal/catalog"
	"codeberg.org/snonux/livetrans/internal/selection"
)

// options maps between select titles and language ids
type options struct {
	ids    []string
	titles []string
}

func newOptions(langs []catalog.Language) options {
	o := options{
		ids:    make([]string, 0, len(langs)),
		titles: make([]string, 0, len(langs)),
	}
	for _, l := range langs {
		o.ids = append(o.ids, l.ID)
		o.titles = append(o.titles, l.Title)
	}
	return o
}

// sourceOptions lists "detect language" followed by every source language
func sourceOptions(c *catalog.Catalog) options {
	langs := []catalog.Language{{ID: selection.Unset, Title: c.DetectTitle()}}
	for _, e := range c.Entries() {
		langs = append(langs, catalog.Language{ID: e.ID, Title: e.Title})
	}
	return newOptions(langs)
}

func (o options) title(id string) string {
	for i, v := range o.ids {
		if v == id {
			return o.titles[i]
		}
	}
	return ""
}

func (o options) id(title string) (string, bool) {
	for i, v := range o.titles {
		if v == title {
			return o.ids[i], true
		}
	}
	return "", false
}
