// Package catalog holds the filter category table: the categories a shopper
// can filter by and the options each one offers. The table is configuration
// data loaded once and shared by reference; nothing mutates it at runtime.
package catalog

import (
	"strings"

	"github.com/janekbaraniewski/facetpanel/internal/selection"
	"github.com/samber/lo"
	"golang.org/x/mod/semver"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Category struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Icon    string   `json:"icon,omitempty"`
	Options []Option `json:"options"`
}

// Values returns the canonical option values in display order.
func (c Category) Values() []string {
	return lo.Map(c.Options, func(o Option, _ int) string { return o.Value })
}

type Table struct {
	Name       string     `json:"name"`
	Version    string     `json:"version"`
	Categories []Category `json:"categories"`
}

// Keys returns category keys in display order.
func (t Table) Keys() []string {
	return lo.Map(t.Categories, func(c Category, _ int) string { return c.Key })
}

func (t Table) Category(key string) (Category, bool) {
	return lo.Find(t.Categories, func(c Category) bool { return c.Key == key })
}

func (t Table) HasOption(key, value string) bool {
	c, ok := t.Category(key)
	if !ok {
		return false
	}
	return lo.ContainsBy(c.Options, func(o Option) bool { return o.Value == value })
}

// Label returns the display label for value, or value itself when unknown.
func (t Table) Label(key, value string) string {
	c, ok := t.Category(key)
	if !ok {
		return value
	}
	if o, found := lo.Find(c.Options, func(o Option) bool { return o.Value == value }); found {
		return o.Label
	}
	return value
}

// OptionCount is the number of options across all categories.
func (t Table) OptionCount() int {
	return lo.SumBy(t.Categories, func(c Category) int { return len(c.Options) })
}

// Empty returns a selection with an empty sequence for every category.
func (t Table) Empty() selection.State {
	return selection.Empty(t.Keys())
}

// Dropped is a selection entry Sanitize removed.
type Dropped struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Sanitize keeps only values the table defines, removes duplicates and fills
// in every category key. Every discarded value is reported as dropped; an
// unknown key with no values drops nothing.
func (t Table) Sanitize(s selection.State) (selection.State, []Dropped) {
	out := t.Empty()
	var dropped []Dropped

	for _, key := range s.Keys() {
		if _, ok := t.Category(key); !ok {
			for _, v := range s[key] {
				dropped = append(dropped, Dropped{Key: key, Value: v})
			}
			continue
		}
		for _, v := range s[key] {
			if !t.HasOption(key, v) {
				dropped = append(dropped, Dropped{Key: key, Value: v})
				continue
			}
			if !lo.Contains(out[key], v) {
				out[key] = append(out[key], v)
			}
		}
	}
	return out, dropped
}

// SemVer returns the table version in canonical "vX.Y.Z" form, or "" when the
// version is not valid semver.
func (t Table) SemVer() string {
	return canonicalVersion(t.Version)
}

// Compatible reports whether the table is at least minVersion. An empty
// minimum accepts any valid table version.
func (t Table) Compatible(minVersion string) bool {
	v := t.SemVer()
	if v == "" {
		return false
	}
	floor := canonicalVersion(minVersion)
	if floor == "" {
		return strings.TrimSpace(minVersion) == ""
	}
	return semver.Compare(v, floor) >= 0
}

func canonicalVersion(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}
