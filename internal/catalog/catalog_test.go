package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/janekbaraniewski/facetpanel/internal/selection"
)

func TestDefault(t *testing.T) {
	tbl := Default()

	want := []string{"material", "category", "metalType", "metalTones", "diamondWeight", "priceRange"}
	if got := tbl.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if !tbl.HasOption("material", "pearl") {
		t.Error("default table should include pearl")
	}
	if tbl.HasOption("material", "rings") {
		t.Error("rings is not a material")
	}
	if got := tbl.Label("priceRange", "100-500"); got != "$100 - $500" {
		t.Errorf("label = %q", got)
	}
	if got := tbl.Label("priceRange", "nope"); got != "nope" {
		t.Errorf("unknown label = %q, want value echoed", got)
	}
	if got := tbl.OptionCount(); got != 35 {
		t.Errorf("option count = %d, want 35", got)
	}
	if tbl.SemVer() != "v1.0.0" {
		t.Errorf("semver = %q", tbl.SemVer())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr []error
	}{
		{
			name: "valid",
			table: Table{Version: "2.1.0", Categories: []Category{
				{Key: "material", Options: []Option{{Label: "Gold", Value: "gold"}}},
			}},
		},
		{
			name:    "bad version and no categories",
			table:   Table{Version: "latest"},
			wantErr: []error{ErrInvalidVersion, ErrNoCategories},
		},
		{
			name: "duplicate key",
			table: Table{Version: "1.0.0", Categories: []Category{
				{Key: "material"}, {Key: "material"},
			}},
			wantErr: []error{ErrDuplicateKey},
		},
		{
			name: "duplicate value and empty key",
			table: Table{Version: "1.0.0", Categories: []Category{
				{Key: "material", Options: []Option{{Value: "gold"}, {Value: "gold"}}},
				{Key: " "},
			}},
			wantErr: []error{ErrDuplicateValue, ErrEmptyKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("error %v does not wrap %v", err, want)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	content := `{"name":"outlet","version":"1.2.0","categories":[
  {"key":"material","title":"Material","options":[{"label":"Gold","value":"gold"},{"label":"Silver","value":"silver"}]},
  {"key":"priceRange","title":"Price Range","options":[{"label":"Under $500","value":"0-500"}]}
]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tbl.Name != "outlet" || len(tbl.Categories) != 2 {
		t.Errorf("loaded %+v", tbl)
	}
	if tbl.HasOption("material", "pearl") {
		t.Error("file table should replace the default, not merge")
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	tbl, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tbl.Name != "storefront" {
		t.Errorf("name = %q, want storefront", tbl.Name)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"version":"1.0.0","categories":[{"key":"a"},{"key":"a"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
	if err != nil && !strings.Contains(err.Error(), bad) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestSanitize(t *testing.T) {
	tbl := Default()
	in := selection.State{
		"material": {"gold", "plutonium", "gold"},
		"category": {"rings"},
		"gemstone": {"ruby"},
		"colour":   {},
	}

	out, dropped := tbl.Sanitize(in)

	if got := out["material"]; !reflect.DeepEqual(got, []string{"gold"}) {
		t.Errorf("material = %v, want [gold]", got)
	}
	if got := out["category"]; !reflect.DeepEqual(got, []string{"rings"}) {
		t.Errorf("category = %v", got)
	}
	if _, ok := out["gemstone"]; ok {
		t.Error("unknown category kept")
	}
	if _, ok := out["colour"]; ok {
		t.Error("unknown empty category kept")
	}
	if len(out) != len(tbl.Categories) {
		t.Errorf("sanitized keys = %d, want %d", len(out), len(tbl.Categories))
	}
	wantDropped := []Dropped{{Key: "gemstone", Value: "ruby"}, {Key: "material", Value: "plutonium"}}
	if !reflect.DeepEqual(dropped, wantDropped) {
		t.Errorf("dropped = %v, want %v", dropped, wantDropped)
	}
}

func TestSanitize_EmptyUnknownCategoryDropsNothing(t *testing.T) {
	out, dropped := Default().Sanitize(selection.State{"colour": {}, "material": {}})

	if len(dropped) != 0 {
		t.Errorf("dropped = %v, want none", dropped)
	}
	if out.Total() != 0 {
		t.Errorf("total = %d, want 0", out.Total())
	}
}

func TestCompatible(t *testing.T) {
	tbl := Table{Version: "1.4.2"}
	tests := []struct {
		min  string
		want bool
	}{
		{"", true},
		{"1.0.0", true},
		{"v1.4.2", true},
		{"1.5", false},
		{"2.0.0", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := tbl.Compatible(tt.min); got != tt.want {
			t.Errorf("Compatible(%q) = %v, want %v", tt.min, got, tt.want)
		}
	}
	if (Table{Version: "x"}).Compatible("") {
		t.Error("invalid table version should never be compatible")
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	write := func(version string) {
		t.Helper()
		body := `{"name":"w","version":"` + version + `","categories":[{"key":"material","options":[{"label":"Gold","value":"gold"}]}]}`
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("1.0.0")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Table, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(tbl Table, err error) {
			if err == nil {
				reloaded <- tbl
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case tbl := <-reloaded:
			if tbl.Version == "1.1.0" {
				cancel()
				if err := <-done; err != nil {
					t.Fatalf("Watch() error: %v", err)
				}
				return
			}
		case <-tick.C:
			// The watcher may not be registered yet; keep writing until seen.
			write("1.1.0")
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}
