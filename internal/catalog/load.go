package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrEmptyKey       = errors.New("category key is empty")
	ErrDuplicateKey   = errors.New("duplicate category key")
	ErrDuplicateValue = errors.New("duplicate option value")
	ErrInvalidVersion = errors.New("invalid table version")
	ErrNoCategories   = errors.New("table has no categories")
)

//go:embed default.json
var defaultTable []byte

// Default returns the built-in storefront table. It is only a fallback for
// when no table file is configured.
func Default() Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded table is invalid: %v", err))
	}
	return t
}

// Parse decodes and validates a JSON table.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Load reads a table from path. An empty path yields the default table.
func Load(path string) (Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading catalog: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return Table{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return t, nil
}

// Validate reports every structural problem in the table at once.
func (t Table) Validate() error {
	var errs []error

	if t.SemVer() == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidVersion, t.Version))
	}
	if len(t.Categories) == 0 {
		errs = append(errs, ErrNoCategories)
	}

	seenKeys := make(map[string]bool, len(t.Categories))
	for i, c := range t.Categories {
		if strings.TrimSpace(c.Key) == "" {
			errs = append(errs, fmt.Errorf("category %d: %w", i, ErrEmptyKey))
			continue
		}
		if seenKeys[c.Key] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateKey, c.Key))
		}
		seenKeys[c.Key] = true

		seenValues := make(map[string]bool, len(c.Options))
		for _, o := range c.Options {
			if strings.TrimSpace(o.Value) == "" {
				errs = append(errs, fmt.Errorf("category %s: empty option value (label %q)", c.Key, o.Label))
				continue
			}
			if seenValues[o.Value] {
				errs = append(errs, fmt.Errorf("category %s: %w: %s", c.Key, ErrDuplicateValue, o.Value))
			}
			seenValues[o.Value] = true
		}
	}

	return errors.Join(errs...)
}
