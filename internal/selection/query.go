package selection

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Encode renders the state as a listing query: one parameter per non-empty
// category, values joined by commas, parameters sorted by key.
func Encode(s State) string {
	params := url.Values{}
	for _, key := range s.Keys() {
		if len(s[key]) == 0 {
			continue
		}
		params.Set(key, strings.Join(s[key], ","))
	}
	return params.Encode()
}

// Decode parses a listing query back into a state. Repeated parameters are
// merged, blank values dropped and duplicates removed in first-seen order.
// Nothing is checked against the category table; see catalog.Table.Sanitize.
func Decode(raw string) (State, error) {
	params, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if err != nil {
		return nil, fmt.Errorf("parsing filter query: %w", err)
	}

	out := make(State, len(params))
	for key, entries := range params {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		var values []string
		for _, entry := range entries {
			values = append(values, strings.Split(entry, ",")...)
		}
		values = lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
		out[key] = lo.Uniq(append(out[key], lo.Compact(values)...))
	}
	return out, nil
}
