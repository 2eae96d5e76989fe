package selection

import (
	"log"
	"sort"

	"github.com/samber/lo"
)

// Mode records who owns the selection state. It is fixed when the model is
// built and never changes afterwards.
type Mode int

const (
	// Owned keeps and mutates its own copy of the state.
	Owned Mode = iota
	// Delegated renders from an externally supplied snapshot and only
	// reports changes through the callbacks; its own copy stays inert.
	Delegated
)

func (m Mode) String() string {
	switch m {
	case Owned:
		return "owned"
	case Delegated:
		return "delegated"
	default:
		return "unknown"
	}
}

// Options configures a Model. Every field is optional.
type Options struct {
	// Initial seeds the self-owned state. Ignored when External is set.
	Initial State
	// External switches the model into Delegated mode when non-nil.
	External State
	// OnChange receives the complete state after every mutation.
	OnChange func(State)
	// OnClear, when set, replaces OnChange for ClearAll.
	OnClear func()
}

type Model struct {
	mode     Mode
	keys     []string
	internal State
	external State
	expanded map[string]bool
	onChange func(State)
	onClear  func()
}

// New builds a model for the given category keys. The ownership mode is
// Delegated when opts.External is non-nil and Owned otherwise.
func New(keys []string, opts Options) *Model {
	m := &Model{
		keys:     append([]string(nil), keys...),
		internal: Empty(keys),
		expanded: make(map[string]bool),
		onChange: opts.OnChange,
		onClear:  opts.OnClear,
	}

	if opts.External != nil {
		m.mode = Delegated
		m.external = opts.External.Clone()
		return m
	}

	m.mode = Owned
	for k, values := range opts.Initial {
		m.internal[k] = lo.Uniq(values)
	}
	return m
}

func (m *Model) Mode() Mode { return m.mode }

// Keys returns the category keys the model was built with.
func (m *Model) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *Model) current() State {
	if m.mode == Delegated {
		return m.external
	}
	return m.internal
}

// Sync replaces the external snapshot. The owner calls it after applying a
// change it was notified about. Owned models ignore it.
func (m *Model) Sync(external State) {
	if m.mode != Delegated {
		return
	}
	m.external = external.Clone()
}

// ToggleExpansion flips the expansion flag of key and returns the new value.
// Keys outside the model's category list are tracked like any other.
func (m *Model) ToggleExpansion(key string) bool {
	m.expanded[key] = !m.expanded[key]
	return m.expanded[key]
}

// SetExpanded marks the given sections as open.
func (m *Model) SetExpanded(keys ...string) {
	for _, k := range keys {
		m.expanded[k] = true
	}
}

func (m *Model) IsExpanded(key string) bool {
	return m.expanded[key]
}

// Expanded lists the open sections, sorted.
func (m *Model) Expanded() []string {
	out := lo.Filter(lo.Keys(m.expanded), func(k string, _ int) bool { return m.expanded[k] })
	sort.Strings(out)
	return out
}

// SetOptionSelected adds value to key when selected is true and removes every
// occurrence of it otherwise. Adding twice has no further effect.
func (m *Model) SetOptionSelected(key, value string, selected bool) {
	next := m.current().with(key, value, selected)
	if m.mode == Owned {
		m.internal = next
	}
	if m.onChange != nil {
		m.onChange(next.Clone())
	}
}

// ClearAll empties every category. A registered OnClear callback is called
// instead of OnChange.
func (m *Model) ClearAll() {
	empty := Empty(m.allKeys())
	if m.mode == Owned {
		m.internal = empty
	}

	if m.onClear != nil {
		m.onClear()
		return
	}
	if m.onChange != nil {
		m.onChange(empty.Clone())
	}
}

// ApplyFilters changes nothing. Selection changes already reach the owner
// through OnChange; this is the hook for a future server-side apply.
func (m *Model) ApplyFilters() State {
	state := m.State()
	log.Printf("selection: apply filters %q (%d selected)", Encode(state), state.Total())
	return state
}

func (m *Model) TotalSelectedCount() int {
	return m.current().Total()
}

func (m *Model) CategoryCount(key string) int {
	return len(m.current()[key])
}

func (m *Model) Selected(key string) []string {
	return append([]string{}, m.current()[key]...)
}

func (m *Model) IsSelected(key, value string) bool {
	return m.current().Contains(key, value)
}

// State returns a copy of the authoritative state: the external snapshot in
// Delegated mode, the model's own copy otherwise.
func (m *Model) State() State {
	return m.current().Clone()
}

// Internal returns a copy of the self-owned state regardless of mode.
func (m *Model) Internal() State {
	return m.internal.Clone()
}

func (m *Model) allKeys() []string {
	keys := append([]string(nil), m.keys...)
	keys = append(keys, lo.Keys(m.current())...)
	return lo.Uniq(keys)
}
