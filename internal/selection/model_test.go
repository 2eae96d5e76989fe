package selection

import (
	"reflect"
	"testing"
)

var testKeys = []string{"material", "category", "metalType", "metalTones", "diamondWeight", "priceRange"}

func TestNew_StartsEmptyAndCollapsed(t *testing.T) {
	m := New(testKeys, Options{})

	if m.Mode() != Owned {
		t.Fatalf("mode = %v, want owned", m.Mode())
	}
	if got := m.TotalSelectedCount(); got != 0 {
		t.Errorf("total = %d, want 0", got)
	}
	for _, k := range testKeys {
		if m.IsExpanded(k) {
			t.Errorf("%s expanded on start", k)
		}
		if sel := m.Selected(k); len(sel) != 0 {
			t.Errorf("%s selection = %v, want empty", k, sel)
		}
	}
}

func TestSetOptionSelected_Idempotent(t *testing.T) {
	m := New(testKeys, Options{})

	m.SetOptionSelected("material", "gold", true)
	m.SetOptionSelected("material", "gold", true)

	if got := m.Selected("material"); !reflect.DeepEqual(got, []string{"gold"}) {
		t.Errorf("material = %v, want [gold]", got)
	}
	if got := m.TotalSelectedCount(); got != 1 {
		t.Errorf("total = %d, want 1", got)
	}
}

func TestSetOptionSelected_SelectThenDeselectRestoresLength(t *testing.T) {
	m := New(testKeys, Options{Initial: State{"metalType": {"14k", "18k"}}})
	before := len(m.Selected("metalType"))

	m.SetOptionSelected("metalType", "platinum", true)
	m.SetOptionSelected("metalType", "platinum", false)

	if m.IsSelected("metalType", "platinum") {
		t.Error("platinum still selected")
	}
	if got := len(m.Selected("metalType")); got != before {
		t.Errorf("len = %d, want %d", got, before)
	}
}

func TestSetOptionSelected_DeselectRemovesEveryOccurrence(t *testing.T) {
	m := New(testKeys, Options{External: State{"material": {"gold", "silver", "gold"}}})
	var got State
	m.onChange = func(s State) { got = s }

	m.SetOptionSelected("material", "gold", false)

	if want := []string{"silver"}; !reflect.DeepEqual(got["material"], want) {
		t.Errorf("material = %v, want %v", got["material"], want)
	}
}

func TestTotalSelectedCount_MatchesSumAfterMutations(t *testing.T) {
	m := New(testKeys, Options{})
	ops := []struct {
		key, value string
		selected   bool
	}{
		{"material", "gold", true},
		{"material", "silver", true},
		{"category", "rings", true},
		{"material", "gold", false},
		{"priceRange", "under-100", true},
		{"priceRange", "under-100", true},
		{"diamondWeight", "0.50", false},
	}

	for i, op := range ops {
		m.SetOptionSelected(op.key, op.value, op.selected)
		sum := 0
		for _, k := range m.Keys() {
			sum += m.CategoryCount(k)
		}
		if got := m.TotalSelectedCount(); got != sum {
			t.Fatalf("step %d: total = %d, sum = %d", i, got, sum)
		}
	}
	if got := m.TotalSelectedCount(); got != 3 {
		t.Errorf("final total = %d, want 3", got)
	}
}

func TestToggleExpansion_TwiceRestores(t *testing.T) {
	m := New(testKeys, Options{})

	if !m.ToggleExpansion("material") {
		t.Fatal("first toggle should expand")
	}
	if m.ToggleExpansion("material") {
		t.Fatal("second toggle should collapse")
	}
	if m.IsExpanded("material") {
		t.Error("material still expanded")
	}

	m.ToggleExpansion("not-a-category")
	if !m.IsExpanded("not-a-category") {
		t.Error("unknown keys should be tracked")
	}
	if got := m.Expanded(); !reflect.DeepEqual(got, []string{"not-a-category"}) {
		t.Errorf("expanded = %v", got)
	}
}

func TestScenario_OwnedSelectAndClear(t *testing.T) {
	m := New(testKeys, Options{})

	m.SetOptionSelected("material", "gold", true)
	if got := m.Selected("material"); !reflect.DeepEqual(got, []string{"gold"}) {
		t.Fatalf("material = %v, want [gold]", got)
	}
	if got := m.TotalSelectedCount(); got != 1 {
		t.Fatalf("total = %d, want 1", got)
	}

	m.SetOptionSelected("category", "rings", true)
	if got := m.TotalSelectedCount(); got != 2 {
		t.Fatalf("total = %d, want 2", got)
	}

	m.ClearAll()
	if got := m.TotalSelectedCount(); got != 0 {
		t.Fatalf("total after clear = %d, want 0", got)
	}
	if len(m.Selected("material")) != 0 || len(m.Selected("category")) != 0 {
		t.Error("selections not emptied")
	}
}

func TestScenario_DelegatedNotifiesAndLeavesInternalCopy(t *testing.T) {
	var notified []State
	m := New(testKeys, Options{
		External: State{"material": {"silver"}},
		OnChange: func(s State) { notified = append(notified, s) },
	})
	internalBefore := m.Internal()

	m.SetOptionSelected("material", "gold", true)

	if m.Mode() != Delegated {
		t.Fatalf("mode = %v, want delegated", m.Mode())
	}
	if len(notified) != 1 {
		t.Fatalf("callback calls = %d, want 1", len(notified))
	}
	if got := notified[0]["material"]; !reflect.DeepEqual(got, []string{"silver", "gold"}) {
		t.Errorf("callback material = %v, want [silver gold]", got)
	}
	if !reflect.DeepEqual(m.Internal(), internalBefore) {
		t.Errorf("internal copy changed: %v", m.Internal())
	}
	// The owner has not synced yet, so reads still come from its snapshot.
	if got := m.Selected("material"); !reflect.DeepEqual(got, []string{"silver"}) {
		t.Errorf("material = %v, want [silver]", got)
	}

	m.Sync(notified[0])
	if got := m.TotalSelectedCount(); got != 2 {
		t.Errorf("total after sync = %d, want 2", got)
	}
}

func TestClearAll_PrefersClearCallback(t *testing.T) {
	changes, clears := 0, 0
	m := New(testKeys, Options{
		External: State{"material": {"gold"}},
		OnChange: func(State) { changes++ },
		OnClear:  func() { clears++ },
	})

	m.ClearAll()

	if clears != 1 || changes != 0 {
		t.Errorf("clears = %d, changes = %d; want 1, 0", clears, changes)
	}
	// Delegated: the owner decides when the snapshot empties.
	if got := m.TotalSelectedCount(); got != 1 {
		t.Errorf("total = %d, want 1 until synced", got)
	}
}

func TestClearAll_FallsBackToChangeCallback(t *testing.T) {
	var got State
	m := New(testKeys, Options{
		Initial:  State{"material": {"gold"}, "category": {"rings"}},
		OnChange: func(s State) { got = s },
	})

	m.ClearAll()

	if got == nil {
		t.Fatal("OnChange not called")
	}
	if got.Total() != 0 {
		t.Errorf("notified total = %d, want 0", got.Total())
	}
	for _, k := range testKeys {
		v, ok := got[k]
		if !ok || v == nil || len(v) != 0 {
			t.Errorf("%s = %v (present %v), want empty sequence", k, v, ok)
		}
	}
	if m.TotalSelectedCount() != 0 {
		t.Error("owned state not reset")
	}
}

func TestClearAll_DelegatedNotifiesEmptyState(t *testing.T) {
	var notified State
	calls := 0
	m := New([]string{"material"}, Options{
		External: State{"material": {"gold"}, "extra": {"x"}},
		OnChange: func(s State) { notified = s; calls++ },
	})
	internalBefore := m.Internal()

	m.ClearAll()

	if calls != 1 {
		t.Fatalf("callback calls = %d, want 1", calls)
	}
	want := State{"material": {}, "extra": {}}
	if !reflect.DeepEqual(notified, want) {
		t.Errorf("notified = %v, want %v", notified, want)
	}
	if !reflect.DeepEqual(m.Internal(), internalBefore) {
		t.Errorf("internal copy changed: %v", m.Internal())
	}
	if got := m.TotalSelectedCount(); got != 2 {
		t.Errorf("total before sync = %d, want 2", got)
	}

	m.Sync(notified)
	if got := m.TotalSelectedCount(); got != 0 {
		t.Errorf("total after sync = %d, want 0", got)
	}
}

func TestNoCallbacks_IsSilent(t *testing.T) {
	m := New(nil, Options{})

	m.SetOptionSelected("material", "gold", true)
	m.ClearAll()
	m.ApplyFilters()

	if m.TotalSelectedCount() != 0 {
		t.Errorf("total = %d, want 0", m.TotalSelectedCount())
	}
}

func TestApplyFilters_DoesNotMutate(t *testing.T) {
	calls := 0
	m := New(testKeys, Options{OnChange: func(State) { calls++ }})
	m.SetOptionSelected("material", "gold", true)
	before := m.State()

	applied := m.ApplyFilters()

	if !reflect.DeepEqual(applied, before) || !reflect.DeepEqual(m.State(), before) {
		t.Errorf("apply changed state: %v -> %v", before, m.State())
	}
	if calls != 1 {
		t.Errorf("OnChange calls = %d, want 1 (apply must not notify)", calls)
	}
}

func TestCallbackReceivesCopy(t *testing.T) {
	var got State
	m := New(testKeys, Options{OnChange: func(s State) { got = s }})

	m.SetOptionSelected("material", "gold", true)
	got["material"][0] = "tampered"

	if m.Selected("material")[0] != "gold" {
		t.Error("callback state aliases model storage")
	}
}
