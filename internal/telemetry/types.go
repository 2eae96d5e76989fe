// Package telemetry records filter panel interactions in a local SQLite
// database so popular filters can be inspected later. It is an append-only
// log; nothing reads it back to restore a selection.
package telemetry

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindExpand   Kind = "expand"
	KindCollapse Kind = "collapse"
	KindSelect   Kind = "select"
	KindDeselect Kind = "deselect"
	KindClear    Kind = "clear"
	KindApply    Kind = "apply"
)

type Event struct {
	ID         string
	OccurredAt time.Time
	Session    string
	Kind       Kind
	Category   string
	Value      string
	// Total is the selected-value count after the interaction.
	Total int
}

// NewSession returns an identifier grouping the events of one panel run.
func NewSession() string {
	return uuid.NewString()
}

// ValueCount is one row of TopValues.
type ValueCount struct {
	Category string
	Value    string
	Count    int
}
