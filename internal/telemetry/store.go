package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func OpenStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating DB dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: opening DB: %w", err)
	}
	if err := configureSQLiteConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: configuring DB: %w", err)
	}

	store := NewStore(db)
	if err := store.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS filter_events (
			event_id TEXT PRIMARY KEY,
			occurred_at TEXT NOT NULL,
			session_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			category TEXT,
			value TEXT,
			total_selected INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_filter_events_occurred_at ON filter_events(occurred_at);`,
		`CREATE INDEX IF NOT EXISTS idx_filter_events_kind_value ON filter_events(kind, category, value);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("telemetry: init schema: %w", err)
		}
	}
	return nil
}

// Record appends ev to the log, filling in ID and OccurredAt when unset.
func (s *Store) Record(ctx context.Context, ev Event) (Event, error) {
	if strings.TrimSpace(ev.ID) == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = s.now()
	}
	ev.OccurredAt = ev.OccurredAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO filter_events (
			event_id, occurred_at, session_id, kind, category, value, total_selected
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		ev.ID,
		ev.OccurredAt.Format(time.RFC3339Nano),
		ev.Session,
		string(ev.Kind),
		nullable(ev.Category),
		nullable(ev.Value),
		ev.Total,
	)
	if err != nil {
		return Event{}, fmt.Errorf("telemetry: insert event: %w", err)
	}
	return ev, nil
}

// TopValues returns the most often selected values, most popular first.
func (s *Store) TopValues(ctx context.Context, limit int) ([]ValueCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, value, COUNT(*) AS n
		FROM filter_events
		WHERE kind = ? AND category IS NOT NULL AND value IS NOT NULL
		GROUP BY category, value
		ORDER BY n DESC, category ASC, value ASC
		LIMIT ?
	`, string(KindSelect), limit)
	if err != nil {
		return nil, fmt.Errorf("telemetry: query top values: %w", err)
	}
	defer rows.Close()

	var out []ValueCount
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Category, &vc.Value, &vc.Count); err != nil {
			return nil, fmt.Errorf("telemetry: scan top values: %w", err)
		}
		out = append(out, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("telemetry: iterate top values: %w", err)
	}
	return out, nil
}

// CountByKind returns how many events of each kind were recorded.
func (s *Store) CountByKind(ctx context.Context) (map[Kind]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM filter_events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("telemetry: query kinds: %w", err)
	}
	defer rows.Close()

	out := make(map[Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("telemetry: scan kinds: %w", err)
		}
		out[Kind(kind)] = n
	}
	return out, rows.Err()
}

func nullable(v string) interface{} {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
