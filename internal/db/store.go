package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chriserin/specdraw/internal/parser"
)

var ErrNotFound = errors.New("parse not found")

// ParseRecord is one stored parse result.
type ParseRecord struct {
	ID        int64                 `json:"id"`
	Title     string                `json:"title"`
	Source    string                `json:"source"`
	Spec      *parser.Specification `json:"spec,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// Store persists parse results.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveParse records spec and the source that produced it, returning the new id.
func (s *Store) SaveParse(ctx context.Context, source string, spec *parser.Specification) (int64, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return 0, fmt.Errorf("encoding spec: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO parses (title, source, spec_json, created_at) VALUES (?, ?, ?, ?)`,
		spec.Title, source, string(data), time.Now().UTC().Format(time.DateTime))
	if err != nil {
		return 0, fmt.Errorf("inserting parse: %w", err)
	}
	return res.LastInsertId()
}

// ListParses returns up to limit records, newest first, without their specs.
func (s *Store) ListParses(ctx context.Context, limit int) ([]ParseRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, source, created_at FROM parses ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying parses: %w", err)
	}
	defer rows.Close()

	records := []ParseRecord{}
	for rows.Next() {
		var r ParseRecord
		var created string
		if err := rows.Scan(&r.ID, &r.Title, &r.Source, &created); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.CreatedAt = parseTime(created)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return records, nil
}

// GetParse returns the record with id, or ErrNotFound.
func (s *Store) GetParse(ctx context.Context, id int64) (*ParseRecord, error) {
	var r ParseRecord
	var created, data string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, source, spec_json, created_at FROM parses WHERE id = ?`, id).
		Scan(&r.ID, &r.Title, &r.Source, &data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying parse %d: %w", id, err)
	}

	r.Spec = &parser.Specification{}
	if err := json.Unmarshal([]byte(data), r.Spec); err != nil {
		return nil, fmt.Errorf("decoding parse %d: %w", id, err)
	}
	r.CreatedAt = parseTime(created)
	return &r, nil
}

// modernc returns DATETIME columns either as text or RFC 3339 depending on
// how they were written.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
