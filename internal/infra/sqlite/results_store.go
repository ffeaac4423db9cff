// Package sqlite keeps quiz results in a local SQLite file, the terminal
// client's equivalent of browser local storage.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"codequiz-service/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

// ResultsStore is a key-value table of result slots.
type ResultsStore struct {
	db *sql.DB
}

// Open creates (or reuses) the database at path and ensures the schema.
func Open(path string) (*ResultsStore, error) {
	if strings.TrimSpace(path) == "" {
		path = "codequiz.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &ResultsStore{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *ResultsStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS quiz_results (
		slot TEXT PRIMARY KEY,
		payload_json TEXT NOT NULL,
		saved_at_unix INTEGER NOT NULL
	);`)
	return err
}

func (s *ResultsStore) Close() error {
	return s.db.Close()
}

// Save replaces the payload of slot.
func (s *ResultsStore) Save(ctx context.Context, slot string, payload domain.ResultsPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quiz_results (slot, payload_json, saved_at_unix) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET payload_json = excluded.payload_json, saved_at_unix = excluded.saved_at_unix`,
		slot, string(raw), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}

func (s *ResultsStore) Load(ctx context.Context, slot string) (domain.ResultsPayload, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT payload_json FROM quiz_results WHERE slot = ?`, slot).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ResultsPayload{}, domain.ErrResultsNotFound
	}
	if err != nil {
		return domain.ResultsPayload{}, fmt.Errorf("load results: %w", err)
	}
	var payload domain.ResultsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return domain.ResultsPayload{}, fmt.Errorf("unmarshal results: %w", err)
	}
	return payload, nil
}
