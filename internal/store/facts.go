package store

import (
	"fmt"
	"time"
)

// LoadFacts returns all persisted fact tokens sorted ascending, or nil
// if none are stored.
func (db *DB) LoadFacts() ([]string, error) {
	rows, err := db.Query("SELECT token FROM facts ORDER BY token ASC")
	if err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}
	defer rows.Close()

	var facts []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		facts = append(facts, token)
	}
	return facts, rows.Err()
}

// SaveFacts replaces the persisted fact set with the given one,
// atomically.
func (db *DB) SaveFacts(facts []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("save facts: begin: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM facts"); err != nil {
		tx.Rollback()
		return fmt.Errorf("save facts: clear: %w", err)
	}

	now := time.Now().UnixMilli()
	for _, f := range facts {
		if _, err := tx.Exec("INSERT INTO facts (token, created_at) VALUES (?, ?)", f, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("save facts: insert %q: %w", f, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save facts: commit: %w", err)
	}
	return nil
}
