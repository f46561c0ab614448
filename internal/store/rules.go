package store

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/pilahlab/pilah/internal/kb"
)

// LoadRules returns all persisted rules ordered by (priority desc, id
// asc), or nil if none are stored. A corrupt conditions column is
// treated as an absent store rather than a parse fault: the caller is
// expected to reinitialize and persist an empty store.
func (db *DB) LoadRules() ([]kb.Rule, error) {
	rows, err := db.Query(`
		SELECT id, conditions, conclusion, priority, description
		FROM rules
		ORDER BY priority DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	defer rows.Close()

	var rules []kb.Rule
	for rows.Next() {
		var r kb.Rule
		var conditions string
		if err := rows.Scan(&r.ID, &conditions, &r.Conclusion, &r.Priority, &r.Description); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		if err := json.Unmarshal([]byte(conditions), &r.Conditions); err != nil {
			log.Printf("load rules: corrupt conditions for %s, treating store as absent: %v", r.ID, err)
			return nil, nil
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// SaveRules replaces the persisted rule set with the given one,
// atomically.
func (db *DB) SaveRules(rules []kb.Rule) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("save rules: begin: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM rules"); err != nil {
		tx.Rollback()
		return fmt.Errorf("save rules: clear: %w", err)
	}

	now := time.Now().UnixMilli()
	for _, r := range rules {
		conditions, err := json.Marshal(r.Conditions)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("save rules: marshal conditions for %s: %w", r.ID, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO rules (id, conditions, conclusion, priority, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, r.ID, string(conditions), r.Conclusion, r.Priority, r.Description, now, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("save rules: insert %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save rules: commit: %w", err)
	}
	return nil
}
