// Package sqlite stores rules in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/siamese/pkg/siamese/kb"
	"github.com/cognicore/siamese/pkg/siamese/kbstore"
	"github.com/cognicore/siamese/pkg/siamese/parse"
	"github.com/cognicore/siamese/pkg/siamese/term"
)

// sqliteStore implements kbstore.Store on a SQLite database. Rules are
// stored in their canonical text form and re-parsed on load.
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite rule database with WAL mode
// enabled.
func Open(ctx context.Context, path string) (kbstore.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS rules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	functor TEXT NOT NULL,
	arity INTEGER NOT NULL,
	head TEXT NOT NULL,
	body TEXT NOT NULL,
	position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rules_pred ON rules(functor, arity);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// ReplaceRules swaps the stored rule set inside one transaction.
func (s *sqliteStore) ReplaceRules(ctx context.Context, rules []term.Rule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rules"); err != nil {
		return err
	}
	for i, r := range rules {
		if err := insertRule(ctx, tx, r, i+1); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AppendRule adds one rule after all existing ones.
func (s *sqliteStore) AppendRule(ctx context.Context, r term.Rule) error {
	var maxPos sql.NullInt64
	row := s.db.QueryRowContext(ctx, "SELECT MAX(position) FROM rules")
	if err := row.Scan(&maxPos); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := insertRule(ctx, tx, r, int(maxPos.Int64)+1); err != nil {
		return err
	}
	return tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRule(ctx context.Context, tx execer, r term.Rule, pos int) error {
	body := make([]string, len(r.Body))
	for i, g := range r.Body {
		body[i] = g.String()
	}
	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO rules(functor, arity, head, body, position) VALUES(?, ?, ?, ?, ?)",
		r.Head.Functor, len(r.Head.Args), r.Head.String(), string(bodyJSON), pos)
	return err
}

// LoadKnowledgeBase reads every rule back, in stored order.
func (s *sqliteStore) LoadKnowledgeBase(ctx context.Context) (*kb.KnowledgeBase, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT head, body FROM rules ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	base := kb.New()
	for rows.Next() {
		var headSrc, bodyJSON string
		if err := rows.Scan(&headSrc, &bodyJSON); err != nil {
			return nil, err
		}
		var body []string
		if err := json.Unmarshal([]byte(bodyJSON), &body); err != nil {
			return nil, fmt.Errorf("rule %q: %w", headSrc, err)
		}
		rule, err := parse.Rule(headSrc, body)
		if err != nil {
			return nil, fmt.Errorf("stored rule %q: %w", headSrc, err)
		}
		base.Add(rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return base, nil
}

// RuleCount returns the number of stored rules.
func (s *sqliteStore) RuleCount(ctx context.Context) (int, error) {
	var n int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rules")
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
