// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuikey/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const (
	// candidateSep separates candidates in the candidates column; kindSep
	// splits each candidate into its kind name and text.
	candidateSep = "\x1f"
	kindSep      = "\x1e"
	// timeLayout has fixed width so timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store wraps SQLite access for commit history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS commits (
			id INTEGER PRIMARY KEY,
			committed_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			base_kind TEXT NOT NULL,
			base TEXT NOT NULL,
			kind TEXT NOT NULL,
			action TEXT NOT NULL,
			idx INTEGER NOT NULL,
			alignment TEXT NOT NULL,
			candidates TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_commits_committed_at ON commits(committed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_commits_action ON commits(action);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertCommit stores one committed callout selection.
func (s *Store) InsertCommit(ctx context.Context, rec model.CommitRecord) (int64, error) {
	texts := make([]string, 0, len(rec.Candidates))
	for _, c := range rec.Candidates {
		texts = append(texts, encodeCandidate(c))
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO commits (committed_at, lang, base_kind, base, kind, action, idx, alignment, candidates)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CommittedAt.UTC().Format(timeLayout),
		rec.Lang,
		rec.Base.Kind.String(),
		rec.Base.Text,
		rec.Action.Kind.String(),
		rec.Action.Text,
		rec.Index,
		rec.Alignment,
		strings.Join(texts, candidateSep),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func filterClauses(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, cfg.Lang)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "committed_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}

// ListCommits returns commits matching the filter, oldest first.
func (s *Store) ListCommits(ctx context.Context, cfg model.StatsConfig) ([]model.CommitRecord, error) {
	where, args := filterClauses(cfg)
	query := fmt.Sprintf(`SELECT committed_at, lang, base_kind, base, kind, action, idx, alignment, candidates
		FROM commits
		WHERE %s
		ORDER BY committed_at ASC, id ASC`, where)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CommitRecord
	for rows.Next() {
		var rec model.CommitRecord
		var committedAt, baseKind, kind, candidates string
		if err := rows.Scan(&committedAt, &rec.Lang, &baseKind, &rec.Base.Text, &kind, &rec.Action.Text, &rec.Index, &rec.Alignment, &candidates); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, committedAt)
		if err != nil {
			return nil, err
		}
		rec.CommittedAt = parsed
		rec.Base.Kind = model.ParseKind(baseKind)
		rec.Action.Kind = model.ParseKind(kind)
		if candidates != "" {
			for _, field := range strings.Split(candidates, candidateSep) {
				rec.Candidates = append(rec.Candidates, decodeCandidate(field))
			}
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// TopActions aggregates commit counts per action, most used first.
func (s *Store) TopActions(ctx context.Context, cfg model.StatsConfig) ([]model.ActionAggregate, error) {
	where, args := filterClauses(cfg)
	query := fmt.Sprintf(`SELECT kind, action, base_kind, base, COUNT(*) AS n, MAX(committed_at) AS last_used
		FROM commits
		WHERE %s
		GROUP BY kind, action, base_kind, base
		ORDER BY n DESC, action ASC`, where)
	if cfg.Top > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Top)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ActionAggregate
	for rows.Next() {
		var agg model.ActionAggregate
		var kind, baseKind, lastUsed string
		if err := rows.Scan(&kind, &agg.Action.Text, &baseKind, &agg.Base.Text, &agg.Count, &lastUsed); err != nil {
			return nil, err
		}
		agg.Action.Kind = model.ParseKind(kind)
		agg.Base.Kind = model.ParseKind(baseKind)
		parsed, err := time.Parse(timeLayout, lastUsed)
		if err != nil {
			return nil, err
		}
		agg.LastUsed = parsed
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountsForBase returns how often each alternate of base was committed.
func (s *Store) CountsForBase(ctx context.Context, base model.Action) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action, COUNT(*) FROM commits
		 WHERE base_kind = ? AND base = ?
		 GROUP BY action`,
		base.Kind.String(), base.Text)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[string]int{}
	for rows.Next() {
		var action string
		var n int
		if err := rows.Scan(&action, &n); err != nil {
			return nil, err
		}
		result[action] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func encodeCandidate(a model.Action) string {
	return a.Kind.String() + kindSep + a.Text
}

// decodeCandidate reads one candidate field. A field without a kind prefix is
// a character.
func decodeCandidate(field string) model.Action {
	kind, text, ok := strings.Cut(field, kindSep)
	if !ok {
		return model.Character(field)
	}
	return model.Action{Kind: model.ParseKind(kind), Text: text}
}
