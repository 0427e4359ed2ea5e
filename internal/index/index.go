// Package index provides FTS5 full-text search over pattern text. The
// index lives entirely in memory and is rebuilt from the corpus snapshot
// on every load; there is no on-disk database.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"plq/internal/corpus"
)

// Hit is one search result. Rank reflects match quality, not salience:
// exact phrase matches rank above prefix matches above substring
// fallbacks.
type Hit struct {
	ID        string
	Number    int
	Name      string
	MatchType string
	Rank      float64
}

// Index is an in-memory FTS5 index over pattern name, context, problem
// and solution text.
type Index struct {
	db *sql.DB
}

// Build creates the index and loads every pattern from the snapshot.
func Build(ctx context.Context, snap *corpus.Snapshot) (*Index, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// The pool would hand each connection its own empty :memory: database.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := idx.load(ctx, snap); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close releases the underlying database.
func (i *Index) Close() error {
	return i.db.Close()
}

func (i *Index) initSchema(ctx context.Context) error {
	_, err := i.db.ExecContext(ctx, `
		CREATE TABLE patterns_fts_content (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			number INTEGER NOT NULL,
			name TEXT NOT NULL,
			context TEXT,
			problem TEXT,
			solution TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create content table: %w", err)
	}

	_, err = i.db.ExecContext(ctx, `
		CREATE VIRTUAL TABLE patterns_fts USING fts5(
			name,
			context,
			problem,
			solution,
			content='patterns_fts_content',
			content_rowid='rowid'
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create fts table: %w", err)
	}
	return nil
}

// load bulk-inserts all patterns in one transaction and rebuilds the
// FTS table from the content table.
func (i *Index) load(ctx context.Context, snap *corpus.Snapshot) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO patterns_fts_content (id, number, name, context, problem, solution)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range snap.Patterns {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Number, p.Name, p.Context, p.Problem, p.Solution); err != nil {
			return fmt.Errorf("failed to insert pattern %s: %w", p.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO patterns_fts(patterns_fts) VALUES('rebuild')"); err != nil {
		return fmt.Errorf("failed to rebuild fts: %w", err)
	}
	return tx.Commit()
}

// Search looks up patterns by free text. Exact phrase matches come
// first, then prefix matches, then a LIKE fallback for substrings, with
// duplicates filtered. Within one tier, results order by bm25 rank then
// ascending pattern number so output stays deterministic.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return []Hit{}, nil
	}

	results := []Hit{}
	seen := make(map[string]bool)
	appendNew := func(hits []Hit) {
		for _, h := range hits {
			if !seen[h.ID] {
				seen[h.ID] = true
				results = append(results, h)
			}
		}
	}

	exact, err := i.searchMatch(ctx, fmt.Sprintf(`"%s"`, escapeFTS5(query)), "exact", 1.0, limit)
	if err != nil {
		return nil, err
	}
	appendNew(exact)

	if len(results) < limit {
		prefix, err := i.searchMatch(ctx, fmt.Sprintf(`%s*`, escapeFTS5(query)), "prefix", 0.8, limit-len(results))
		if err == nil {
			appendNew(prefix)
		}
	}

	if len(results) < limit {
		like, err := i.searchLike(ctx, query, limit-len(results))
		if err != nil {
			return nil, err
		}
		appendNew(like)
	}

	return results, nil
}

func (i *Index) searchMatch(ctx context.Context, ftsQuery, matchType string, rank float64, limit int) ([]Hit, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT c.id, c.number, c.name
		FROM patterns_fts f
		JOIN patterns_fts_content c ON f.rowid = c.rowid
		WHERE patterns_fts MATCH ?
		ORDER BY bm25(patterns_fts, 2.0, 1.0, 1.0, 1.0), c.number
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHits(rows, matchType, rank)
}

func (i *Index) searchLike(ctx context.Context, query string, limit int) ([]Hit, error) {
	pattern := "%" + query + "%"
	rows, err := i.db.QueryContext(ctx, `
		SELECT id, number, name
		FROM patterns_fts_content
		WHERE name LIKE ? OR context LIKE ? OR problem LIKE ? OR solution LIKE ?
		ORDER BY number
		LIMIT ?
	`, pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHits(rows, "substring", 0.5)
}

func scanHits(rows *sql.Rows, matchType string, rank float64) ([]Hit, error) {
	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.ID, &h.Number, &h.Name); err != nil {
			return nil, err
		}
		h.MatchType = matchType
		h.Rank = rank
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// escapeFTS5 neutralizes FTS5 query syntax in user input.
func escapeFTS5(query string) string {
	replacer := strings.NewReplacer(
		`"`, `""`,
		`*`, ` `,
		`(`, ` `,
		`)`, ` `,
	)
	return strings.TrimSpace(replacer.Replace(query))
}
