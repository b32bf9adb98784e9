package search

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PgFTS implements Searcher using PostgreSQL full-text search as a fallback.
type PgFTS struct {
	db *sql.DB
}

// NewPgFTS creates a PostgreSQL FTS searcher.
func NewPgFTS(db *sql.DB) *PgFTS {
	return &PgFTS{db: db}
}

// Healthy always returns true. If Postgres is down, the whole app is down.
func (p *PgFTS) Healthy() bool {
	return true
}

// Search runs plainto_tsquery over generation_history with ts_rank
// ordering and ts_headline snippets.
func (p *PgFTS) Search(q Query) ([]Result, int, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, 0, nil
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	where := "g.user_id = $2 AND g.fts @@ plainto_tsquery('english', $1)"
	args := []any{q.Text, q.UserID}
	if q.FilterKind != "" {
		where += " AND g.kind = $3"
		args = append(args, q.FilterKind)
	}

	countSQL := fmt.Sprintf(`SELECT count(*) FROM generation_history g WHERE %s`, where)

	dataSQL := fmt.Sprintf(`
		SELECT g.id, g.kind, g.title,
			ts_headline('english', coalesce(g.snippet, ''), plainto_tsquery('english', $1), 'MaxFragments=1,MaxWords=30') AS snippet,
			g.user_id
		FROM generation_history g
		WHERE %s
		ORDER BY ts_rank(g.fts, plainto_tsquery('english', $1)) DESC
		LIMIT %d OFFSET %d`, where, limit, offset)

	ctx := context.Background()

	var total int
	if err := p.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgfts count: %w", err)
	}

	rows, err := p.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgfts query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.Kind, &r.Title, &r.Snippet, &r.UserID); err != nil {
			return nil, 0, fmt.Errorf("pgfts scan: %w", err)
		}
		results = append(results, r)
	}

	return results, total, rows.Err()
}

// LoadAllRecords returns all generation records for full reindexing.
func (p *PgFTS) LoadAllRecords(ctx context.Context) ([]GenerationRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, kind, title, snippet
		FROM generation_history
	`)
	if err != nil {
		return nil, fmt.Errorf("load generations: %w", err)
	}
	defer rows.Close()

	records := make([]GenerationRecord, 0)
	for rows.Next() {
		var rec GenerationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Kind, &rec.Title, &rec.Snippet); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return records, nil
}
