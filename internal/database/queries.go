package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vijay-prabhu/resumescan/internal/match"
)

// topMissingLimit caps the keywords reported by GetStats
const topMissingLimit = 10

const analysisColumns = `
	id, resume_source, resume_hash, job_hash, job_excerpt,
	score, missing_count, missing_json, notes_json, created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateAnalysis inserts a new analysis record
func (db *DB) CreateAnalysis(ctx context.Context, a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()

	missing := a.Missing
	if missing == nil {
		missing = map[match.Category][]string{}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return fmt.Errorf("failed to encode missing keywords: %w", err)
	}

	notes := a.Notes
	if notes == nil {
		notes = []string{}
	}
	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.ResumeSource, a.ResumeHash, a.JobHash, a.JobExcerpt,
		a.Score, a.MissingCount, string(missingJSON), string(notesJSON), a.CreatedAt,
	)
	return err
}

// GetAnalysis retrieves an analysis by ID or unambiguous ID prefix.
// It returns nil, nil when nothing matches.
func (db *DB) GetAnalysis(ctx context.Context, id string) (*Analysis, error) {
	id = strings.TrimSpace(id)
	prefix := escapeLike(id)
	if prefix == "" {
		return nil, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses WHERE id = ? OR id LIKE ?
		ORDER BY (id = ?) DESC, created_at DESC LIMIT 2
	`, id, prefix+"%", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(found) == 0:
		return nil, nil
	case found[0].ID == id || len(found) == 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("ambiguous analysis id prefix: %s", id)
	}
}

// ListAnalyses retrieves analyses, newest first, with optional filters
func (db *DB) ListAnalyses(ctx context.Context, opts ListOptions) ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE 1=1`
	args := []interface{}{}

	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, opts.Since.UTC())
	}
	if opts.MinScore != nil {
		query += " AND score >= ?"
		args = append(args, *opts.MinScore)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}

	return analyses, rows.Err()
}

// DeleteAnalysis deletes an analysis by ID
func (db *DB) DeleteAnalysis(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

// GetStats computes aggregate statistics, optionally since a point in time
func (db *DB) GetStats(ctx context.Context, since *time.Time) (*Stats, error) {
	stats := &Stats{TopMissing: []KeywordCount{}}

	whereClause := ""
	args := []interface{}{}
	if since != nil {
		whereClause = "WHERE created_at >= ?"
		args = append(args, since.UTC())
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(DISTINCT resume_hash),
			COUNT(DISTINCT job_hash),
			COALESCE(AVG(score), 0),
			COALESCE(MAX(score), 0),
			COALESCE(MIN(score), 0)
		FROM analyses %s
	`, whereClause)

	if err := db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalAnalyses, &stats.DistinctResume, &stats.DistinctJobs,
		&stats.AvgScore, &stats.MaxScore, &stats.MinScore,
	); err != nil {
		return nil, err
	}

	if stats.TotalAnalyses == 0 {
		return stats, nil
	}

	// Aggregates lose the column type, so read the newest row directly
	var last time.Time
	lastQuery := fmt.Sprintf("SELECT created_at FROM analyses %s ORDER BY created_at DESC LIMIT 1", whereClause)
	if err := db.QueryRowContext(ctx, lastQuery, args...).Scan(&last); err != nil {
		return nil, err
	}
	stats.LastAnalysisAt = &last

	top, err := db.topMissing(ctx, whereClause, args)
	if err != nil {
		return nil, err
	}
	stats.TopMissing = top

	return stats, nil
}

// topMissing counts missing keywords across the selected analyses
func (db *DB) topMissing(ctx context.Context, whereClause string, args []interface{}) ([]KeywordCount, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT missing_json FROM analyses %s", whereClause), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		missing, err := decodeMissing(raw)
		if err != nil {
			return nil, err
		}
		for _, tokens := range missing {
			for _, token := range tokens {
				counts[token]++
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	top := make([]KeywordCount, 0, len(counts))
	for keyword, count := range counts {
		top = append(top, KeywordCount{Keyword: keyword, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Keyword < top[j].Keyword
	})
	if len(top) > topMissingLimit {
		top = top[:topMissingLimit]
	}

	return top, nil
}

func scanAnalysis(row rowScanner) (*Analysis, error) {
	a := &Analysis{}
	var missingJSON, notesJSON string

	if err := row.Scan(
		&a.ID, &a.ResumeSource, &a.ResumeHash, &a.JobHash, &a.JobExcerpt,
		&a.Score, &a.MissingCount, &missingJSON, &notesJSON, &a.CreatedAt,
	); err != nil {
		return nil, err
	}

	missing, err := decodeMissing(missingJSON)
	if err != nil {
		return nil, err
	}
	a.Missing = missing

	if err := json.Unmarshal([]byte(notesJSON), &a.Notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes for %s: %w", a.ID, err)
	}
	if a.Notes == nil {
		a.Notes = []string{}
	}

	return a, nil
}

func decodeMissing(raw string) (map[match.Category][]string, error) {
	missing := map[match.Category][]string{}
	if err := json.Unmarshal([]byte(raw), &missing); err != nil {
		return nil, fmt.Errorf("failed to decode missing keywords: %w", err)
	}
	return missing, nil
}

// escapeLike strips LIKE wildcards from user input
func escapeLike(s string) string {
	r := strings.NewReplacer("%", "", "_", "")
	return r.Replace(s)
}
