package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const submissionColumns = `
	id, gender, age, occasion, budget, preferences, liked_notes,
	disliked_notes, source, result_count, created_at
`

// CreateSubmission inserts a new quiz submission
func (db *DB) CreateSubmission(ctx context.Context, s *Submission) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	prefs, err := encodeJSON(s.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	liked, err := encodeJSON(s.LikedNotes)
	if err != nil {
		return fmt.Errorf("failed to encode liked notes: %w", err)
	}
	disliked, err := encodeJSON(s.DislikedNotes)
	if err != nil {
		return fmt.Errorf("failed to encode disliked notes: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO submissions (`+submissionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID, s.Gender, s.Age, s.Occasion, s.Budget, prefs, liked,
		disliked, s.Source, s.ResultCount, s.CreatedAt,
	)
	return err
}

// GetSubmission retrieves a submission by ID
func (db *DB) GetSubmission(ctx context.Context, id string) (*Submission, error) {
	row := db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)

	s, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListSubmissions retrieves submissions with optional filters, newest first
func (db *DB) ListSubmissions(ctx context.Context, opts ListOptions) ([]Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE 1=1`
	args := []interface{}{}

	if opts.Occasion != nil {
		query += " AND occasion = ?"
		args = append(args, *opts.Occasion)
	}
	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, opts.Since.UTC())
	}

	query += " ORDER BY created_at DESC"

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

	var submissions []Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *s)
	}

	return submissions, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row scanner) (*Submission, error) {
	s := &Submission{}
	var prefs, liked, disliked sql.NullString

	if err := row.Scan(
		&s.ID, &s.Gender, &s.Age, &s.Occasion, &s.Budget, &prefs, &liked,
		&disliked, &s.Source, &s.ResultCount, &s.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := decodeJSON(prefs, &s.Preferences); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	if err := decodeJSON(liked, &s.LikedNotes); err != nil {
		return nil, fmt.Errorf("failed to decode liked notes: %w", err)
	}
	if err := decodeJSON(disliked, &s.DislikedNotes); err != nil {
		return nil, fmt.Errorf("failed to decode disliked notes: %w", err)
	}
	return s, nil
}

// GetStats returns aggregate statistics, optionally since a given time
func (db *DB) GetStats(ctx context.Context, since *time.Time) (*Stats, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if since != nil {
		where += " AND created_at >= ?"
		args = append(args, since.UTC())
	}

	stats := &Stats{}
	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(AVG(age), 0),
			COALESCE(SUM(CASE WHEN source = 'ai' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN source = 'local' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN result_count = 0 THEN 1 ELSE 0 END), 0)
		FROM submissions `+where, args...).Scan(
		&stats.TotalSubmissions, &stats.AverageAge,
		&stats.AIServed, &stats.LocalServed, &stats.NoMatches,
	)
	if err != nil {
		return nil, err
	}

	if stats.ByGender, err = db.countBy(ctx, "gender", where, args); err != nil {
		return nil, err
	}
	if stats.ByOccasion, err = db.countBy(ctx, "occasion", where, args); err != nil {
		return nil, err
	}
	if stats.ByBudget, err = db.countBy(ctx, "budget", where, args); err != nil {
		return nil, err
	}

	return stats, nil
}

// countBy groups submissions by one of the fixed enum columns
func (db *DB) countBy(ctx context.Context, column, where string, args []interface{}) (map[string]int, error) {
	rows, err := db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s, COUNT(*) FROM submissions %s GROUP BY %s", column, where, column),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}
