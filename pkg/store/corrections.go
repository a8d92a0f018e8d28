package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Correction records how the owner fixed an AI-parsed interaction. Recent
// corrections are fed back into the parsing prompt.
type Correction struct {
	ID           uuid.UUID
	OriginalText string
	AIOutput     string
	UserOutput   string
	CreatedAt    float64
}

const (
	insertCorrectionStatement = `
	INSERT INTO ai_corrections (id, original_text, ai_output, user_output)
	VALUES (?, ?, ?, ?)
	`

	getCorrectionStatement = `
	SELECT id, original_text, ai_output, user_output, created_at
	FROM ai_corrections
	WHERE id = ?
	`

	recentCorrectionsStatement = `
	SELECT id, original_text, ai_output, user_output, created_at
	FROM ai_corrections
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?
	`
)

func InsertCorrection(ctx context.Context, db *sql.DB, originalText, aiOutput, userOutput string) (Correction, error) {
	id := uuid.New()
	_, err := db.ExecContext(ctx, insertCorrectionStatement, id, originalText, aiOutput, userOutput)
	if err != nil {
		return Correction{}, fmt.Errorf("failed to insert correction: %w", err)
	}

	var c Correction
	err = db.QueryRowContext(ctx, getCorrectionStatement, id).Scan(&c.ID, &c.OriginalText, &c.AIOutput, &c.UserOutput, &c.CreatedAt)
	if err != nil {
		return Correction{}, fmt.Errorf("failed to read back correction: %w", err)
	}
	return c, nil
}

// RecentCorrections returns up to limit corrections, newest first.
func RecentCorrections(ctx context.Context, db *sql.DB, limit int) ([]Correction, error) {
	rows, err := db.QueryContext(ctx, recentCorrectionsStatement, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	var out []Correction
	for rows.Next() {
		var c Correction
		if err := rows.Scan(&c.ID, &c.OriginalText, &c.AIOutput, &c.UserOutput, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
