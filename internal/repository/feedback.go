package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"feedback_service/internal/domain"
)

const feedbackColumns = `
	id, adjudicator_id, score, source_adjudicator_id, source_team_id,
	ignored, version, confirmed, created_at
`

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Submit writes a new version of a feedback submission and its answers in
// one transaction: the version is the next one for the uniqueness key
// (adjudicator, source adjudicator, source team), and any previously
// confirmed version matching the unconfirm key loses its confirmed flag.
// When dropAdjudicatorFromKey is set (team feedback under the oral-list
// preference) the unconfirm key omits the target adjudicator, so the team's
// previous feedback is superseded regardless of whom it targeted.
func (r *FeedbackRepository) Submit(ctx context.Context, fb *domain.Feedback, answers []domain.QuestionAnswer, dropAdjudicatorFromKey bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	versionQuery := `
		SELECT COALESCE(MAX(version), 0)
		FROM feedback
		WHERE adjudicator_id = $1
		  AND source_adjudicator_id IS NOT DISTINCT FROM $2
		  AND source_team_id IS NOT DISTINCT FROM $3
	`

	var latest int
	err = tx.QueryRowContext(ctx, versionQuery,
		fb.AdjudicatorID, fb.SourceAdjudicatorID, fb.SourceTeamID,
	).Scan(&latest)
	if err != nil {
		return err
	}
	fb.Version = latest + 1

	unconfirmQuery := `
		UPDATE feedback
		SET confirmed = FALSE
		WHERE confirmed
		  AND source_adjudicator_id IS NOT DISTINCT FROM $1
		  AND source_team_id IS NOT DISTINCT FROM $2
	`
	unconfirmArgs := []interface{}{fb.SourceAdjudicatorID, fb.SourceTeamID}
	if !dropAdjudicatorFromKey {
		unconfirmQuery += ` AND adjudicator_id = $3`
		unconfirmArgs = append(unconfirmArgs, fb.AdjudicatorID)
	}

	if _, err := tx.ExecContext(ctx, unconfirmQuery, unconfirmArgs...); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO feedback (
			id, adjudicator_id, score, source_adjudicator_id, source_team_id,
			ignored, version, confirmed, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	fb.Confirmed = true
	_, err = tx.ExecContext(ctx, insertQuery,
		id,
		fb.AdjudicatorID,
		fb.Score,
		fb.SourceAdjudicatorID,
		fb.SourceTeamID,
		fb.Ignored,
		fb.Version,
		fb.Confirmed,
		now,
	)
	if err != nil {
		return err
	}

	for _, a := range answers {
		if err := saveAnswer(ctx, tx, a.Question.ID, id, a.Value); err != nil {
			return fmt.Errorf("failed to save answer to question %s: %w", a.Question.Reference, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	fb.ID = id
	fb.Timestamp = now
	return nil
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`

	fb, err := scanFeedback(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fb, nil
}

// ListByTarget returns feedback about one adjudicator, newest version first.
func (r *FeedbackRepository) ListByTarget(ctx context.Context, adjudicatorID uuid.UUID, confirmedOnly bool) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE adjudicator_id = $1`
	if confirmedOnly {
		query += ` AND confirmed`
	}
	query += ` ORDER BY created_at DESC, version DESC`

	rows, err := r.db.QueryContext(ctx, query, adjudicatorID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var feedbacks []*domain.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, fb)
	}

	return feedbacks, rows.Err()
}

func (r *FeedbackRepository) SetIgnored(ctx context.Context, id uuid.UUID, ignored bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE feedback SET ignored = $1 WHERE id = $2`, ignored, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// SetConfirmed flips the confirmed flag. Confirming a version unconfirms
// every other version sharing its uniqueness key.
func (r *FeedbackRepository) SetConfirmed(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		result, err := r.db.ExecContext(ctx, `UPDATE feedback SET confirmed = FALSE WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	fb, err := scanFeedback(tx.QueryRowContext(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	siblingsQuery := `
		UPDATE feedback
		SET confirmed = FALSE
		WHERE confirmed
		  AND id <> $1
		  AND adjudicator_id = $2
		  AND source_adjudicator_id IS NOT DISTINCT FROM $3
		  AND source_team_id IS NOT DISTINCT FROM $4
	`
	if _, err := tx.ExecContext(ctx, siblingsQuery,
		fb.ID, fb.AdjudicatorID, fb.SourceAdjudicatorID, fb.SourceTeamID,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE feedback SET confirmed = TRUE WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func scanFeedback(row rowScanner) (*domain.Feedback, error) {
	var fb domain.Feedback
	err := row.Scan(
		&fb.ID,
		&fb.AdjudicatorID,
		&fb.Score,
		&fb.SourceAdjudicatorID,
		&fb.SourceTeamID,
		&fb.Ignored,
		&fb.Version,
		&fb.Confirmed,
		&fb.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &fb, nil
}
