package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"feedback_service/internal/domain"
)

// ScoreHistoryRepository appends to and reads the adjudicator base score
// audit log. Rows are never updated or deleted.
type ScoreHistoryRepository struct {
	db *sql.DB
}

func NewScoreHistoryRepository(db *sql.DB) *ScoreHistoryRepository {
	return &ScoreHistoryRepository{db: db}
}

func (r *ScoreHistoryRepository) Append(ctx context.Context, h *domain.BaseScoreHistory) error {
	query := `
		INSERT INTO adjudicator_base_score_history (id, adjudicator_id, round_id, score, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query, id, h.AdjudicatorID, h.RoundID, h.Score, now)
	if err != nil {
		return err
	}

	h.ID = id
	h.Timestamp = now
	return nil
}

func (r *ScoreHistoryRepository) ListByAdjudicator(ctx context.Context, adjudicatorID uuid.UUID) ([]*domain.BaseScoreHistory, error) {
	query := `
		SELECT id, adjudicator_id, round_id, score, created_at
		FROM adjudicator_base_score_history
		WHERE adjudicator_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, adjudicatorID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var history []*domain.BaseScoreHistory
	for rows.Next() {
		var h domain.BaseScoreHistory
		if err := rows.Scan(&h.ID, &h.AdjudicatorID, &h.RoundID, &h.Score, &h.Timestamp); err != nil {
			return nil, err
		}
		history = append(history, &h)
	}

	return history, rows.Err()
}
