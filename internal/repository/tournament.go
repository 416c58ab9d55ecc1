package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"feedback_service/internal/domain"
)

// TournamentRepository reads the tournament, draw and participant records
// this service references but does not manage. The one write it performs is
// the adjudicator base score update that the score history tracks.
type TournamentRepository struct {
	db *sql.DB
}

func NewTournamentRepository(db *sql.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetTournament(ctx context.Context, id uuid.UUID) (*domain.Tournament, error) {
	query := `SELECT id, slug, name, feedback_from_teams FROM tournaments WHERE id = $1`

	var t domain.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Slug, &t.Name, &t.FeedbackFromTeams)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (r *TournamentRepository) GetRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	query := `SELECT id, tournament_id, seq, name, feedback_weight FROM rounds WHERE id = $1`

	var rd domain.Round
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rd.ID, &rd.TournamentID, &rd.Seq, &rd.Name, &rd.FeedbackWeight)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &rd, nil
}

func (r *TournamentRepository) GetAdjudicator(ctx context.Context, id uuid.UUID) (*domain.Adjudicator, error) {
	query := `SELECT id, name, base_score FROM adjudicators WHERE id = $1`

	var a domain.Adjudicator
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.BaseScore)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &a, nil
}

func (r *TournamentRepository) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	query := `SELECT id, short_name FROM teams WHERE id = $1`

	var t domain.Team
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.ShortName)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &t, nil
}

func (r *TournamentRepository) GetDebate(ctx context.Context, id uuid.UUID) (*domain.Debate, error) {
	query := `SELECT id, round_id FROM debates WHERE id = $1`

	var d domain.Debate
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.RoundID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &d, nil
}

func (r *TournamentRepository) GetDebateAdjudicator(ctx context.Context, id uuid.UUID) (*domain.DebateAdjudicator, error) {
	query := `SELECT id, debate_id, adjudicator_id, type FROM debate_adjudicators WHERE id = $1`

	var da domain.DebateAdjudicator
	err := r.db.QueryRowContext(ctx, query, id).Scan(&da.ID, &da.DebateID, &da.AdjudicatorID, &da.Type)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &da, nil
}

// GetDebateSeat resolves the seat an adjudicator held in a debate, if any.
func (r *TournamentRepository) GetDebateSeat(ctx context.Context, debateID, adjudicatorID uuid.UUID) (*domain.DebateAdjudicator, error) {
	query := `SELECT id, debate_id, adjudicator_id, type FROM debate_adjudicators WHERE debate_id = $1 AND adjudicator_id = $2`

	var da domain.DebateAdjudicator
	err := r.db.QueryRowContext(ctx, query, debateID, adjudicatorID).Scan(&da.ID, &da.DebateID, &da.AdjudicatorID, &da.Type)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &da, nil
}

// GetDebatePanel returns every adjudicator seat at a debate.
func (r *TournamentRepository) GetDebatePanel(ctx context.Context, debateID uuid.UUID) ([]*domain.DebateAdjudicator, error) {
	query := `SELECT id, debate_id, adjudicator_id, type FROM debate_adjudicators WHERE debate_id = $1`

	rows, err := r.db.QueryContext(ctx, query, debateID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var panel []*domain.DebateAdjudicator
	for rows.Next() {
		var da domain.DebateAdjudicator
		if err := rows.Scan(&da.ID, &da.DebateID, &da.AdjudicatorID, &da.Type); err != nil {
			return nil, err
		}
		panel = append(panel, &da)
	}

	return panel, rows.Err()
}

func (r *TournamentRepository) GetDebateTeam(ctx context.Context, id uuid.UUID) (*domain.DebateTeam, error) {
	query := `SELECT id, debate_id, team_id, side FROM debate_teams WHERE id = $1`

	var dt domain.DebateTeam
	err := r.db.QueryRowContext(ctx, query, id).Scan(&dt.ID, &dt.DebateID, &dt.TeamID, &dt.Side)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &dt, nil
}

func (r *TournamentRepository) UpdateAdjudicatorBaseScore(ctx context.Context, id uuid.UUID, score float64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE adjudicators SET base_score = $1 WHERE id = $2`, score, id)
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

func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
