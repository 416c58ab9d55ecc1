package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"feedback_service/internal/domain"
)

var ErrNotFound = errors.New("not found")

const questionColumns = `
	id, tournament_id, seq, text, name, reference, answer_type,
	required, min_value, max_value, choices, from_adj, from_team
`

type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	query := `
		INSERT INTO feedback_questions (
			id, tournament_id, seq, text, name, reference, answer_type,
			required, min_value, max_value, choices, from_adj, from_team
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		id,
		q.TournamentID,
		q.Seq,
		q.Text,
		q.Name,
		q.Reference,
		q.AnswerType,
		q.Required,
		q.MinValue,
		q.MaxValue,
		pq.Array(q.Choices),
		q.FromAdj,
		q.FromTeam,
	)
	if err != nil {
		return err
	}

	q.ID = id
	return nil
}

func (r *QuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	query := `
		UPDATE feedback_questions
		SET seq = $1, text = $2, name = $3, reference = $4, answer_type = $5,
		    required = $6, min_value = $7, max_value = $8, choices = $9,
		    from_adj = $10, from_team = $11
		WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		q.Seq,
		q.Text,
		q.Name,
		q.Reference,
		q.AnswerType,
		q.Required,
		q.MinValue,
		q.MaxValue,
		pq.Array(q.Choices),
		q.FromAdj,
		q.FromTeam,
		q.ID,
	)
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

func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM feedback_questions WHERE id = $1`, id)
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

func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM feedback_questions WHERE id = $1`
	return scanQuestion(r.db.QueryRowContext(ctx, query, id))
}

func (r *QuestionRepository) GetByReference(ctx context.Context, tournamentID uuid.UUID, reference string) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM feedback_questions WHERE tournament_id = $1 AND reference = $2`
	return scanQuestion(r.db.QueryRowContext(ctx, query, tournamentID, reference))
}

func (r *QuestionRepository) ListByTournament(ctx context.Context, tournamentID uuid.UUID) ([]*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM feedback_questions WHERE tournament_id = $1 ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var questions []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(row rowScanner) (*domain.Question, error) {
	var q domain.Question
	err := row.Scan(
		&q.ID,
		&q.TournamentID,
		&q.Seq,
		&q.Text,
		&q.Name,
		&q.Reference,
		&q.AnswerType,
		&q.Required,
		&q.MinValue,
		&q.MaxValue,
		pq.Array(&q.Choices),
		&q.FromAdj,
		&q.FromTeam,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}
