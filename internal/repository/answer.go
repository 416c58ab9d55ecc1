package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"feedback_service/internal/domain"
)

const qualifiedQuestionColumns = `
	q.id, q.tournament_id, q.seq, q.text, q.name, q.reference, q.answer_type,
	q.required, q.min_value, q.max_value, q.choices, q.from_adj, q.from_team
`

// answerTableNames maps the domain dispatch onto the physical tables.
var answerTableNames = map[domain.AnswerTable]string{
	domain.AnswerTableBoolean: "feedback_boolean_answers",
	domain.AnswerTableInteger: "feedback_integer_answers",
	domain.AnswerTableFloat:   "feedback_float_answers",
	domain.AnswerTableString:  "feedback_string_answers",
	domain.AnswerTableMany:    "feedback_many_answers",
}

// answerAggregationOrder fixes the iteration order over the answer tables.
// No ordering across types is promised to callers; this only keeps query
// plans and tests deterministic.
var answerAggregationOrder = []domain.AnswerTable{
	domain.AnswerTableBoolean,
	domain.AnswerTableInteger,
	domain.AnswerTableFloat,
	domain.AnswerTableString,
	domain.AnswerTableMany,
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// saveAnswer upserts one typed answer into the table selected by the value.
// At most one answer per (question, feedback) survives.
func saveAnswer(ctx context.Context, ex execer, questionID, feedbackID uuid.UUID, v domain.AnswerValue) error {
	table, ok := answerTableNames[v.Table]
	if !ok {
		return fmt.Errorf("unknown answer table %q", v.Table)
	}

	query := `
		INSERT INTO ` + table + ` (id, question_id, feedback_id, answer)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id, feedback_id) DO UPDATE SET answer = EXCLUDED.answer
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	var answer interface{}
	switch v.Table {
	case domain.AnswerTableBoolean:
		answer = v.Bool
	case domain.AnswerTableInteger:
		answer = v.Int
	case domain.AnswerTableFloat:
		answer = v.Float
	case domain.AnswerTableString:
		answer = v.Text
	case domain.AnswerTableMany:
		answer = pq.Array(v.Many)
	}

	_, err = ex.ExecContext(ctx, query, id, questionID, feedbackID, answer)
	return err
}

type AnswerRepository struct {
	db *sql.DB
}

func NewAnswerRepository(db *sql.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Save stores a single answer outside of a feedback submission transaction.
func (r *AnswerRepository) Save(ctx context.Context, questionID, feedbackID uuid.UUID, v domain.AnswerValue) error {
	return saveAnswer(ctx, r.db, questionID, feedbackID, v)
}

// ListByFeedback aggregates the answers of one feedback across all five
// answer tables, joined with their questions. Each (question, feedback)
// pair appears at most once because a question stores its answers in
// exactly one table.
func (r *AnswerRepository) ListByFeedback(ctx context.Context, feedbackID uuid.UUID) ([]domain.QuestionAnswer, error) {
	var answers []domain.QuestionAnswer

	for _, table := range answerAggregationOrder {
		query := `
			SELECT ` + qualifiedQuestionColumns + `, a.answer
			FROM ` + answerTableNames[table] + ` a
			JOIN feedback_questions q ON q.id = a.question_id
			WHERE a.feedback_id = $1
		`

		rows, err := r.db.QueryContext(ctx, query, feedbackID)
		if err != nil {
			return nil, err
		}

		answers, err = appendAnswerRows(answers, rows, table)
		if err != nil {
			return nil, err
		}
	}

	return answers, nil
}

// ListByQuestion returns every stored answer to one question, read from the
// table its answer type dispatches to.
func (r *AnswerRepository) ListByQuestion(ctx context.Context, q *domain.Question) ([]domain.Answer, error) {
	table := q.AnswerType.Table()
	name, ok := answerTableNames[table]
	if !ok {
		return nil, fmt.Errorf("unknown answer table %q", table)
	}

	query := `SELECT question_id, feedback_id, answer FROM ` + name + ` WHERE question_id = $1`

	rows, err := r.db.QueryContext(ctx, query, q.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		value, targets := newAnswerValue(table)
		dest := append([]interface{}{&a.QuestionID, &a.FeedbackID}, targets...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		a.Value = *value
		answers = append(answers, a)
	}

	return answers, rows.Err()
}

func appendAnswerRows(answers []domain.QuestionAnswer, rows *sql.Rows, table domain.AnswerTable) ([]domain.QuestionAnswer, error) {
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var q domain.Question
		value, targets := newAnswerValue(table)
		dest := append([]interface{}{
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
		}, targets...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		answers = append(answers, domain.QuestionAnswer{Question: &q, Value: *value})
	}

	return answers, rows.Err()
}

// newAnswerValue prepares an AnswerValue and the scan destinations for one
// row of the given table.
func newAnswerValue(table domain.AnswerTable) (*domain.AnswerValue, []interface{}) {
	v := &domain.AnswerValue{Table: table}
	switch table {
	case domain.AnswerTableBoolean:
		v.Bool = new(bool)
		return v, []interface{}{v.Bool}
	case domain.AnswerTableInteger:
		v.Int = new(int64)
		return v, []interface{}{v.Int}
	case domain.AnswerTableFloat:
		v.Float = new(float64)
		return v, []interface{}{v.Float}
	case domain.AnswerTableString:
		v.Text = new(string)
		return v, []interface{}{v.Text}
	default:
		return v, []interface{}{pq.Array(&v.Many)}
	}
}
