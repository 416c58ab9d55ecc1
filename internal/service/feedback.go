package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
	"feedback_service/pkg/logger"
)

var (
	ErrFeedbackNotFound      = errors.New("feedback not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrAdjudicatorNotFound   = errors.New("adjudicator not found")
	ErrSourceNotFound        = errors.New("feedback source not found")
	ErrDebateNotFound        = errors.New("debate not found")
	ErrAnswerTypeMismatch    = errors.New("answer value does not match the question's answer type")
	ErrRequiredAnswerMissing = errors.New("required question was not answered")
	ErrAnswerOutOfRange      = errors.New("numeric answer is outside the question's bounds")
	ErrInvalidChoice         = errors.New("answer is not one of the question's choices")
	ErrForeignQuestion       = errors.New("question belongs to a different tournament")
)

// TopicFeedbackSubmitted receives an event for every persisted submission.
const TopicFeedbackSubmitted = "feedback-submitted"

// AnswerInput is one answer as it arrives from a form submission. The raw
// JSON value is decoded once the question's answer type is known.
type AnswerInput struct {
	QuestionID uuid.UUID
	Value      json.RawMessage
}

type FeedbackServiceInterface interface {
	SubmitFeedback(ctx context.Context, fb *domain.Feedback, answers []AnswerInput) (*domain.Feedback, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (*domain.Feedback, []domain.QuestionAnswer, error)
	GetFeedbackContext(ctx context.Context, fb *domain.Feedback) (*domain.FeedbackContext, error)
	ListFeedbackOnAdjudicator(ctx context.Context, adjudicatorID uuid.UUID, confirmedOnly bool) ([]*domain.Feedback, error)
	IgnoreFeedback(ctx context.Context, id uuid.UUID, ignored bool) error
	ConfirmFeedback(ctx context.Context, id uuid.UUID, confirmed bool) error
}

type feedbackService struct {
	feedbackRepo   FeedbackRepository
	questionRepo   QuestionRepository
	answerRepo     AnswerRepository
	tournamentRepo TournamentRepository
	producer       EventProducer
	logger         *logger.Logger
}

func NewFeedbackService(
	feedbackRepo FeedbackRepository,
	questionRepo QuestionRepository,
	answerRepo AnswerRepository,
	tournamentRepo TournamentRepository,
	producer EventProducer,
	log *logger.Logger,
) FeedbackServiceInterface {
	return &feedbackService{
		feedbackRepo:   feedbackRepo,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		tournamentRepo: tournamentRepo,
		producer:       producer,
		logger:         log,
	}
}

func (s *feedbackService) SubmitFeedback(ctx context.Context, fb *domain.Feedback, answers []AnswerInput) (*domain.Feedback, error) {
	fbCtx, err := s.GetFeedbackContext(ctx, fb)
	if err != nil {
		return nil, err
	}

	if err := fb.Validate(fbCtx.Panel); err != nil {
		return nil, err
	}

	round, err := s.tournamentRepo.GetRound(ctx, fbCtx.Debate.RoundID)
	if err != nil {
		return nil, err
	}
	tournament, err := s.tournamentRepo.GetTournament(ctx, round.TournamentID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, err
	}

	resolved, err := resolveAnswers(questions, answers, fb.SourceTeamID != nil)
	if err != nil {
		return nil, err
	}

	dropAdjudicator := fb.SourceTeamID != nil &&
		tournament.FeedbackFromTeams == domain.FeedbackFromTeamsOrallist

	if err := s.feedbackRepo.Submit(ctx, fb, resolved, dropAdjudicator); err != nil {
		return nil, err
	}

	event := map[string]interface{}{
		"feedback_id":    fb.ID,
		"adjudicator_id": fb.AdjudicatorID,
		"source":         fbCtx.Source,
		"score":          fb.Score,
		"weight":         fbCtx.FeedbackWeight(),
		"version":        fb.Version,
	}
	if err := s.producer.Send(ctx, TopicFeedbackSubmitted, event); err != nil {
		s.logger.Error("failed to publish feedback event",
			zap.Error(err),
			zap.String("feedback_id", fb.ID.String()),
		)
	}

	return fb, nil
}

// resolveAnswers checks every answer against its question and decodes the
// raw values into typed ones. Required questions addressed to this kind of
// source must be answered; boolean questions count as answered only when a
// row would be written.
func resolveAnswers(questions []*domain.Question, answers []AnswerInput, fromTeam bool) ([]domain.QuestionAnswer, error) {
	byID := make(map[uuid.UUID]*domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answered := make(map[uuid.UUID]bool, len(answers))
	resolved := make([]domain.QuestionAnswer, 0, len(answers))
	for _, in := range answers {
		q, ok := byID[in.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrForeignQuestion, in.QuestionID)
		}

		value, err := decodeAnswer(q, in.Value)
		if err != nil {
			return nil, err
		}
		if err := checkConstraints(q, value); err != nil {
			return nil, err
		}

		answered[q.ID] = true
		resolved = append(resolved, domain.QuestionAnswer{Question: q, Value: value})
	}

	for _, q := range questions {
		if !q.Required || answered[q.ID] {
			continue
		}
		if (fromTeam && !q.FromTeam) || (!fromTeam && !q.FromAdj) {
			continue
		}
		return nil, fmt.Errorf("%w: %s", ErrRequiredAnswerMissing, q.Reference)
	}

	return resolved, nil
}

// decodeAnswer parses the raw JSON value into the shape the question's
// answer table stores. The dispatch must stay exhaustive over AnswerTable.
func decodeAnswer(q *domain.Question, raw json.RawMessage) (domain.AnswerValue, error) {
	mismatch := func() (domain.AnswerValue, error) {
		return domain.AnswerValue{}, fmt.Errorf("%w: question %s expects a %s answer",
			ErrAnswerTypeMismatch, q.Reference, q.AnswerType.Table())
	}

	switch q.AnswerType.Table() {
	case domain.AnswerTableBoolean:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return mismatch()
		}
		return domain.BoolAnswer(v), nil
	case domain.AnswerTableInteger:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return mismatch()
		}
		return domain.IntAnswer(v), nil
	case domain.AnswerTableFloat:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return mismatch()
		}
		return domain.FloatAnswer(v), nil
	case domain.AnswerTableString:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return mismatch()
		}
		return domain.TextAnswer(v), nil
	case domain.AnswerTableMany:
		var v []string
		if err := json.Unmarshal(raw, &v); err != nil {
			return mismatch()
		}
		return domain.ManyAnswer(v), nil
	}
	return domain.AnswerValue{}, fmt.Errorf("unknown answer type %q", q.AnswerType)
}

func checkConstraints(q *domain.Question, v domain.AnswerValue) error {
	if q.AnswerType.IsNumeric() {
		var value float64
		switch {
		case v.Int != nil:
			value = float64(*v.Int)
		case v.Float != nil:
			value = *v.Float
		}
		if q.MinValue != nil && value < *q.MinValue {
			return fmt.Errorf("%w: %s < %g", ErrAnswerOutOfRange, q.Reference, *q.MinValue)
		}
		if q.MaxValue != nil && value > *q.MaxValue {
			return fmt.Errorf("%w: %s > %g", ErrAnswerOutOfRange, q.Reference, *q.MaxValue)
		}
		return nil
	}

	switch q.AnswerType {
	case domain.AnswerTypeSingleSelect:
		if v.Text != nil && !containsChoice(q.Choices, *v.Text) {
			return fmt.Errorf("%w: %q on %s", ErrInvalidChoice, *v.Text, q.Reference)
		}
	case domain.AnswerTypeMultipleSelect:
		for _, item := range v.Many {
			if !containsChoice(q.Choices, item) {
				return fmt.Errorf("%w: %q on %s", ErrInvalidChoice, item, q.Reference)
			}
		}
	}
	return nil
}

func containsChoice(choices []string, value string) bool {
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}

func (s *feedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*domain.Feedback, []domain.QuestionAnswer, error) {
	fb, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrFeedbackNotFound
		}
		return nil, nil, err
	}

	answers, err := s.answerRepo.ListByFeedback(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return fb, answers, nil
}

// GetFeedbackContext resolves the derived properties of a feedback from
// whichever source reference is populated: the authoring participant's
// display name, the debate, its round and the target's seat. A missing seat
// record yields a nil DebateAdjudicator, not an error.
func (s *feedbackService) GetFeedbackContext(ctx context.Context, fb *domain.Feedback) (*domain.FeedbackContext, error) {
	fbCtx := &domain.FeedbackContext{}

	var debateID uuid.UUID
	switch {
	case fb.SourceAdjudicatorID != nil:
		da, err := s.tournamentRepo.GetDebateAdjudicator(ctx, *fb.SourceAdjudicatorID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSourceNotFound
			}
			return nil, err
		}
		adj, err := s.tournamentRepo.GetAdjudicator(ctx, da.AdjudicatorID)
		if err != nil {
			return nil, err
		}
		fbCtx.Source = adj.Name
		debateID = da.DebateID
	case fb.SourceTeamID != nil:
		dt, err := s.tournamentRepo.GetDebateTeam(ctx, *fb.SourceTeamID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrSourceNotFound
			}
			return nil, err
		}
		team, err := s.tournamentRepo.GetTeam(ctx, dt.TeamID)
		if err != nil {
			return nil, err
		}
		fbCtx.Source = team.ShortName
		debateID = dt.DebateID
	default:
		return nil, domain.ErrNoSource
	}

	debate, err := s.tournamentRepo.GetDebate(ctx, debateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDebateNotFound
		}
		return nil, err
	}
	fbCtx.Debate = debate

	round, err := s.tournamentRepo.GetRound(ctx, debate.RoundID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	fbCtx.Round = round

	seat, err := s.tournamentRepo.GetDebateSeat(ctx, debate.ID, fb.AdjudicatorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	fbCtx.DebateAdjudicator = seat

	panel, err := s.tournamentRepo.GetDebatePanel(ctx, debate.ID)
	if err != nil {
		return nil, err
	}
	fbCtx.Panel = panel

	return fbCtx, nil
}

func (s *feedbackService) ListFeedbackOnAdjudicator(ctx context.Context, adjudicatorID uuid.UUID, confirmedOnly bool) ([]*domain.Feedback, error) {
	if _, err := s.tournamentRepo.GetAdjudicator(ctx, adjudicatorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAdjudicatorNotFound
		}
		return nil, err
	}
	return s.feedbackRepo.ListByTarget(ctx, adjudicatorID, confirmedOnly)
}

func (s *feedbackService) IgnoreFeedback(ctx context.Context, id uuid.UUID, ignored bool) error {
	err := s.feedbackRepo.SetIgnored(ctx, id, ignored)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFeedbackNotFound
	}
	return err
}

func (s *feedbackService) ConfirmFeedback(ctx context.Context, id uuid.UUID, confirmed bool) error {
	err := s.feedbackRepo.SetConfirmed(ctx, id, confirmed)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFeedbackNotFound
	}
	return err
}
