package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
)

var ErrInvalidAnswerType = errors.New("invalid answer type")

const formCacheTTL = 5 * time.Minute

type QuestionServiceInterface interface {
	CreateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error)
	UpdateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	ListQuestions(ctx context.Context, tournamentID uuid.UUID) ([]*domain.Question, error)
	SerializeForm(ctx context.Context, tournamentID uuid.UUID) ([]domain.SerializedQuestion, error)
}

type questionService struct {
	questionRepo   QuestionRepository
	tournamentRepo TournamentRepository
	cache          Cache
}

func NewQuestionService(questionRepo QuestionRepository, tournamentRepo TournamentRepository, cache Cache) QuestionServiceInterface {
	return &questionService{
		questionRepo:   questionRepo,
		tournamentRepo: tournamentRepo,
		cache:          cache,
	}
}

func (s *questionService) CreateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	if !q.AnswerType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAnswerType, q.AnswerType)
	}

	if _, err := s.tournamentRepo.GetTournament(ctx, q.TournamentID); err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, formCacheKey(q.TournamentID))
	return q, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	if !q.AnswerType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAnswerType, q.AnswerType)
	}

	existing, err := s.questionRepo.GetByID(ctx, q.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	// Changing the answer type after answers exist orphans the old rows;
	// that is the caller's responsibility, matching the data model contract.
	q.TournamentID = existing.TournamentID

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, formCacheKey(q.TournamentID))
	return q, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, formCacheKey(q.TournamentID))
	return nil
}

func (s *questionService) ListQuestions(ctx context.Context, tournamentID uuid.UUID) ([]*domain.Question, error) {
	return s.questionRepo.ListByTournament(ctx, tournamentID)
}

// SerializeForm returns the display-ready question list for a tournament,
// cached until a question changes.
func (s *questionService) SerializeForm(ctx context.Context, tournamentID uuid.UUID) ([]domain.SerializedQuestion, error) {
	key := formCacheKey(tournamentID)
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached []domain.SerializedQuestion
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	questions, err := s.questionRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	form := make([]domain.SerializedQuestion, 0, len(questions))
	for _, q := range questions {
		form = append(form, q.Serialize())
	}

	if data, err := json.Marshal(form); err == nil {
		s.cache.Set(ctx, key, data, formCacheTTL)
	}

	return form, nil
}

func formCacheKey(tournamentID uuid.UUID) string {
	return "feedback:questions:" + tournamentID.String()
}
