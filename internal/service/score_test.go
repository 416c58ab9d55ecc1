package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
	"feedback_service/pkg/logger"
)

type MockScoreHistoryRepository struct {
	mock.Mock
}

func (m *MockScoreHistoryRepository) Append(ctx context.Context, h *domain.BaseScoreHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockScoreHistoryRepository) ListByAdjudicator(ctx context.Context, adjudicatorID uuid.UUID) ([]*domain.BaseScoreHistory, error) {
	args := m.Called(ctx, adjudicatorID)
	entries, _ := args.Get(0).([]*domain.BaseScoreHistory)
	return entries, args.Error(1)
}

func TestUpdateBaseScore(t *testing.T) {
	historyRepo := new(MockScoreHistoryRepository)
	tournamentRepo := new(MockTournamentRepository)
	producer := new(MockProducer)

	adj := &domain.Adjudicator{ID: uuid.New(), Name: "Jordan", BaseScore: 6.5}
	roundID := uuid.New()

	tournamentRepo.On("GetAdjudicator", mock.Anything, adj.ID).Return(adj, nil)
	tournamentRepo.On("UpdateAdjudicatorBaseScore", mock.Anything, adj.ID, 7.0).Return(nil)
	historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	producer.On("Send", mock.Anything, TopicScoreChanged, mock.Anything).Return(nil)

	svc := NewScoreService(historyRepo, tournamentRepo, producer, logger.New())

	entry, err := svc.UpdateBaseScore(context.Background(), adj.ID, &roundID, 7.0)
	require.NoError(t, err)
	assert.Equal(t, adj.ID, entry.AdjudicatorID)
	assert.Equal(t, &roundID, entry.RoundID)
	assert.Equal(t, 7.0, entry.Score)

	historyRepo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestUpdateBaseScoreAdjudicatorNotFound(t *testing.T) {
	historyRepo := new(MockScoreHistoryRepository)
	tournamentRepo := new(MockTournamentRepository)

	tournamentRepo.On("GetAdjudicator", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	svc := NewScoreService(historyRepo, tournamentRepo, new(MockProducer), logger.New())

	_, err := svc.UpdateBaseScore(context.Background(), uuid.New(), nil, 5)
	assert.ErrorIs(t, err, ErrAdjudicatorNotFound)
	historyRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestUpdateBaseScorePublishFailureIsNotFatal(t *testing.T) {
	historyRepo := new(MockScoreHistoryRepository)
	tournamentRepo := new(MockTournamentRepository)
	producer := new(MockProducer)

	adj := &domain.Adjudicator{ID: uuid.New(), Name: "Sam", BaseScore: 4}

	tournamentRepo.On("GetAdjudicator", mock.Anything, adj.ID).Return(adj, nil)
	tournamentRepo.On("UpdateAdjudicatorBaseScore", mock.Anything, adj.ID, 4.5).Return(nil)
	historyRepo.On("Append", mock.Anything, mock.Anything).Return(nil)
	producer.On("Send", mock.Anything, TopicScoreChanged, mock.Anything).
		Return(errors.New("broker unavailable"))

	svc := NewScoreService(historyRepo, tournamentRepo, producer, logger.New())

	entry, err := svc.UpdateBaseScore(context.Background(), adj.ID, nil, 4.5)
	require.NoError(t, err)
	assert.NotNil(t, entry)
}

func TestScoreHistory(t *testing.T) {
	historyRepo := new(MockScoreHistoryRepository)
	tournamentRepo := new(MockTournamentRepository)

	adjID := uuid.New()
	entries := []*domain.BaseScoreHistory{
		{ID: uuid.New(), AdjudicatorID: adjID, Score: 5},
		{ID: uuid.New(), AdjudicatorID: adjID, Score: 6},
	}

	tournamentRepo.On("GetAdjudicator", mock.Anything, adjID).
		Return(&domain.Adjudicator{ID: adjID}, nil)
	historyRepo.On("ListByAdjudicator", mock.Anything, adjID).Return(entries, nil)

	svc := NewScoreService(historyRepo, tournamentRepo, new(MockProducer), logger.New())

	got, err := svc.History(context.Background(), adjID)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
