package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
)

// fakeCache is a map-backed Cache that counts hits and misses.
type fakeCache struct {
	data    map[string][]byte
	hits    int
	misses  int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

func (c *fakeCache) Set(_ context.Context, key string, data []byte, _ time.Duration) {
	c.data[key] = data
}

func (c *fakeCache) Delete(_ context.Context, key string) {
	c.deletes++
	delete(c.data, key)
}

func TestCreateQuestion(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	tournamentRepo := new(MockTournamentRepository)
	cache := newFakeCache()

	tournamentID := uuid.New()
	q := &domain.Question{
		TournamentID: tournamentID,
		Seq:          1,
		Reference:    "agree_with_decision",
		AnswerType:   domain.AnswerTypeBooleanCheckbox,
	}

	tournamentRepo.On("GetTournament", mock.Anything, tournamentID).
		Return(&domain.Tournament{ID: tournamentID}, nil)
	questionRepo.On("Create", mock.Anything, q).Return(nil)

	svc := NewQuestionService(questionRepo, tournamentRepo, cache)

	created, err := svc.CreateQuestion(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, q, created)
	assert.Equal(t, 1, cache.deletes)
}

func TestCreateQuestionInvalidAnswerType(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	svc := NewQuestionService(questionRepo, new(MockTournamentRepository), newFakeCache())

	_, err := svc.CreateQuestion(context.Background(), &domain.Question{AnswerType: "xx"})
	assert.ErrorIs(t, err, ErrInvalidAnswerType)
	questionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateQuestionKeepsTournament(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	cache := newFakeCache()

	tournamentID := uuid.New()
	existing := &domain.Question{ID: uuid.New(), TournamentID: tournamentID, AnswerType: domain.AnswerTypeText}

	update := &domain.Question{
		ID:           existing.ID,
		TournamentID: uuid.New(), // must be ignored
		Text:         "Comments on the adjudication",
		Reference:    "comments",
		AnswerType:   domain.AnswerTypeLongText,
	}

	questionRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	questionRepo.On("Update", mock.Anything, update).Return(nil)

	svc := NewQuestionService(questionRepo, new(MockTournamentRepository), cache)

	updated, err := svc.UpdateQuestion(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, tournamentID, updated.TournamentID)
	assert.Equal(t, 1, cache.deletes)
}

func TestUpdateQuestionNotFound(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	questionRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	svc := NewQuestionService(questionRepo, new(MockTournamentRepository), newFakeCache())

	_, err := svc.UpdateQuestion(context.Background(), &domain.Question{
		ID:         uuid.New(),
		AnswerType: domain.AnswerTypeText,
	})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestDeleteQuestionInvalidatesForm(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	cache := newFakeCache()

	tournamentID := uuid.New()
	q := &domain.Question{ID: uuid.New(), TournamentID: tournamentID, AnswerType: domain.AnswerTypeText}
	cache.data[formCacheKey(tournamentID)] = []byte(`[]`)

	questionRepo.On("GetByID", mock.Anything, q.ID).Return(q, nil)
	questionRepo.On("Delete", mock.Anything, q.ID).Return(nil)

	svc := NewQuestionService(questionRepo, new(MockTournamentRepository), cache)

	require.NoError(t, svc.DeleteQuestion(context.Background(), q.ID))
	_, ok := cache.data[formCacheKey(tournamentID)]
	assert.False(t, ok)
}

func TestSerializeFormCaches(t *testing.T) {
	questionRepo := new(MockQuestionRepository)
	cache := newFakeCache()

	tournamentID := uuid.New()
	questions := []*domain.Question{
		{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Seq:          1,
			Text:         "Did you agree with the decision?",
			Name:         "Agree",
			Reference:    "agree_with_decision",
			AnswerType:   domain.AnswerTypeBooleanCheckbox,
			Required:     true,
			FromTeam:     true,
			FromAdj:      true,
		},
	}

	questionRepo.On("ListByTournament", mock.Anything, tournamentID).
		Return(questions, nil).Once()

	svc := NewQuestionService(questionRepo, new(MockTournamentRepository), cache)

	form, err := svc.SerializeForm(context.Background(), tournamentID)
	require.NoError(t, err)
	require.Len(t, form, 1)
	assert.Equal(t, "agree_with_decision", form[0].Reference)
	assert.True(t, form[0].Required)

	// Second call is served from the cache; the repository expectation is
	// consumed and would fail if hit again.
	again, err := svc.SerializeForm(context.Background(), tournamentID)
	require.NoError(t, err)
	assert.Equal(t, form, again)
	assert.Equal(t, 1, cache.hits)

	questionRepo.AssertExpectations(t)
}
