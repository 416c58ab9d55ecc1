package feedbackhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback_service/internal/domain"
	"feedback_service/internal/service"
	"feedback_service/internal/service/mocks"
	"feedback_service/pkg/logger"
)

type handlerFixture struct {
	questions *mocks.MockQuestionService
	feedback  *mocks.MockFeedbackService
	scores    *mocks.MockScoreService
	router    http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	questions := mocks.NewMockQuestionService(ctrl)
	feedback := mocks.NewMockFeedbackService(ctrl)
	scores := mocks.NewMockScoreService(ctrl)

	log := logger.New()
	handler := NewFeedbackHandler(questions, feedback, scores, log)

	return &handlerFixture{
		questions: questions,
		feedback:  feedback,
		scores:    scores,
		router:    NewRouter(handler, log),
	}
}

func (f *handlerFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateQuestionEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	tournamentID := uuid.New()

	f.questions.EXPECT().
		CreateQuestion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q *domain.Question) (*domain.Question, error) {
			assert.Equal(t, tournamentID, q.TournamentID)
			assert.Equal(t, "agree_with_decision", q.Reference)
			q.ID = uuid.New()
			return q, nil
		})

	rec := f.do(http.MethodPost, "/tournaments/"+tournamentID.String()+"/questions", map[string]interface{}{
		"seq":         1,
		"text":        "Did you agree with the decision?",
		"name":        "Agree",
		"reference":   "agree_with_decision",
		"answer_type": "bc",
		"required":    true,
		"from_team":   true,
		"from_adj":    true,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp questionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "bc", resp.AnswerType)
}

func TestCreateQuestionInvalidTournamentID(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/tournaments/not-a-uuid/questions", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFormEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	tournamentID := uuid.New()

	form := []domain.SerializedQuestion{
		{Text: "Rate the chair", Seq: 1, Name: "Rating", Reference: "rating", Type: "is", Required: true, FromTeam: true},
	}
	f.questions.EXPECT().SerializeForm(gomock.Any(), tournamentID).Return(form, nil)

	rec := f.do(http.MethodGet, "/tournaments/"+tournamentID.String()+"/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Questions []domain.SerializedQuestion `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "rating", resp.Questions[0].Reference)
}

func TestDeleteQuestionNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()

	f.questions.EXPECT().DeleteQuestion(gomock.Any(), id).Return(service.ErrQuestionNotFound)

	rec := f.do(http.MethodDelete, "/questions/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitFeedbackEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	adjudicatorID := uuid.New()
	sourceTeamID := uuid.New()
	questionID := uuid.New()

	f.feedback.EXPECT().
		SubmitFeedback(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fb *domain.Feedback, answers []service.AnswerInput) (*domain.Feedback, error) {
			assert.Equal(t, adjudicatorID, fb.AdjudicatorID)
			require.NotNil(t, fb.SourceTeamID)
			assert.Equal(t, sourceTeamID, *fb.SourceTeamID)
			require.Len(t, answers, 1)
			assert.Equal(t, questionID, answers[0].QuestionID)
			fb.ID = uuid.New()
			fb.Version = 2
			fb.Confirmed = true
			return fb, nil
		})

	rec := f.do(http.MethodPost, "/feedback", map[string]interface{}{
		"adjudicator_id": adjudicatorID,
		"score":          4.5,
		"source_team_id": sourceTeamID,
		"answers": []map[string]interface{}{
			{"question_id": questionID, "value": true},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp feedbackResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Version)
	assert.True(t, resp.Confirmed)
}

func TestSubmitFeedbackValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no source", domain.ErrNoSource, http.StatusBadRequest},
		{"both sources", domain.ErrBothSources, http.StatusBadRequest},
		{"not on panel", domain.ErrAdjudicatorNotOnPanel, http.StatusBadRequest},
		{"required missing", fmt.Errorf("%w: rating", service.ErrRequiredAnswerMissing), http.StatusBadRequest},
		{"source missing", service.ErrSourceNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.feedback.EXPECT().
				SubmitFeedback(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			rec := f.do(http.MethodPost, "/feedback", map[string]interface{}{
				"adjudicator_id": uuid.New(),
			})
			assert.Equal(t, tc.want, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestGetFeedbackEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	id := uuid.New()
	sourceTeamID := uuid.New()
	fb := &domain.Feedback{
		ID:            id,
		AdjudicatorID: uuid.New(),
		Score:         4,
		SourceTeamID:  &sourceTeamID,
		Version:       1,
		Confirmed:     true,
	}
	answers := []domain.QuestionAnswer{
		{
			Question: &domain.Question{Text: "Did you agree?", Reference: "agree"},
			Value:    domain.BoolAnswer(true),
		},
	}
	fbCtx := &domain.FeedbackContext{
		Source: "Aardvarks",
		Round:  &domain.Round{FeedbackWeight: 0.5},
	}

	f.feedback.EXPECT().GetFeedback(gomock.Any(), id).Return(fb, answers, nil)
	f.feedback.EXPECT().GetFeedbackContext(gomock.Any(), fb).Return(fbCtx, nil)

	rec := f.do(http.MethodGet, "/feedback/"+id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Source  string  `json:"source"`
		Weight  float64 `json:"weight"`
		Answers []struct {
			Reference string      `json:"reference"`
			Answer    interface{} `json:"answer"`
		} `json:"answers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Aardvarks", resp.Source)
	assert.Equal(t, 0.5, resp.Weight)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, "agree", resp.Answers[0].Reference)
	assert.Equal(t, true, resp.Answers[0].Answer)
}

func TestGetFeedbackNotFoundEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()

	f.feedback.EXPECT().GetFeedback(gomock.Any(), id).Return(nil, nil, service.ErrFeedbackNotFound)

	rec := f.do(http.MethodGet, "/feedback/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedbackFlagEndpoints(t *testing.T) {
	t.Run("ignore", func(t *testing.T) {
		f := newHandlerFixture(t)
		id := uuid.New()
		f.feedback.EXPECT().IgnoreFeedback(gomock.Any(), id, true).Return(nil)

		rec := f.do(http.MethodPost, "/feedback/"+id.String()+"/ignore", flagRequest{Value: true})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("confirm", func(t *testing.T) {
		f := newHandlerFixture(t)
		id := uuid.New()
		f.feedback.EXPECT().ConfirmFeedback(gomock.Any(), id, false).Return(nil)

		rec := f.do(http.MethodPost, "/feedback/"+id.String()+"/confirm", flagRequest{Value: false})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestListFeedbackEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	adjID := uuid.New()

	feedbacks := []*domain.Feedback{
		{ID: uuid.New(), AdjudicatorID: adjID, Score: 4, Confirmed: true, Version: 1},
		{ID: uuid.New(), AdjudicatorID: adjID, Score: 5, Confirmed: true, Version: 2},
	}
	f.feedback.EXPECT().ListFeedbackOnAdjudicator(gomock.Any(), adjID, true).Return(feedbacks, nil)

	rec := f.do(http.MethodGet, "/adjudicators/"+adjID.String()+"/feedback?confirmed=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Feedback []feedbackResponse `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Feedback, 2)
}

func TestUpdateBaseScoreEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	adjID := uuid.New()
	roundID := uuid.New()

	entry := &domain.BaseScoreHistory{
		ID:            uuid.New(),
		AdjudicatorID: adjID,
		RoundID:       &roundID,
		Score:         7.5,
	}
	f.scores.EXPECT().
		UpdateBaseScore(gomock.Any(), adjID, gomock.Any(), 7.5).
		Return(entry, nil)

	rec := f.do(http.MethodPost, "/adjudicators/"+adjID.String()+"/base-score", updateScoreRequest{
		Score:   7.5,
		RoundID: &roundID,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp scoreHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, entry.ID, resp.ID)
	assert.Equal(t, 7.5, resp.Score)
}

func TestScoreHistoryEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	adjID := uuid.New()

	history := []*domain.BaseScoreHistory{
		{ID: uuid.New(), AdjudicatorID: adjID, Score: 5},
		{ID: uuid.New(), AdjudicatorID: adjID, Score: 6},
	}
	f.scores.EXPECT().History(gomock.Any(), adjID).Return(history, nil)

	rec := f.do(http.MethodGet, "/adjudicators/"+adjID.String()+"/score-history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		History []scoreHistoryResponse `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.History, 2)
}
