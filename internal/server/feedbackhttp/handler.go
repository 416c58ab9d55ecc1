package feedbackhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"feedback_service/internal/domain"
	"feedback_service/internal/repository"
	"feedback_service/internal/service"
	"feedback_service/pkg/logger"
)

type FeedbackHandler struct {
	questions service.QuestionServiceInterface
	feedback  service.FeedbackServiceInterface
	scores    service.ScoreServiceInterface
	logger    *logger.Logger
}

func NewFeedbackHandler(
	questions service.QuestionServiceInterface,
	feedback service.FeedbackServiceInterface,
	scores service.ScoreServiceInterface,
	log *logger.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		questions: questions,
		feedback:  feedback,
		scores:    scores,
		logger:    log,
	}
}

func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tournaments/{tournamentID}/questions", func(r chi.Router) {
		r.Post("/", h.CreateQuestion)
		r.Get("/", h.GetForm)
	})
	r.Patch("/questions/{id}", h.UpdateQuestion)
	r.Delete("/questions/{id}", h.DeleteQuestion)

	r.Post("/feedback", h.SubmitFeedback)
	r.Get("/feedback/{id}", h.GetFeedback)
	r.Post("/feedback/{id}/ignore", h.IgnoreFeedback)
	r.Post("/feedback/{id}/confirm", h.ConfirmFeedback)

	r.Get("/adjudicators/{id}/feedback", h.ListFeedback)
	r.Post("/adjudicators/{id}/base-score", h.UpdateBaseScore)
	r.Get("/adjudicators/{id}/score-history", h.ScoreHistory)
}

type questionPayload struct {
	Seq        int      `json:"seq"`
	Text       string   `json:"text"`
	Name       string   `json:"name"`
	Reference  string   `json:"reference"`
	AnswerType string   `json:"answer_type"`
	Required   bool     `json:"required"`
	MinValue   *float64 `json:"min_value"`
	MaxValue   *float64 `json:"max_value"`
	Choices    []string `json:"choices"`
	FromAdj    bool     `json:"from_adj"`
	FromTeam   bool     `json:"from_team"`
}

type questionResponse struct {
	ID uuid.UUID `json:"id"`
	questionPayload
}

func toQuestionResponse(q *domain.Question) questionResponse {
	return questionResponse{
		ID: q.ID,
		questionPayload: questionPayload{
			Seq:        q.Seq,
			Text:       q.Text,
			Name:       q.Name,
			Reference:  q.Reference,
			AnswerType: string(q.AnswerType),
			Required:   q.Required,
			MinValue:   q.MinValue,
			MaxValue:   q.MaxValue,
			Choices:    q.Choices,
			FromAdj:    q.FromAdj,
			FromTeam:   q.FromTeam,
		},
	}
}

func (h *FeedbackHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := parseUUIDParam(r, "tournamentID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload questionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := &domain.Question{
		TournamentID: tournamentID,
		Seq:          payload.Seq,
		Text:         payload.Text,
		Name:         payload.Name,
		Reference:    payload.Reference,
		AnswerType:   domain.AnswerType(payload.AnswerType),
		Required:     payload.Required,
		MinValue:     payload.MinValue,
		MaxValue:     payload.MaxValue,
		Choices:      payload.Choices,
		FromAdj:      payload.FromAdj,
		FromTeam:     payload.FromTeam,
	}

	created, err := h.questions.CreateQuestion(r.Context(), question)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create question")
		return
	}

	writeJSON(w, http.StatusCreated, toQuestionResponse(created))
}

func (h *FeedbackHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := parseUUIDParam(r, "tournamentID")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	form, err := h.questions.SerializeForm(r.Context(), tournamentID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to serialize form")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": form})
}

func (h *FeedbackHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload questionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := &domain.Question{
		ID:         id,
		Seq:        payload.Seq,
		Text:       payload.Text,
		Name:       payload.Name,
		Reference:  payload.Reference,
		AnswerType: domain.AnswerType(payload.AnswerType),
		Required:   payload.Required,
		MinValue:   payload.MinValue,
		MaxValue:   payload.MaxValue,
		Choices:    payload.Choices,
		FromAdj:    payload.FromAdj,
		FromTeam:   payload.FromTeam,
	}

	updated, err := h.questions.UpdateQuestion(r.Context(), question)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update question")
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponse(updated))
}

func (h *FeedbackHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.questions.DeleteQuestion(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "failed to delete question")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type answerPayload struct {
	QuestionID uuid.UUID       `json:"question_id"`
	Value      json.RawMessage `json:"value"`
}

type submitFeedbackRequest struct {
	AdjudicatorID       uuid.UUID       `json:"adjudicator_id"`
	Score               float64         `json:"score"`
	SourceAdjudicatorID *uuid.UUID      `json:"source_adjudicator_id"`
	SourceTeamID        *uuid.UUID      `json:"source_team_id"`
	Answers             []answerPayload `json:"answers"`
}

type feedbackResponse struct {
	ID                  uuid.UUID  `json:"id"`
	AdjudicatorID       uuid.UUID  `json:"adjudicator_id"`
	Score               float64    `json:"score"`
	SourceAdjudicatorID *uuid.UUID `json:"source_adjudicator_id,omitempty"`
	SourceTeamID        *uuid.UUID `json:"source_team_id,omitempty"`
	Ignored             bool       `json:"ignored"`
	Version             int        `json:"version"`
	Confirmed           bool       `json:"confirmed"`
	Timestamp           time.Time  `json:"timestamp"`
}

type answerResponse struct {
	Question  string      `json:"question"`
	Reference string      `json:"reference"`
	Answer    interface{} `json:"answer"`
}

type feedbackDetailResponse struct {
	feedbackResponse
	Source  string           `json:"source,omitempty"`
	Weight  float64          `json:"weight"`
	Answers []answerResponse `json:"answers"`
}

func toFeedbackResponse(fb *domain.Feedback) feedbackResponse {
	return feedbackResponse{
		ID:                  fb.ID,
		AdjudicatorID:       fb.AdjudicatorID,
		Score:               fb.Score,
		SourceAdjudicatorID: fb.SourceAdjudicatorID,
		SourceTeamID:        fb.SourceTeamID,
		Ignored:             fb.Ignored,
		Version:             fb.Version,
		Confirmed:           fb.Confirmed,
		Timestamp:           fb.Timestamp,
	}
}

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req submitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fb := &domain.Feedback{
		AdjudicatorID:       req.AdjudicatorID,
		Score:               req.Score,
		SourceAdjudicatorID: req.SourceAdjudicatorID,
		SourceTeamID:        req.SourceTeamID,
	}

	answers := make([]service.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, service.AnswerInput{QuestionID: a.QuestionID, Value: a.Value})
	}

	submitted, err := h.feedback.SubmitFeedback(r.Context(), fb, answers)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to submit feedback")
		return
	}

	h.logger.Info("feedback submitted",
		zap.String("feedback_id", submitted.ID.String()),
		zap.String("adjudicator_id", submitted.AdjudicatorID.String()),
		zap.Int("version", submitted.Version),
	)

	writeJSON(w, http.StatusCreated, toFeedbackResponse(submitted))
}

func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	fb, answers, err := h.feedback.GetFeedback(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get feedback")
		return
	}

	resp := feedbackDetailResponse{
		feedbackResponse: toFeedbackResponse(fb),
		Weight:           1,
		Answers:          make([]answerResponse, 0, len(answers)),
	}

	if fbCtx, err := h.feedback.GetFeedbackContext(r.Context(), fb); err == nil {
		resp.Source = fbCtx.Source
		resp.Weight = fbCtx.FeedbackWeight()
	}

	for _, a := range answers {
		resp.Answers = append(resp.Answers, answerResponse{
			Question:  a.Question.Text,
			Reference: a.Question.Reference,
			Answer:    a.Value.Raw(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	confirmedOnly := r.URL.Query().Get("confirmed") == "true"

	feedbacks, err := h.feedback.ListFeedbackOnAdjudicator(r.Context(), id, confirmedOnly)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list feedback")
		return
	}

	resp := make([]feedbackResponse, 0, len(feedbacks))
	for _, fb := range feedbacks {
		resp = append(resp, toFeedbackResponse(fb))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"feedback": resp})
}

type flagRequest struct {
	Value bool `json:"value"`
}

func (h *FeedbackHandler) IgnoreFeedback(w http.ResponseWriter, r *http.Request) {
	h.setFeedbackFlag(w, r, h.feedback.IgnoreFeedback)
}

func (h *FeedbackHandler) ConfirmFeedback(w http.ResponseWriter, r *http.Request) {
	h.setFeedbackFlag(w, r, h.feedback.ConfirmFeedback)
}

func (h *FeedbackHandler) setFeedbackFlag(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, id uuid.UUID, value bool) error) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var req flagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := set(r.Context(), id, req.Value); err != nil {
		h.writeServiceError(w, r, err, "failed to update feedback flag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateScoreRequest struct {
	Score   float64    `json:"score"`
	RoundID *uuid.UUID `json:"round_id"`
}

type scoreHistoryResponse struct {
	ID            uuid.UUID  `json:"id"`
	AdjudicatorID uuid.UUID  `json:"adjudicator_id"`
	RoundID       *uuid.UUID `json:"round_id,omitempty"`
	Score         float64    `json:"score"`
	Timestamp     time.Time  `json:"timestamp"`
}

func toScoreHistoryResponse(h *domain.BaseScoreHistory) scoreHistoryResponse {
	return scoreHistoryResponse{
		ID:            h.ID,
		AdjudicatorID: h.AdjudicatorID,
		RoundID:       h.RoundID,
		Score:         h.Score,
		Timestamp:     h.Timestamp,
	}
}

func (h *FeedbackHandler) UpdateBaseScore(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.scores.UpdateBaseScore(r.Context(), id, req.RoundID, req.Score)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update base score")
		return
	}

	writeJSON(w, http.StatusCreated, toScoreHistoryResponse(entry))
}

func (h *FeedbackHandler) ScoreHistory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := h.scores.History(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get score history")
		return
	}

	resp := make([]scoreHistoryResponse, 0, len(history))
	for _, entry := range history {
		resp = append(resp, toScoreHistoryResponse(entry))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"history": resp})
}

func (h *FeedbackHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := mapErr(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
		writeErrorJSON(w, status, http.StatusText(status))
		return
	}
	writeErrorJSON(w, status, err.Error())
}

func mapErr(err error) int {
	switch {
	case errors.Is(err, service.ErrFeedbackNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAdjudicatorNotFound),
		errors.Is(err, service.ErrSourceNotFound),
		errors.Is(err, service.ErrDebateNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSource),
		errors.Is(err, domain.ErrBothSources),
		errors.Is(err, domain.ErrNoAdjudicator),
		errors.Is(err, domain.ErrAdjudicatorNotOnPanel),
		errors.Is(err, service.ErrAnswerTypeMismatch),
		errors.Is(err, service.ErrRequiredAnswerMissing),
		errors.Is(err, service.ErrAnswerOutOfRange),
		errors.Is(err, service.ErrInvalidChoice),
		errors.Is(err, service.ErrForeignQuestion),
		errors.Is(err, service.ErrInvalidAnswerType):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %q", key, val)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp, _ := json.Marshal(map[string]string{"error": message})
	_, _ = w.Write(resp)
}
