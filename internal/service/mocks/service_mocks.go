package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"feedback_service/internal/domain"
	"feedback_service/internal/service"
)

type MockQuestionService struct {
	ctrl     *gomock.Controller
	recorder *MockQuestionServiceMockRecorder
}

type MockQuestionServiceMockRecorder struct {
	mock *MockQuestionService
}

func NewMockQuestionService(ctrl *gomock.Controller) *MockQuestionService {
	mock := &MockQuestionService{ctrl: ctrl}
	mock.recorder = &MockQuestionServiceMockRecorder{mock}
	return mock
}

func (m *MockQuestionService) EXPECT() *MockQuestionServiceMockRecorder {
	return m.recorder
}

func (m *MockQuestionService) CreateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateQuestion", ctx, q)
	ret0, _ := ret[0].(*domain.Question)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuestionServiceMockRecorder) CreateQuestion(ctx, q interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateQuestion", reflect.TypeOf((*MockQuestionService)(nil).CreateQuestion), ctx, q)
}

func (m *MockQuestionService) UpdateQuestion(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateQuestion", ctx, q)
	ret0, _ := ret[0].(*domain.Question)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuestionServiceMockRecorder) UpdateQuestion(ctx, q interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateQuestion", reflect.TypeOf((*MockQuestionService)(nil).UpdateQuestion), ctx, q)
}

func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteQuestion", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockQuestionServiceMockRecorder) DeleteQuestion(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteQuestion", reflect.TypeOf((*MockQuestionService)(nil).DeleteQuestion), ctx, id)
}

func (m *MockQuestionService) ListQuestions(ctx context.Context, tournamentID uuid.UUID) ([]*domain.Question, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListQuestions", ctx, tournamentID)
	ret0, _ := ret[0].([]*domain.Question)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuestionServiceMockRecorder) ListQuestions(ctx, tournamentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListQuestions", reflect.TypeOf((*MockQuestionService)(nil).ListQuestions), ctx, tournamentID)
}

func (m *MockQuestionService) SerializeForm(ctx context.Context, tournamentID uuid.UUID) ([]domain.SerializedQuestion, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SerializeForm", ctx, tournamentID)
	ret0, _ := ret[0].([]domain.SerializedQuestion)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockQuestionServiceMockRecorder) SerializeForm(ctx, tournamentID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SerializeForm", reflect.TypeOf((*MockQuestionService)(nil).SerializeForm), ctx, tournamentID)
}

type MockFeedbackService struct {
	ctrl     *gomock.Controller
	recorder *MockFeedbackServiceMockRecorder
}

type MockFeedbackServiceMockRecorder struct {
	mock *MockFeedbackService
}

func NewMockFeedbackService(ctrl *gomock.Controller) *MockFeedbackService {
	mock := &MockFeedbackService{ctrl: ctrl}
	mock.recorder = &MockFeedbackServiceMockRecorder{mock}
	return mock
}

func (m *MockFeedbackService) EXPECT() *MockFeedbackServiceMockRecorder {
	return m.recorder
}

func (m *MockFeedbackService) SubmitFeedback(ctx context.Context, fb *domain.Feedback, answers []service.AnswerInput) (*domain.Feedback, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitFeedback", ctx, fb, answers)
	ret0, _ := ret[0].(*domain.Feedback)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockFeedbackServiceMockRecorder) SubmitFeedback(ctx, fb, answers interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitFeedback", reflect.TypeOf((*MockFeedbackService)(nil).SubmitFeedback), ctx, fb, answers)
}

func (m *MockFeedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*domain.Feedback, []domain.QuestionAnswer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetFeedback", ctx, id)
	ret0, _ := ret[0].(*domain.Feedback)
	ret1, _ := ret[1].([]domain.QuestionAnswer)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockFeedbackServiceMockRecorder) GetFeedback(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetFeedback", reflect.TypeOf((*MockFeedbackService)(nil).GetFeedback), ctx, id)
}

func (m *MockFeedbackService) GetFeedbackContext(ctx context.Context, fb *domain.Feedback) (*domain.FeedbackContext, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetFeedbackContext", ctx, fb)
	ret0, _ := ret[0].(*domain.FeedbackContext)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockFeedbackServiceMockRecorder) GetFeedbackContext(ctx, fb interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetFeedbackContext", reflect.TypeOf((*MockFeedbackService)(nil).GetFeedbackContext), ctx, fb)
}

func (m *MockFeedbackService) ListFeedbackOnAdjudicator(ctx context.Context, adjudicatorID uuid.UUID, confirmedOnly bool) ([]*domain.Feedback, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListFeedbackOnAdjudicator", ctx, adjudicatorID, confirmedOnly)
	ret0, _ := ret[0].([]*domain.Feedback)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockFeedbackServiceMockRecorder) ListFeedbackOnAdjudicator(ctx, adjudicatorID, confirmedOnly interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListFeedbackOnAdjudicator", reflect.TypeOf((*MockFeedbackService)(nil).ListFeedbackOnAdjudicator), ctx, adjudicatorID, confirmedOnly)
}

func (m *MockFeedbackService) IgnoreFeedback(ctx context.Context, id uuid.UUID, ignored bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IgnoreFeedback", ctx, id, ignored)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockFeedbackServiceMockRecorder) IgnoreFeedback(ctx, id, ignored interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IgnoreFeedback", reflect.TypeOf((*MockFeedbackService)(nil).IgnoreFeedback), ctx, id, ignored)
}

func (m *MockFeedbackService) ConfirmFeedback(ctx context.Context, id uuid.UUID, confirmed bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmFeedback", ctx, id, confirmed)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockFeedbackServiceMockRecorder) ConfirmFeedback(ctx, id, confirmed interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmFeedback", reflect.TypeOf((*MockFeedbackService)(nil).ConfirmFeedback), ctx, id, confirmed)
}

type MockScoreService struct {
	ctrl     *gomock.Controller
	recorder *MockScoreServiceMockRecorder
}

type MockScoreServiceMockRecorder struct {
	mock *MockScoreService
}

func NewMockScoreService(ctrl *gomock.Controller) *MockScoreService {
	mock := &MockScoreService{ctrl: ctrl}
	mock.recorder = &MockScoreServiceMockRecorder{mock}
	return mock
}

func (m *MockScoreService) EXPECT() *MockScoreServiceMockRecorder {
	return m.recorder
}

func (m *MockScoreService) UpdateBaseScore(ctx context.Context, adjudicatorID uuid.UUID, roundID *uuid.UUID, score float64) (*domain.BaseScoreHistory, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateBaseScore", ctx, adjudicatorID, roundID, score)
	ret0, _ := ret[0].(*domain.BaseScoreHistory)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockScoreServiceMockRecorder) UpdateBaseScore(ctx, adjudicatorID, roundID, score interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateBaseScore", reflect.TypeOf((*MockScoreService)(nil).UpdateBaseScore), ctx, adjudicatorID, roundID, score)
}

func (m *MockScoreService) History(ctx context.Context, adjudicatorID uuid.UUID) ([]*domain.BaseScoreHistory, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "History", ctx, adjudicatorID)
	ret0, _ := ret[0].([]*domain.BaseScoreHistory)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockScoreServiceMockRecorder) History(ctx, adjudicatorID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "History", reflect.TypeOf((*MockScoreService)(nil).History), ctx, adjudicatorID)
}
