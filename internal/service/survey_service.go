package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slintsurvey/internal/cache"
	"slintsurvey/internal/model"
	"slintsurvey/internal/survey"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownDraft    = errors.New("draft not found or expired")
)

// SurveyService serves the catalog and manages respondent drafts. Each draft
// owns its answer set; nothing is shared between sessions.
type SurveyService struct {
	schema    *survey.Schema
	drafts    cache.DraftCache
	responses *ResponseService
	logger    *zap.Logger
	now       func() time.Time
}

// NewSurveyService creates a new survey service
func NewSurveyService(schema *survey.Schema, drafts cache.DraftCache, responses *ResponseService, logger *zap.Logger) *SurveyService {
	return &SurveyService{
		schema:    schema,
		drafts:    drafts,
		responses: responses,
		logger:    logger,
		now:       time.Now,
	}
}

// Schema returns the loaded catalog
func (s *SurveyService) Schema() *survey.Schema {
	return s.schema
}

// Visibility resolves the visible sections and questions for an ad-hoc answer set
func (s *SurveyService) Visibility(answers model.AnswerSet) []model.SectionView {
	return s.schema.VisibleViews(answers)
}

// StartDraft opens a new, empty draft
func (s *SurveyService) StartDraft(ctx context.Context) (*model.DraftView, error) {
	now := s.now().UTC()
	draft := &model.Draft{
		ID:        uuid.NewString(),
		Answers:   model.AnswerSet{},
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.drafts.Put(ctx, draft); err != nil {
		return nil, err
	}

	s.logger.Debug("draft started", zap.String("draft", draft.ID))
	return s.view(draft), nil
}

// Draft returns a draft with its current visibility
func (s *SurveyService) Draft(ctx context.Context, id string) (*model.DraftView, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(draft), nil
}

// SetAnswer replaces one answer in a draft and leaves every other answer as
// stored. Answers to questions that are currently hidden are kept; they stop
// counting only through visibility.
func (s *SurveyService) SetAnswer(ctx context.Context, id, questionID string, value model.AnswerValue) (*model.DraftView, error) {
	if _, ok := s.schema.Question(questionID); !ok {
		return nil, ErrUnknownQuestion
	}
	found, err := s.drafts.SetAnswer(ctx, id, questionID, value, s.now())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUnknownDraft
	}
	return s.Draft(ctx, id)
}

// ClearAnswer removes one answer from a draft
func (s *SurveyService) ClearAnswer(ctx context.Context, id, questionID string) (*model.DraftView, error) {
	if _, ok := s.schema.Question(questionID); !ok {
		return nil, ErrUnknownQuestion
	}
	found, err := s.drafts.ClearAnswer(ctx, id, questionID, s.now())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrUnknownDraft
	}
	return s.Draft(ctx, id)
}

// Submit claims the draft, stores it as a response and discards it. A draft
// can be claimed once, so a repeated submit gets ErrUnknownDraft. When the
// response cannot be stored the draft is put back so the respondent can fix it.
func (s *SurveyService) Submit(ctx context.Context, id string) (*model.StoredResponse, error) {
	draft, err := s.drafts.Take(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrUnknownDraft
	}

	response, err := s.responses.Submit(ctx, draft.Answers)
	if err != nil {
		if restoreErr := s.drafts.Put(ctx, draft); restoreErr != nil {
			s.logger.Error("draft restore failed", zap.String("draft", id), zap.Error(restoreErr))
		}
		return nil, err
	}
	return response, nil
}

func (s *SurveyService) load(ctx context.Context, id string) (*model.Draft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrUnknownDraft
	}
	return draft, nil
}

func (s *SurveyService) view(draft *model.Draft) *model.DraftView {
	return &model.DraftView{
		Draft:    *draft,
		Sections: s.schema.VisibleViews(draft.Answers),
		Ready:    survey.Ready(draft.Answers) == nil,
	}
}
