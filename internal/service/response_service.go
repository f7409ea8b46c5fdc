package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"slintsurvey/internal/cache"
	"slintsurvey/internal/model"
	"slintsurvey/internal/repository"
	"slintsurvey/internal/survey"
)

// ResponseService finalizes, stores and removes survey responses
type ResponseService struct {
	repo        repository.ResponseRepo
	dashboard   cache.DashboardCache
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewResponseService creates a new response service. dashboard may be nil.
func NewResponseService(repo repository.ResponseRepo, dashboard cache.DashboardCache, logger *zap.Logger) *ResponseService {
	return &ResponseService{
		repo:        repo,
		dashboard:   dashboard,
		broadcaster: nopBroadcaster{},
		logger:      logger,
	}
}

// SetBroadcaster sets the live dashboard broadcaster
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit finalizes an answer set and stores it. A set without a full name
// and email is rejected with a *survey.SubmissionError and nothing is stored.
func (s *ResponseService) Submit(ctx context.Context, answers model.AnswerSet) (*model.StoredResponse, error) {
	response, err := survey.Finalize(answers)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("store response: %w", err)
	}

	s.logger.Info("response stored",
		zap.String("id", response.ID),
		zap.Int("answers", len(response.Answers)),
		zap.Any("cluster", response.Cluster),
	)

	s.invalidateDashboard(ctx)
	s.broadcaster.BroadcastToAdmins(EventResponseCreated, map[string]interface{}{
		"id":      response.ID,
		"cluster": response.Cluster,
	})
	return response, nil
}

// List returns every stored response, newest first
func (s *ResponseService) List(ctx context.Context) ([]*model.StoredResponse, error) {
	return s.repo.List(ctx)
}

// Get returns one response, or nil when it does not exist
func (s *ResponseService) Get(ctx context.Context, id string) (*model.StoredResponse, error) {
	return s.repo.GetByID(ctx, id)
}

// Count returns the number of stored responses
func (s *ResponseService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Delete removes a response; repository.ErrNotFound when it does not exist
func (s *ResponseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("response deleted", zap.String("id", id))
	s.invalidateDashboard(ctx)
	s.broadcaster.BroadcastToAdmins(EventResponseDeleted, map[string]interface{}{
		"id": id,
	})
	return nil
}

func (s *ResponseService) invalidateDashboard(ctx context.Context) {
	if s.dashboard == nil {
		return
	}
	if err := s.dashboard.Invalidate(ctx); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
