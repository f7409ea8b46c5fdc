package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"slintsurvey/internal/cache"
	"slintsurvey/internal/model"
	"slintsurvey/internal/repository"
	"slintsurvey/internal/survey"
)

// CSVHeader is the header row of the response export
var CSVHeader = []string{
	"Name", "Email", "Location", "Profile", "Cluster",
	"Funding Need", "Funding Range", "Card Interest", "Time Commitment",
}

// ReportService computes dashboard summaries, per-question counts and exports
type ReportService struct {
	repo      repository.ResponseRepo
	dashboard cache.DashboardCache
	schema    *survey.Schema
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService creates a new report service. dashboard may be nil.
func NewReportService(repo repository.ResponseRepo, dashboard cache.DashboardCache, schema *survey.Schema, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:      repo,
		dashboard: dashboard,
		schema:    schema,
		logger:    logger,
		now:       time.Now,
	}
}

// Dashboard returns the dashboard summary, served from cache when fresh. A
// recomputed summary is cached only if no response was created or deleted
// while it was being computed.
func (s *ReportService) Dashboard(ctx context.Context) (*model.DashboardSummary, error) {
	var gen int64
	cacheable := false
	if s.dashboard != nil {
		cached, g, err := s.dashboard.Get(ctx)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		} else {
			gen, cacheable = g, true
		}
	}

	responses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	summary := survey.Summarize(responses, s.now().UTC())

	if cacheable {
		if err := s.dashboard.Set(ctx, gen, &summary); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return &summary, nil
}

// Counts returns the frequency table for one question; top <= 0 keeps every row
func (s *ReportService) Counts(ctx context.Context, questionID string, top int) (*model.QuestionCounts, error) {
	q, ok := s.schema.Question(questionID)
	if !ok {
		return nil, ErrUnknownQuestion
	}

	responses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	answers := make([]model.AnswerSet, 0, len(responses))
	for _, r := range responses {
		answers = append(answers, r.Answers)
	}

	return &model.QuestionCounts{
		QuestionID: q.ID,
		Prompt:     q.Text,
		Answered:   survey.AnsweredCount(answers, q.ID),
		Counts:     survey.TopN(survey.CountsByOption(answers, q.ID), top),
	}, nil
}

// ExportCSV writes every stored response as CSV, newest first
func (s *ReportService) ExportCSV(ctx context.Context, w io.Writer) error {
	responses, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list responses: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range responses {
		if err := cw.Write(csvRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(r *model.StoredResponse) []string {
	clusters := make([]string, len(r.Cluster))
	for i, c := range r.Cluster {
		clusters[i] = string(c)
	}
	return []string{
		r.FullName,
		r.Email,
		deref(r.Location),
		strings.Join(r.Profile, "; "),
		strings.Join(clusters, "; "),
		deref(r.FundingNeed),
		deref(r.FundingRange),
		deref(r.CardInterest),
		deref(r.TimeCommitment),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
