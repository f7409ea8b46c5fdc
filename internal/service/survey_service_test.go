package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"slintsurvey/internal/cache"
	"slintsurvey/internal/model"
	"slintsurvey/internal/survey"
)

func newTestSurvey(t *testing.T) (*SurveyService, cache.DraftCache, *memRepo) {
	t.Helper()
	repo := &memRepo{}
	drafts := cache.NewDraftCache(newTestRedis(t), time.Hour)
	responses := NewResponseService(repo, nil, zap.NewNop())
	return NewSurveyService(survey.MustDefault(), drafts, responses, zap.NewNop()), drafts, repo
}

func sectionIDs(views []model.SectionView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	s, drafts, repo := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.False(t, view.Ready)
	assert.NotContains(t, sectionIDs(view.Sections), "I")

	view, err = s.SetAnswer(ctx, view.ID, "B1", model.List("Student"))
	require.NoError(t, err)
	assert.Contains(t, sectionIDs(view.Sections), "I")

	_, err = s.SetAnswer(ctx, view.ID, "A1", model.Text("Ada"))
	require.NoError(t, err)
	view, err = s.SetAnswer(ctx, view.ID, "A2", model.Text("ada@example.com"))
	require.NoError(t, err)
	assert.True(t, view.Ready)

	resp, err := s.Submit(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.FullName)
	assert.Len(t, repo.responses, 1)

	_, err = s.Draft(ctx, view.ID)
	assert.ErrorIs(t, err, ErrUnknownDraft)
	left, err := drafts.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Nil(t, left)
}

func TestSetAnswerUnknownQuestion(t *testing.T) {
	ctx := context.Background()
	s, drafts, _ := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)

	_, err = s.SetAnswer(ctx, view.ID, "ZZ9", model.Text("x"))
	assert.ErrorIs(t, err, ErrUnknownQuestion)
	stored, err := drafts.Get(ctx, view.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Empty(t, stored.Answers)
}

func TestSetAnswerUnknownDraft(t *testing.T) {
	s, _, _ := newTestSurvey(t)
	_, err := s.SetAnswer(context.Background(), "missing", "A1", model.Text("x"))
	assert.ErrorIs(t, err, ErrUnknownDraft)
}

func TestHiddenAnswersAreKept(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "G1", model.Text("Yes"))
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "G2", model.Text("1-3 years (Early growth)"))
	require.NoError(t, err)
	view, err = s.SetAnswer(ctx, view.ID, "G1", model.Text("No"))
	require.NoError(t, err)

	assert.True(t, view.Answers["G2"].Equal(model.Text("1-3 years (Early growth)")))
	for _, sec := range view.Sections {
		for _, q := range sec.Questions {
			assert.NotEqual(t, "G2", q.ID)
		}
	}
}

func TestClearAnswer(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "B1", model.List("Student"))
	require.NoError(t, err)
	view, err = s.ClearAnswer(ctx, view.ID, "B1")
	require.NoError(t, err)
	assert.NotContains(t, view.Answers, "B1")
}

func TestSubmitNotReadyKeepsDraft(t *testing.T) {
	ctx := context.Background()
	s, drafts, repo := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "A1", model.Text("Ada"))
	require.NoError(t, err)

	_, err = s.Submit(ctx, view.ID)
	assert.ErrorIs(t, err, survey.ErrNotReady)
	assert.Empty(t, repo.responses)

	kept, err := drafts.Get(ctx, view.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.Answers["A1"].Equal(model.Text("Ada")))

	// the restored draft can still be completed and submitted
	_, err = s.SetAnswer(ctx, view.ID, "A2", model.Text("ada@example.com"))
	require.NoError(t, err)
	_, err = s.Submit(ctx, view.ID)
	require.NoError(t, err)
	assert.Len(t, repo.responses, 1)
}

func TestConcurrentSetAnswerKeepsEveryAnswer(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)

	questions := survey.MustDefault().AllQuestions()[:8]
	var g errgroup.Group
	for _, q := range questions {
		qid := q.ID
		g.Go(func() error {
			_, err := s.SetAnswer(ctx, view.ID, qid, model.Text("value "+qid))
			return err
		})
	}
	require.NoError(t, g.Wait())

	got, err := s.Draft(ctx, view.ID)
	require.NoError(t, err)
	require.Len(t, got.Answers, len(questions))
	for _, q := range questions {
		assert.True(t, got.Answers[q.ID].Equal(model.Text("value "+q.ID)), q.ID)
	}
}

func TestConcurrentSubmitStoresOnce(t *testing.T) {
	ctx := context.Background()
	s, _, repo := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "A1", model.Text("Ada"))
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "A2", model.Text("ada@example.com"))
	require.NoError(t, err)

	const attempts = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		missing   int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit(ctx, view.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrUnknownDraft):
				missing++
			default:
				t.Errorf("unexpected submit error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, missing)
	assert.Len(t, repo.responses, 1)
}

func TestSetAnswerAfterSubmitDoesNotRecreateDraft(t *testing.T) {
	ctx := context.Background()
	s, drafts, _ := newTestSurvey(t)

	view, err := s.StartDraft(ctx)
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "A1", model.Text("Ada"))
	require.NoError(t, err)
	_, err = s.SetAnswer(ctx, view.ID, "A2", model.Text("ada@example.com"))
	require.NoError(t, err)
	_, err = s.Submit(ctx, view.ID)
	require.NoError(t, err)

	_, err = s.SetAnswer(ctx, view.ID, "A4", model.Text("Freetown"))
	assert.ErrorIs(t, err, ErrUnknownDraft)
	left, err := drafts.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Nil(t, left)
}

func TestDraftsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSurvey(t)

	a, err := s.StartDraft(ctx)
	require.NoError(t, err)
	b, err := s.StartDraft(ctx)
	require.NoError(t, err)

	_, err = s.SetAnswer(ctx, a.ID, "A1", model.Text("Ada"))
	require.NoError(t, err)

	got, err := s.Draft(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Answers)
}

func TestVisibility(t *testing.T) {
	s, _, _ := newTestSurvey(t)
	views := s.Visibility(model.AnswerSet{"B1": model.List("Corporate Employer / HR Decision Maker")})
	assert.Contains(t, sectionIDs(views), "L")
	assert.NotContains(t, sectionIDs(views), "I")
}
