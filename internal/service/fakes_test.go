package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"slintsurvey/internal/model"
	"slintsurvey/internal/repository"
)

type memRepo struct {
	mu        sync.Mutex
	responses []*model.StoredResponse
	seq       int
	failList  error
}

func (r *memRepo) Create(_ context.Context, response *model.StoredResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	response.ID = fmt.Sprintf("r%d", r.seq)
	response.CreatedAt = time.Date(2026, 1, 1, 0, r.seq, 0, 0, time.UTC)
	r.responses = append(r.responses, response)
	return nil
}

func (r *memRepo) List(context.Context) ([]*model.StoredResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]*model.StoredResponse, 0, len(r.responses))
	for i := len(r.responses) - 1; i >= 0; i-- {
		out = append(out, r.responses[i])
	}
	return out, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*model.StoredResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, resp := range r.responses {
		if resp.ID == id {
			r.responses = append(r.responses[:i], r.responses[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.responses)), nil
}

func (r *memRepo) Close(context.Context) error { return nil }

// memDashboard mirrors the generation rule of the Redis dashboard cache
type memDashboard struct {
	mu          sync.Mutex
	summary     *model.DashboardSummary
	gen         int64
	sets        int
	invalidated int
	broken      bool
}

func (c *memDashboard) Get(context.Context) (*model.DashboardSummary, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return nil, 0, errors.New("redis down")
	}
	return c.summary, c.gen, nil
}

func (c *memDashboard) Set(_ context.Context, gen int64, summary *model.DashboardSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return errors.New("redis down")
	}
	if gen != c.gen {
		return nil
	}
	c.sets++
	c.summary = summary
	return nil
}

func (c *memDashboard) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
	c.summary = nil
	return nil
}

// blockingRepo snapshots List before signalling listed and then waits for
// release, so writes can land while a dashboard is being computed
type blockingRepo struct {
	*memRepo
	listed  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingRepo) List(ctx context.Context) ([]*model.StoredResponse, error) {
	out, err := r.memRepo.List(ctx)
	blocked := false
	r.once.Do(func() { blocked = true })
	if blocked {
		close(r.listed)
		<-r.release
	}
	return out, err
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

type event struct {
	Type    string
	Payload interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (b *recordingBroadcaster) BroadcastToAdmins(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{Type: msgType, Payload: payload})
}

func identity(name string) model.AnswerSet {
	return model.AnswerSet{
		"A1": model.Text(name),
		"A2": model.Text(name + "@example.com"),
	}
}
