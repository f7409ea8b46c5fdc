package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"slintsurvey/internal/model"
)

// ErrDraftContention is returned when a draft kept changing under a write
// for every retry
var ErrDraftContention = errors.New("draft changed concurrently, retry")

const (
	draftStartedField = "startedAt"
	draftUpdatedField = "updatedAt"
	draftAnswerPrefix = "q:"

	maxDraftRetries = 16
)

// DraftCache stores in-progress survey drafts as one hash per respondent
// session, one field per answered question
type DraftCache interface {
	// Put writes the whole draft, replacing anything stored under its id
	Put(ctx context.Context, draft *model.Draft) error
	// Get returns nil, nil when the draft expired or never existed
	Get(ctx context.Context, id string) (*model.Draft, error)
	// SetAnswer replaces a single answer; false when the draft does not exist
	SetAnswer(ctx context.Context, id, questionID string, value model.AnswerValue, at time.Time) (bool, error)
	// ClearAnswer removes a single answer; false when the draft does not exist
	ClearAnswer(ctx context.Context, id, questionID string, at time.Time) (bool, error)
	// Take reads and removes the draft in one step. Only one caller gets it.
	Take(ctx context.Context, id string) (*model.Draft, error)
}

type draftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a draft cache; every write refreshes the ttl
func NewDraftCache(client *redis.Client, ttl time.Duration) DraftCache {
	return &draftCache{
		client: client,
		ttl:    ttl,
	}
}

func draftKey(id string) string {
	return fmt.Sprintf("survey:draft:%s", id)
}

func answerField(questionID string) string {
	return draftAnswerPrefix + questionID
}

func (c *draftCache) Put(ctx context.Context, draft *model.Draft) error {
	fields := map[string]interface{}{
		draftStartedField: draft.StartedAt.UTC().Format(time.RFC3339Nano),
		draftUpdatedField: draft.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	for qid, v := range draft.Answers {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode answer %s: %w", qid, err)
		}
		fields[answerField(qid)] = string(data)
	}

	key := draftKey(draft.ID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	return err
}

func (c *draftCache) Get(ctx context.Context, id string) (*model.Draft, error) {
	fields, err := c.client.HGetAll(ctx, draftKey(id)).Result()
	if err != nil {
		return nil, err
	}
	return decodeDraft(id, fields)
}

func (c *draftCache) SetAnswer(ctx context.Context, id, questionID string, value model.AnswerValue, at time.Time) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	return c.modify(ctx, id, func(pipe redis.Pipeliner, key string) {
		pipe.HSet(ctx, key,
			answerField(questionID), string(data),
			draftUpdatedField, at.UTC().Format(time.RFC3339Nano),
		)
	})
}

func (c *draftCache) ClearAnswer(ctx context.Context, id, questionID string, at time.Time) (bool, error) {
	return c.modify(ctx, id, func(pipe redis.Pipeliner, key string) {
		pipe.HDel(ctx, key, answerField(questionID))
		pipe.HSet(ctx, key, draftUpdatedField, at.UTC().Format(time.RFC3339Nano))
	})
}

// modify applies a field-level change only while the draft key exists, so a
// draft that expired or was taken for submission is never recreated
func (c *draftCache) modify(ctx context.Context, id string, apply func(redis.Pipeliner, string)) (bool, error) {
	key := draftKey(id)
	for attempt := 0; attempt < maxDraftRetries; attempt++ {
		found := false
		err := c.client.Watch(ctx, func(tx *redis.Tx) error {
			n, err := tx.Exists(ctx, key).Result()
			if err != nil {
				return err
			}
			if n == 0 {
				return nil
			}
			found = true
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				apply(pipe, key)
				pipe.Expire(ctx, key, c.ttl)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, err
		}
		return found, nil
	}
	return false, ErrDraftContention
}

func (c *draftCache) Take(ctx context.Context, id string) (*model.Draft, error) {
	key := draftKey(id)
	var all *redis.MapStringStringCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		all = pipe.HGetAll(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeDraft(id, all.Val())
}

func decodeDraft(id string, fields map[string]string) (*model.Draft, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	draft := &model.Draft{ID: id, Answers: model.AnswerSet{}}
	for field, raw := range fields {
		switch {
		case field == draftStartedField:
			t, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return nil, fmt.Errorf("draft %s: %w", id, err)
			}
			draft.StartedAt = t
		case field == draftUpdatedField:
			t, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return nil, fmt.Errorf("draft %s: %w", id, err)
			}
			draft.UpdatedAt = t
		case strings.HasPrefix(field, draftAnswerPrefix):
			var v model.AnswerValue
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, fmt.Errorf("draft %s answer %s: %w", id, field, err)
			}
			draft.Answers[strings.TrimPrefix(field, draftAnswerPrefix)] = v
		}
	}
	return draft, nil
}
