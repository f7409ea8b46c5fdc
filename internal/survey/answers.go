package survey

import (
	"errors"
	"strings"

	"slintsurvey/internal/model"
)

// Identity questions that every submission must answer
const (
	FullNameQuestion = "A1"
	EmailQuestion    = "A2"
)

// ErrNotReady is matched by every SubmissionError
var ErrNotReady = errors.New("submission not ready")

// SubmissionError explains why an answer set cannot be submitted
type SubmissionError struct {
	Missing []string // question ids
	Reason  string
}

func (e *SubmissionError) Error() string {
	return e.Reason
}

// Is lets errors.Is match ErrNotReady
func (e *SubmissionError) Is(target error) bool {
	return target == ErrNotReady
}

// AnswerStore is the evolving answer set of one in-progress session.
// It is not safe for concurrent use; each session owns its own store.
type AnswerStore struct {
	answers model.AnswerSet
}

// NewAnswerStore creates an empty store
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{answers: make(model.AnswerSet)}
}

// FromAnswers creates a store seeded with a copy of answers
func FromAnswers(answers model.AnswerSet) *AnswerStore {
	return &AnswerStore{answers: answers.Clone()}
}

// SetAnswer replaces the value stored for id. Selection limits are not
// enforced here; see ToggleOption.
func (s *AnswerStore) SetAnswer(id string, v model.AnswerValue) {
	if v.IsList() {
		v = model.List(v.Items()...)
	}
	s.answers[id] = v
}

// Clear removes the answer for id
func (s *AnswerStore) Clear(id string) {
	delete(s.answers, id)
}

// Get returns the answer for id
func (s *AnswerStore) Get(id string) (model.AnswerValue, bool) {
	return s.answers.Get(id)
}

// Len returns the number of answered questions
func (s *AnswerStore) Len() int {
	return len(s.answers)
}

// Snapshot returns a deep copy of the current answers
func (s *AnswerStore) Snapshot() model.AnswerSet {
	return s.answers.Clone()
}

// ToggleOption computes the next selection for a checkbox question when the
// respondent toggles option. Deselecting always succeeds; selecting fails,
// returning the current selection unchanged, once the limit is reached.
func ToggleOption(q model.Question, current model.AnswerValue, option string) (model.AnswerValue, bool) {
	items := current.Items()
	for i, item := range items {
		if item == option {
			return model.List(append(items[:i], items[i+1:]...)...), true
		}
	}
	if q.Limit > 0 && len(items) >= q.Limit {
		return model.List(items...), false
	}
	return model.List(append(items, option)...), true
}

// Ready reports whether answers may be submitted: the full name and email
// answers must be non-empty after trimming. Other required flags are not checked.
func Ready(answers model.AnswerSet) error {
	var missing []string
	for _, id := range []string{FullNameQuestion, EmailQuestion} {
		if strings.TrimSpace(answers.Scalar(id)) == "" {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &SubmissionError{Missing: missing, Reason: "Full name and email are required."}
	}
	return nil
}
