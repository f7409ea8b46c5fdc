package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slintsurvey/internal/model"
)

func sectionIDs(sections []model.Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

func TestIsQuestionVisible(t *testing.T) {
	gated := model.Question{ID: "G2", Kind: model.KindRadio, Condition: &model.Condition{Field: "G1", Value: "Yes"}}
	multi := model.Question{ID: "G7", Kind: model.KindCheckbox, Condition: &model.Condition{Field: "G6", Values: []string{"Yes", "Possibly within 12 months"}}}

	tests := []struct {
		name    string
		q       model.Question
		answers model.AnswerSet
		want    bool
	}{
		{"no condition", model.Question{ID: "A1"}, model.AnswerSet{}, true},
		{"value match", gated, model.AnswerSet{"G1": model.Text("Yes")}, true},
		{"value mismatch", gated, model.AnswerSet{"G1": model.Text("No")}, false},
		{"value absent", gated, model.AnswerSet{}, false},
		{"value list answer", gated, model.AnswerSet{"G1": model.List("Yes")}, false},
		{"values member", multi, model.AnswerSet{"G6": model.Text("Possibly within 12 months")}, true},
		{"values non-member", multi, model.AnswerSet{"G6": model.Text("No")}, false},
		{"values absent", multi, model.AnswerSet{}, false},
		{"values list answer", multi, model.AnswerSet{"G6": model.List("Yes")}, false},
		{"empty string answer", gated, model.AnswerSet{"G1": model.Text("")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuestionVisible(tt.q, tt.answers))
		})
	}
}

func TestVisibleSections(t *testing.T) {
	s := MustDefault()

	t.Run("student section", func(t *testing.T) {
		ids := sectionIDs(s.VisibleSections(model.AnswerSet{"B1": model.List("Student")}))
		assert.Contains(t, ids, "I")
		assert.NotContains(t, ids, "J")
		assert.NotContains(t, ids, "L")
	})

	t.Run("empty profile", func(t *testing.T) {
		ids := sectionIDs(s.VisibleSections(model.AnswerSet{"B1": model.List()}))
		assert.NotContains(t, ids, "I")
		assert.Len(t, ids, 15)
	})

	t.Run("unanswered profile", func(t *testing.T) {
		assert.Len(t, s.VisibleSections(model.AnswerSet{}), 15)
	})

	t.Run("business owner unlocks corporate", func(t *testing.T) {
		ids := sectionIDs(s.VisibleSections(model.AnswerSet{"B1": model.List("Business Owner / Entrepreneur")}))
		assert.Contains(t, ids, "L")
	})

	t.Run("order preserved", func(t *testing.T) {
		answers := model.AnswerSet{"B1": model.List("Corporate Employer / HR Decision Maker", "Student", "Government / Public Sector Official")}
		assert.Equal(t,
			[]string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R"},
			sectionIDs(s.VisibleSections(answers)))
	})

	t.Run("scalar profile answer is ignored", func(t *testing.T) {
		ids := sectionIDs(s.VisibleSections(model.AnswerSet{"B1": model.Text("Student")}))
		assert.NotContains(t, ids, "I")
	})
}

func TestVisibleQuestionsComposesSectionAndCondition(t *testing.T) {
	s := MustDefault()

	qs := s.VisibleQuestions("G", model.AnswerSet{})
	var ids []string
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"G1", "G6"}, ids)

	qs = s.VisibleQuestions("G", model.AnswerSet{"G1": model.Text("Yes"), "G6": model.Text("Yes")})
	assert.Len(t, qs, 6)

	// I1 has no condition of its own but its section is hidden.
	assert.Empty(t, s.VisibleQuestions("I", model.AnswerSet{}))
	assert.Len(t, s.VisibleQuestions("I", model.AnswerSet{"B1": model.List("Student")}), 2)

	assert.Empty(t, s.VisibleQuestions("nope", model.AnswerSet{}))
	assert.False(t, s.IsSectionVisible("nope", model.AnswerSet{}))
}

func TestVisibleViews(t *testing.T) {
	s := MustDefault()
	views := s.VisibleViews(model.AnswerSet{"B1": model.List("Student")})
	assert.Len(t, views, 16)
	for _, v := range views {
		if v.ID == "G" {
			assert.Len(t, v.Questions, 2)
		}
	}
}
