package survey

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slintsurvey/internal/model"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	sections := s.Sections()
	require.Len(t, sections, 18)
	assert.Equal(t, "A", sections[0].ID)
	assert.Equal(t, "R", sections[len(sections)-1].ID)
	assert.True(t, sections[0].Required)

	q, ok := s.Question("D1")
	require.True(t, ok)
	assert.Equal(t, model.KindCheckbox, q.Kind)
	assert.Equal(t, 3, q.Limit)

	owner, ok := s.SectionOf("G8")
	require.True(t, ok)
	assert.Equal(t, "G", owner)
}

func TestDefaultCatalogConditionsReferenceEarlierQuestions(t *testing.T) {
	s := MustDefault()
	seen := map[string]bool{}
	for _, q := range s.AllQuestions() {
		if q.Condition != nil {
			assert.True(t, seen[q.Condition.Field], "%s references %s before it is declared", q.ID, q.Condition.Field)
		}
		seen[q.ID] = true
	}
}

func TestQuestionsUnknownSection(t *testing.T) {
	s := MustDefault()
	assert.Nil(t, s.Questions("ZZ"))
	_, ok := s.Section("ZZ")
	assert.False(t, ok)
	_, ok = s.Question("ZZ9")
	assert.False(t, ok)
}

func TestSchemaReturnsCopies(t *testing.T) {
	s := MustDefault()
	qs := s.Questions("B")
	qs[0].Options[0] = "mutated"
	qs[0].ID = "X"

	again := s.Questions("B")
	assert.Equal(t, "B1", again[0].ID)
	assert.Equal(t, "Student", again[0].Options[0])

	secs := s.Sections()
	secs[8].Conditional.AnyOf[0] = "mutated"
	sec, _ := s.Section("I")
	assert.Equal(t, []string{"Student"}, sec.Conditional.AnyOf)
}

func TestLoadRejectsMalformedCatalogs(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		reason string
	}{
		{
			name: "duplicate question id",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: one, type: text}
      - {id: A1, text: two, type: text}
`,
			reason: "duplicate question id",
		},
		{
			name: "choice without options",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: pick, type: radio}
`,
			reason: "radio question has no options",
		},
		{
			name: "forward condition",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - id: A1
        text: later
        type: text
        condition: {field: A2, value: "Yes"}
      - {id: A2, text: gate, type: radio, options: ["Yes", "No"]}
`,
			reason: `condition references "A2" which is not declared earlier`,
		},
		{
			name: "self condition",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - id: A1
        text: loop
        type: text
        condition: {field: A1, value: x}
`,
			reason: "condition references itself",
		},
		{
			name: "condition on checkbox",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: many, type: checkbox, options: [x, y]}
      - id: A2
        text: gated
        type: text
        condition: {field: A1, value: x}
`,
			reason: "condition references checkbox question A1",
		},
		{
			name: "limit on radio",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: one, type: radio, options: [x, y], limit: 1}
`,
			reason: "limit is only allowed on checkbox questions",
		},
		{
			name: "duplicate option",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: one, type: checkbox, options: [x, x]}
`,
			reason: `duplicate option "x"`,
		},
		{
			name: "unknown kind",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: one, type: slider}
`,
			reason: `unknown question type "slider"`,
		},
		{
			name: "section predicate on text question",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: one, type: text}
  - id: B
    title: B
    conditional: {field: A1, anyOf: [x]}
`,
			reason: "conditional question A1 is text, want checkbox",
		},
		{
			name: "condition value not an option",
			yaml: `
sections:
  - id: A
    title: A
    questions:
      - {id: A1, text: gate, type: radio, options: ["Yes", "No"]}
      - id: A2
        text: gated
        type: text
        condition: {field: A1, value: Maybe}
`,
			reason: `condition value "Maybe" is not an option of A1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			require.Error(t, err)

			var se *SchemaError
			require.True(t, errors.As(err, &se))
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	_, err := Load([]byte("title: empty\n"))
	assert.ErrorContains(t, err, "catalog has no sections")
}

func TestNewBuildsSchema(t *testing.T) {
	s, err := New("mini",
		[]model.Section{{ID: "A", Title: "Only"}},
		map[string][]model.Question{"A": {{ID: "A1", Text: "Name", Kind: model.KindText}}},
	)
	require.NoError(t, err)
	assert.Equal(t, "mini", s.Title())
	assert.Len(t, s.AllQuestions(), 1)
}
