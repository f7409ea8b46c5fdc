package survey

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slintsurvey/internal/model"
)

func TestCountsByOptionFanOut(t *testing.T) {
	responses := []model.AnswerSet{
		{"D1": model.List("AI", "Cyber")},
		{"D1": model.List("AI")},
	}
	want := []model.OptionCount{{Label: "AI", Count: 2}, {Label: "Cyber", Count: 1}}
	if diff := cmp.Diff(want, CountsByOption(responses, "D1")); diff != "" {
		t.Errorf("CountsByOption mismatch (-want +got):\n%s", diff)
	}
}

func TestCountsByOptionSkipsBlankAndAbsent(t *testing.T) {
	responses := []model.AnswerSet{
		{"G6": model.Text("")},
		{},
		{"G6": model.Text("Yes")},
		{"G6": model.List("", "No")},
		{"A1": model.Text("Jane")},
	}
	got := CountsByOption(responses, "G6")
	assert.Equal(t, []model.OptionCount{{Label: "Yes", Count: 1}, {Label: "No", Count: 1}}, got)
	assert.Equal(t, 2, AnsweredCount(responses, "G6"))
}

func TestCountsByOptionTiesKeepFirstSeenOrder(t *testing.T) {
	responses := []model.AnswerSet{
		{"Q1": model.List("Skills gap", "Infrastructure")},
		{"Q1": model.List("Access to capital", "Infrastructure")},
		{"Q1": model.List("Access to capital", "Skills gap")},
	}
	got := CountsByOption(responses, "Q1")
	assert.Equal(t, []model.OptionCount{
		{Label: "Skills gap", Count: 2},
		{Label: "Infrastructure", Count: 2},
		{Label: "Access to capital", Count: 2},
	}, got)
}

func TestCountsByOptionEmptyInput(t *testing.T) {
	assert.Empty(t, CountsByOption(nil, "D1"))
	assert.Empty(t, CountsByOption([]model.AnswerSet{{"A1": model.Text("x")}}, "unknown"))
}

func TestTopN(t *testing.T) {
	counts := []model.OptionCount{{Label: "a", Count: 3}, {Label: "b", Count: 2}, {Label: "c", Count: 1}}
	assert.Len(t, TopN(counts, 2), 2)
	assert.Len(t, TopN(counts, 0), 3)
	assert.Len(t, TopN(counts, 10), 3)
}

func TestSummarize(t *testing.T) {
	mk := func(answers model.AnswerSet) *model.StoredResponse {
		r, err := Finalize(answers)
		require.NoError(t, err)
		return r
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	responses := []*model.StoredResponse{
		mk(model.AnswerSet{
			"A1": model.Text("Ada"), "A2": model.Text("ada@example.com"),
			"B1": model.List("Student", "Government / Public Sector Official"),
			"G6": model.Text("Yes"),
			"D1": model.List("AI & Emerging Technologies"),
		}),
		mk(model.AnswerSet{
			"A1": model.Text("Bo"), "A2": model.Text("bo@example.com"),
			"B1": model.List("Student"),
			"G6": model.Text("No"),
		}),
		mk(model.AnswerSet{
			"A1": model.Text("Cy"), "A2": model.Text("cy@example.com"),
			"G6": model.Text("Possibly within 12 months"),
			"Q1": model.List("Skills gap"),
		}),
	}

	sum := Summarize(responses, now)
	assert.Equal(t, 3, sum.TotalResponses)
	assert.Equal(t, 2, sum.FundingNeedCount)
	assert.Equal(t, 1, sum.GovernmentRespondents)
	assert.Equal(t, 3, sum.UniqueClusters)
	assert.Equal(t, []model.ClusterCount{
		{Tag: model.ClusterStudent, Count: 2},
		{Tag: model.ClusterGovernment, Count: 1},
		{Tag: model.ClusterGeneral, Count: 1},
	}, sum.Clusters)
	assert.Equal(t, []model.OptionCount{
		{Label: "Student", Count: 2},
		{Label: "Government / Public Sector Official", Count: 1},
	}, sum.Profiles)
	assert.Equal(t, []model.OptionCount{{Label: "AI & Emerging Technologies", Count: 1}}, sum.Priorities)
	assert.Equal(t, []model.OptionCount{{Label: "Skills gap", Count: 1}}, sum.Constraints)
	assert.Equal(t, now, sum.GeneratedAt)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil, time.Time{})
	assert.Zero(t, sum.TotalResponses)
	assert.Zero(t, sum.UniqueClusters)
	assert.Empty(t, sum.Profiles)
}
