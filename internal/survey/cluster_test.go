package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"slintsurvey/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		answers model.AnswerSet
		want    []model.ClusterTag
	}{
		{
			name:    "empty",
			answers: model.AnswerSet{},
			want:    []model.ClusterTag{model.ClusterGeneral},
		},
		{
			name:    "irrelevant answers",
			answers: model.AnswerSet{"A1": model.Text("Jane"), "B1": model.List("Industry Professional (Private Sector)")},
			want:    []model.ClusterTag{model.ClusterGeneral},
		},
		{
			name:    "student and government",
			answers: model.AnswerSet{"B1": model.List("Student", "Government / Public Sector Official")},
			want:    []model.ClusterTag{model.ClusterStudent, model.ClusterGovernment},
		},
		{
			name:    "facet order ignores selection order",
			answers: model.AnswerSet{"B1": model.List("Government / Public Sector Official", "Student")},
			want:    []model.ClusterTag{model.ClusterStudent, model.ClusterGovernment},
		},
		{
			name:    "founder profile",
			answers: model.AnswerSet{"B1": model.List("Startup Founder (Pre-revenue or Early Stage)")},
			want:    []model.ClusterTag{model.ClusterStartup},
		},
		{
			name:    "pre-revenue stage",
			answers: model.AnswerSet{"G2": model.Text("Pre-revenue / Idea stage")},
			want:    []model.ClusterTag{model.ClusterStartup},
		},
		{
			name:    "first year stage",
			answers: model.AnswerSet{"G2": model.Text("0-1 year (Startup stage)")},
			want:    []model.ClusterTag{model.ClusterStartup},
		},
		{
			name:    "early growth",
			answers: model.AnswerSet{"G2": model.Text("1-3 years (Early growth)")},
			want:    []model.ClusterTag{model.ClusterEarlyGrowth},
		},
		{
			name:    "scaling",
			answers: model.AnswerSet{"G2": model.Text("3-7 years (Scaling stage)")},
			want:    []model.ClusterTag{model.ClusterScaling},
		},
		{
			name:    "established",
			answers: model.AnswerSet{"G2": model.Text("7+ years (Established business)")},
			want:    []model.ClusterTag{model.ClusterScaling},
		},
		{
			name: "every facet",
			answers: model.AnswerSet{
				"B1": model.List(
					"Academic / Researcher",
					"Corporate Employer / HR Decision Maker",
					"Diaspora Professional",
					"Investor / Venture Capital / Angel Investor",
					"Government / Public Sector Official",
					"Student",
				),
				"G2": model.Text("1-3 years (Early growth)"),
			},
			want: []model.ClusterTag{
				model.ClusterStudent, model.ClusterEarlyGrowth, model.ClusterGovernment,
				model.ClusterInvestor, model.ClusterDiaspora, model.ClusterCorporate, model.ClusterAcademic,
			},
		},
		{
			name:    "scalar profile is ignored",
			answers: model.AnswerSet{"B1": model.Text("Student")},
			want:    []model.ClusterTag{model.ClusterGeneral},
		},
		{
			name:    "list business stage is ignored",
			answers: model.AnswerSet{"G2": model.List("3-7 years (Scaling stage)")},
			want:    []model.ClusterTag{model.ClusterGeneral},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.answers))
		})
	}
}
