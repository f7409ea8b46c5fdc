package survey

import (
	"strings"

	"slintsurvey/internal/model"
)

// Question ids and option labels the classifier and dashboard read
const (
	ProfileQuestion       = "B1"
	BusinessStageQuestion = "G2"
	FundingNeedQuestion   = "G6"
	FundingRangeQuestion  = "G8"
	CardInterestQuestion  = "K5"
	TimeQuestion          = "N1"
	PriorityQuestion      = "D1"
	ConstraintQuestion    = "Q1"

	ProfileStudent    = "Student"
	ProfileFounder    = "Startup Founder (Pre-revenue or Early Stage)"
	ProfileGovernment = "Government / Public Sector Official"
	ProfileInvestor   = "Investor / Venture Capital / Angel Investor"
	ProfileDiaspora   = "Diaspora Professional"
	ProfileCorporate  = "Corporate Employer / HR Decision Maker"
	ProfileAcademic   = "Academic / Researcher"
)

type clusterRule struct {
	tag   model.ClusterTag
	match func(profile model.AnswerValue, stage string) bool
}

func hasProfile(option string) func(model.AnswerValue, string) bool {
	return func(profile model.AnswerValue, _ string) bool {
		return profile.Contains(option)
	}
}

func stageContains(markers ...string) func(model.AnswerValue, string) bool {
	return func(_ model.AnswerValue, stage string) bool {
		for _, m := range markers {
			if strings.Contains(stage, m) {
				return true
			}
		}
		return false
	}
}

// Evaluation order is also emission order.
// Business stage markers match by substring against the G2 option labels.
var clusterRules = []clusterRule{
	{model.ClusterStudent, hasProfile(ProfileStudent)},
	{model.ClusterStartup, func(p model.AnswerValue, stage string) bool {
		return p.Contains(ProfileFounder) || stageContains("Pre-revenue", "0-1")(p, stage)
	}},
	{model.ClusterEarlyGrowth, stageContains("1-3")},
	{model.ClusterScaling, stageContains("3-7", "7+")},
	{model.ClusterGovernment, hasProfile(ProfileGovernment)},
	{model.ClusterInvestor, hasProfile(ProfileInvestor)},
	{model.ClusterDiaspora, hasProfile(ProfileDiaspora)},
	{model.ClusterCorporate, hasProfile(ProfileCorporate)},
	{model.ClusterAcademic, hasProfile(ProfileAcademic)},
}

// Classify derives the cluster tags for a completed answer set. Tags are
// additive; General is returned alone when no other tag applies.
func Classify(answers model.AnswerSet) []model.ClusterTag {
	profile := answers[ProfileQuestion]
	if !profile.IsList() {
		profile = model.List()
	}
	stage := answers.Scalar(BusinessStageQuestion)

	var tags []model.ClusterTag
	for _, r := range clusterRules {
		if r.match(profile, stage) {
			tags = append(tags, r.tag)
		}
	}
	if len(tags) == 0 {
		tags = append(tags, model.ClusterGeneral)
	}
	return tags
}
