package model

import "time"

// Draft is an in-progress answer set for one respondent session
type Draft struct {
	ID        string    `json:"id"`
	Answers   AnswerSet `json:"answers"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DraftView is a draft plus the sections and questions currently visible for it
type DraftView struct {
	Draft
	Sections []SectionView `json:"sections"`
	Ready    bool          `json:"ready"`
}

// VisibilityRequest asks for visibility against an ad-hoc answer set
type VisibilityRequest struct {
	Answers AnswerSet `json:"answers"`
}

// SetAnswerRequest replaces one answer in a draft
type SetAnswerRequest struct {
	Value AnswerValue `json:"value"`
}
