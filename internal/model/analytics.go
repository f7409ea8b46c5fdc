package model

import "time"

// OptionCount is one row of a frequency table
type OptionCount struct {
	Label string `json:"name"`
	Count int    `json:"value"`
}

// ClusterCount is the number of responses carrying a cluster tag
type ClusterCount struct {
	Tag   ClusterTag `json:"tag"`
	Count int        `json:"count"`
}

// DashboardSummary is the admin dashboard data computed from all stored responses
type DashboardSummary struct {
	TotalResponses        int            `json:"totalResponses"`
	FundingNeedCount      int            `json:"fundingNeedCount"`      // G6 is Yes or within 12 months
	GovernmentRespondents int            `json:"governmentRespondents"` // B1 contains the government option
	UniqueClusters        int            `json:"uniqueClusters"`
	Clusters              []ClusterCount `json:"clusters"`

	// Top option counts for the dashboard charts
	Profiles    []OptionCount `json:"profiles"`    // B1
	Priorities  []OptionCount `json:"priorities"`  // D1
	Constraints []OptionCount `json:"constraints"` // Q1

	GeneratedAt time.Time `json:"generatedAt"`
}

// QuestionCounts is the count table for a single question
type QuestionCounts struct {
	QuestionID string        `json:"questionId"`
	Prompt     string        `json:"prompt"`
	Answered   int           `json:"answered"` // Responses with a non-blank answer
	Counts     []OptionCount `json:"counts"`
}
