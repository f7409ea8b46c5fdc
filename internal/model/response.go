package model

import "time"

// ClusterTag is a non-exclusive segmentation label derived from profile answers
type ClusterTag string

const (
	ClusterStudent     ClusterTag = "Student"
	ClusterStartup     ClusterTag = "Startup"
	ClusterEarlyGrowth ClusterTag = "Early Growth"
	ClusterScaling     ClusterTag = "Scaling"
	ClusterGovernment  ClusterTag = "Government"
	ClusterInvestor    ClusterTag = "Investor"
	ClusterDiaspora    ClusterTag = "Diaspora"
	ClusterCorporate   ClusterTag = "Corporate"
	ClusterAcademic    ClusterTag = "Academic"
	ClusterGeneral     ClusterTag = "General"
)

// StoredResponse is a finalized answer set plus its denormalized projections.
// ID and CreatedAt are owned by the repository.
type StoredResponse struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	FullName string       `json:"fullName" bson:"fullName"`
	Email    string       `json:"email" bson:"email"`
	Phone    *string      `json:"phone" bson:"phone"`
	Location *string      `json:"location" bson:"location"`
	Profile  []string     `json:"profile" bson:"profile"`
	Cluster  []ClusterTag `json:"cluster" bson:"cluster"`

	// Dashboard filters
	FundingNeed    *string `json:"fundingNeed" bson:"fundingNeed"`       // G6
	FundingRange   *string `json:"fundingRange" bson:"fundingRange"`     // G8
	CardInterest   *string `json:"cardInterest" bson:"cardInterest"`     // K5
	TimeCommitment *string `json:"timeCommitment" bson:"timeCommitment"` // N1

	Answers AnswerSet `json:"answers" bson:"answers"`
}

// HasCluster reports whether tag was assigned to the response
func (r *StoredResponse) HasCluster(tag ClusterTag) bool {
	for _, t := range r.Cluster {
		if t == tag {
			return true
		}
	}
	return false
}

// SubmitRequest is the request body for a direct submission
type SubmitRequest struct {
	Answers AnswerSet `json:"answers"`
}
