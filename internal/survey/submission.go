package survey

import (
	"strings"

	"slintsurvey/internal/model"
)

// Optional identity questions copied into projections
const (
	PhoneQuestion    = "A3"
	LocationQuestion = "A4"
)

// Finalize checks readiness and builds the record handed to the response
// store: a private copy of the answers, the projection fields and the cluster
// tags. ID and CreatedAt are left for the store to assign.
func Finalize(answers model.AnswerSet) (*model.StoredResponse, error) {
	if err := Ready(answers); err != nil {
		return nil, err
	}

	profile := answers.List(ProfileQuestion)
	if profile == nil {
		profile = []string{}
	}

	return &model.StoredResponse{
		FullName:       strings.TrimSpace(answers.Scalar(FullNameQuestion)),
		Email:          strings.TrimSpace(answers.Scalar(EmailQuestion)),
		Phone:          scalarProjection(answers, PhoneQuestion),
		Location:       scalarProjection(answers, LocationQuestion),
		Profile:        profile,
		Cluster:        Classify(answers),
		FundingNeed:    scalarProjection(answers, FundingNeedQuestion),
		FundingRange:   scalarProjection(answers, FundingRangeQuestion),
		CardInterest:   scalarProjection(answers, CardInterestQuestion),
		TimeCommitment: scalarProjection(answers, TimeQuestion),
		Answers:        answers.Clone(),
	}, nil
}

// scalarProjection returns a pointer to a scalar answer, or nil when the
// question is unanswered or holds a list
func scalarProjection(answers model.AnswerSet, id string) *string {
	v, ok := answers[id]
	if !ok {
		return nil
	}
	s, scalar := v.Scalar()
	if !scalar {
		return nil
	}
	return &s
}
