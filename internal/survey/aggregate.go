package survey

import (
	"sort"
	"time"

	"slintsurvey/internal/model"
)

// DashboardChartSize is the number of rows kept for each dashboard chart
const DashboardChartSize = 8

// CountsByOption builds the frequency table of one question across answer
// sets. List answers count once per member. Absent and empty answers are
// skipped. Rows are ordered by descending count; equal counts keep the order
// in which their labels were first seen.
func CountsByOption(responses []model.AnswerSet, questionID string) []model.OptionCount {
	t := newTally()
	for _, answers := range responses {
		v, ok := answers[questionID]
		if !ok {
			continue
		}
		if v.IsList() {
			for _, item := range v.Items() {
				t.add(item)
			}
			continue
		}
		s, _ := v.Scalar()
		t.add(s)
	}
	return t.sorted()
}

// AnsweredCount returns how many answer sets hold a non-blank answer for questionID
func AnsweredCount(responses []model.AnswerSet, questionID string) int {
	n := 0
	for _, answers := range responses {
		if v, ok := answers[questionID]; ok && !v.IsBlank() {
			n++
		}
	}
	return n
}

// TopN truncates a count table to its first n rows; n <= 0 keeps everything
func TopN(counts []model.OptionCount, n int) []model.OptionCount {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}

// CountClusters counts responses per cluster tag with the same ordering rule
// as CountsByOption
func CountClusters(clusters [][]model.ClusterTag) []model.ClusterCount {
	t := newTally()
	for _, tags := range clusters {
		for _, tag := range tags {
			t.add(string(tag))
		}
	}
	rows := t.sorted()
	out := make([]model.ClusterCount, len(rows))
	for i, r := range rows {
		out[i] = model.ClusterCount{Tag: model.ClusterTag(r.Label), Count: r.Count}
	}
	return out
}

// Summarize computes the admin dashboard from stored responses. Chart counts
// are read from the raw answers; the headline figures use the projections.
func Summarize(responses []*model.StoredResponse, now time.Time) model.DashboardSummary {
	answers := make([]model.AnswerSet, 0, len(responses))
	clusters := make([][]model.ClusterTag, 0, len(responses))
	sum := model.DashboardSummary{TotalResponses: len(responses), GeneratedAt: now}

	for _, r := range responses {
		answers = append(answers, r.Answers)
		clusters = append(clusters, r.Cluster)
		if r.FundingNeed != nil && (*r.FundingNeed == "Yes" || *r.FundingNeed == "Possibly within 12 months") {
			sum.FundingNeedCount++
		}
		for _, p := range r.Profile {
			if p == ProfileGovernment {
				sum.GovernmentRespondents++
				break
			}
		}
	}

	sum.Clusters = CountClusters(clusters)
	sum.UniqueClusters = len(sum.Clusters)
	sum.Profiles = TopN(CountsByOption(answers, ProfileQuestion), DashboardChartSize)
	sum.Priorities = TopN(CountsByOption(answers, PriorityQuestion), DashboardChartSize)
	sum.Constraints = TopN(CountsByOption(answers, ConstraintQuestion), DashboardChartSize)
	return sum
}

// tally counts labels and remembers first-seen order
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(label string) {
	if label == "" {
		return
	}
	if _, seen := t.counts[label]; !seen {
		t.order = append(t.order, label)
	}
	t.counts[label]++
}

func (t *tally) sorted() []model.OptionCount {
	out := make([]model.OptionCount, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, model.OptionCount{Label: label, Count: t.counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
