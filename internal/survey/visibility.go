package survey

import "slintsurvey/internal/model"

// VisibleSections returns the sections reachable for the given answers, in
// declaration order. Sections without a predicate are always reachable.
func (s *Schema) VisibleSections(answers model.AnswerSet) []model.Section {
	out := make([]model.Section, 0, len(s.sections))
	for _, sec := range s.sections {
		if sectionReachable(sec, answers) {
			out = append(out, cloneSection(sec))
		}
	}
	return out
}

// IsSectionVisible reports whether a section is reachable; unknown ids are not
func (s *Schema) IsSectionVisible(sectionID string, answers model.AnswerSet) bool {
	sec, ok := s.Section(sectionID)
	if !ok {
		return false
	}
	return sectionReachable(sec, answers)
}

// VisibleQuestions returns the questions of a section that are shown for the
// given answers. Both the section predicate and each question condition apply.
func (s *Schema) VisibleQuestions(sectionID string, answers model.AnswerSet) []model.Question {
	if !s.IsSectionVisible(sectionID, answers) {
		return nil
	}
	var out []model.Question
	for _, q := range s.questions[sectionID] {
		if IsQuestionVisible(q, answers) {
			out = append(out, cloneQuestion(q))
		}
	}
	return out
}

// VisibleViews returns every reachable section with its shown questions
func (s *Schema) VisibleViews(answers model.AnswerSet) []model.SectionView {
	var out []model.SectionView
	for _, sec := range s.VisibleSections(answers) {
		out = append(out, model.SectionView{Section: sec, Questions: s.VisibleQuestions(sec.ID, answers)})
	}
	return out
}

// IsQuestionVisible evaluates a question's own condition. Only a scalar
// answer can satisfy a condition; absent and list answers never do.
func IsQuestionVisible(q model.Question, answers model.AnswerSet) bool {
	c := q.Condition
	if c == nil {
		return true
	}
	v, ok := answers[c.Field]
	if !ok {
		return false
	}
	current, scalar := v.Scalar()
	if !scalar {
		return false
	}
	if c.Value != "" {
		return current == c.Value
	}
	for _, accepted := range c.Values {
		if current == accepted {
			return true
		}
	}
	return false
}

func sectionReachable(sec model.Section, answers model.AnswerSet) bool {
	p := sec.Conditional
	if p == nil {
		return true
	}
	selected := answers[p.Field]
	if !selected.IsList() {
		return false
	}
	for _, v := range p.AnyOf {
		if selected.Contains(v) {
			return true
		}
	}
	return false
}
