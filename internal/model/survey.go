package model

// SectionPredicate limits a section to respondents whose multi-choice answer
// to Field contains at least one of AnyOf
type SectionPredicate struct {
	Field string   `json:"field" yaml:"field"`
	AnyOf []string `json:"anyOf" yaml:"anyOf"`
}

// Section is a titled, ordered group of questions
type Section struct {
	ID          string            `json:"id" yaml:"id"` // e.g., "A", "I"
	Title       string            `json:"title" yaml:"title"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"` // Display flag only
	Conditional *SectionPredicate `json:"conditional,omitempty" yaml:"conditional,omitempty"`
}

// SectionView is a section together with its questions, as served to clients
type SectionView struct {
	Section
	Questions []Question `json:"questions"`
}
