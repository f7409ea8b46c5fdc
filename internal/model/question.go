package model

// QuestionKind defines how a question is answered
type QuestionKind string

const (
	KindText     QuestionKind = "text"     // Single-line text
	KindEmail    QuestionKind = "email"    // Email-formatted text
	KindTextarea QuestionKind = "textarea" // Multi-line text
	KindRadio    QuestionKind = "radio"    // Single choice
	KindCheckbox QuestionKind = "checkbox" // Multiple choice
)

// Valid reports whether k is one of the known kinds
func (k QuestionKind) Valid() bool {
	switch k {
	case KindText, KindEmail, KindTextarea, KindRadio, KindCheckbox:
		return true
	}
	return false
}

// IsChoice is true for kinds that draw their answer from an option list
func (k QuestionKind) IsChoice() bool {
	switch k {
	case KindRadio, KindCheckbox:
		return true
	case KindText, KindEmail, KindTextarea:
		return false
	}
	return false
}

// IsMulti is true for kinds whose answer is a list of options
func (k QuestionKind) IsMulti() bool {
	return k == KindCheckbox
}

// Condition gates a question on an earlier question's scalar answer.
// Exactly one of Value or Values is set.
type Condition struct {
	Field  string   `json:"field" yaml:"field" bson:"field"`
	Value  string   `json:"value,omitempty" yaml:"value,omitempty" bson:"value,omitempty"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty" bson:"values,omitempty"`
}

// Question is a single data-collection unit in the catalog
type Question struct {
	ID         string       `json:"id" yaml:"id"` // e.g., "A1", "G2"
	Text       string       `json:"text" yaml:"text"`
	Kind       QuestionKind `json:"type" yaml:"type"`
	Options    []string     `json:"options,omitempty" yaml:"options,omitempty"` // Choice kinds only
	Required   bool         `json:"required" yaml:"required,omitempty"`
	Limit      int          `json:"limit,omitempty" yaml:"limit,omitempty"` // Checkbox only, 0 = unlimited
	HelperText string       `json:"helperText,omitempty" yaml:"helperText,omitempty"`
	Condition  *Condition   `json:"condition,omitempty" yaml:"condition,omitempty"`
}

// HasOption reports whether label is one of the question's options
func (q Question) HasOption(label string) bool {
	for _, o := range q.Options {
		if o == label {
			return true
		}
	}
	return false
}
