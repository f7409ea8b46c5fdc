// Package survey holds the survey catalog and the pure rules evaluated
// against answer sets: visibility, submission readiness, clustering and
// frequency aggregation.
package survey

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"slintsurvey/internal/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogFile is the on-disk shape of a catalog
type catalogFile struct {
	Title    string           `yaml:"title"`
	Sections []catalogSection `yaml:"sections"`
}

type catalogSection struct {
	model.Section `yaml:",inline"`
	Questions     []model.Question `yaml:"questions"`
}

// Schema is a validated, read-only survey catalog
type Schema struct {
	title     string
	sections  []model.Section
	questions map[string][]model.Question // section id -> questions
	byID      map[string]model.Question
	sectionOf map[string]string // question id -> section id
	order     []string          // question ids in declaration order
}

// SchemaError describes one catalog invariant violation
type SchemaError struct {
	Section  string
	Question string
	Reason   string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Question != "":
		return fmt.Sprintf("section %s question %s: %s", e.Section, e.Question, e.Reason)
	case e.Section != "":
		return fmt.Sprintf("section %s: %s", e.Section, e.Reason)
	}
	return e.Reason
}

// Default loads the embedded SLINT catalog
func Default() (*Schema, error) {
	return Load(defaultCatalog)
}

// MustDefault loads the embedded catalog and panics if it is invalid
func MustDefault() *Schema {
	s, err := Default()
	if err != nil {
		panic(fmt.Sprintf("survey: invalid embedded catalog: %v", err))
	}
	return s
}

// Load parses a YAML catalog and validates it
func Load(data []byte) (*Schema, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return build(f)
}

// New builds a schema from sections and their questions, keyed by section id
func New(title string, sections []model.Section, questions map[string][]model.Question) (*Schema, error) {
	f := catalogFile{Title: title}
	for _, s := range sections {
		f.Sections = append(f.Sections, catalogSection{Section: s, Questions: questions[s.ID]})
	}
	return build(f)
}

func build(f catalogFile) (*Schema, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	s := &Schema{
		title:     f.Title,
		questions: make(map[string][]model.Question, len(f.Sections)),
		byID:      make(map[string]model.Question),
		sectionOf: make(map[string]string),
	}
	for _, cs := range f.Sections {
		s.sections = append(s.sections, cloneSection(cs.Section))
		qs := make([]model.Question, 0, len(cs.Questions))
		for _, q := range cs.Questions {
			q = cloneQuestion(q)
			qs = append(qs, q)
			s.byID[q.ID] = q
			s.sectionOf[q.ID] = cs.ID
			s.order = append(s.order, q.ID)
		}
		s.questions[cs.ID] = qs
	}
	return s, nil
}

func validate(f catalogFile) error {
	var errs []error
	fail := func(section, question, format string, args ...any) {
		errs = append(errs, &SchemaError{Section: section, Question: question, Reason: fmt.Sprintf(format, args...)})
	}

	if len(f.Sections) == 0 {
		fail("", "", "catalog has no sections")
	}

	sectionSeen := make(map[string]bool)
	declared := make(map[string]model.Question)
	for _, cs := range f.Sections {
		if cs.ID == "" {
			fail("", "", "section with empty id")
		} else if sectionSeen[cs.ID] {
			fail(cs.ID, "", "duplicate section id")
		}
		sectionSeen[cs.ID] = true

		for _, q := range cs.Questions {
			if q.ID == "" {
				fail(cs.ID, "", "question with empty id")
				continue
			}
			if _, dup := declared[q.ID]; dup {
				fail(cs.ID, q.ID, "duplicate question id")
				continue
			}
			for _, reason := range questionProblems(q, declared) {
				fail(cs.ID, q.ID, "%s", reason)
			}
			declared[q.ID] = q
		}
	}

	// Section predicates may reference any question in the catalog, since a
	// section gate is evaluated independently of declaration order.
	for _, cs := range f.Sections {
		p := cs.Conditional
		if p == nil {
			continue
		}
		target, ok := declared[p.Field]
		switch {
		case !ok:
			fail(cs.ID, "", "conditional references unknown question %q", p.Field)
		case !target.Kind.IsMulti():
			fail(cs.ID, "", "conditional question %s is %s, want checkbox", p.Field, target.Kind)
		case len(p.AnyOf) == 0:
			fail(cs.ID, "", "conditional has no accepted values")
		default:
			for _, v := range p.AnyOf {
				if !target.HasOption(v) {
					fail(cs.ID, "", "conditional value %q is not an option of %s", v, p.Field)
				}
			}
		}
	}

	return errors.Join(errs...)
}

// questionProblems checks one question against the questions declared before it
func questionProblems(q model.Question, declared map[string]model.Question) []string {
	var out []string

	switch q.Kind {
	case model.KindRadio, model.KindCheckbox:
		if len(q.Options) == 0 {
			out = append(out, fmt.Sprintf("%s question has no options", q.Kind))
		}
	case model.KindText, model.KindEmail, model.KindTextarea:
		if len(q.Options) > 0 {
			out = append(out, fmt.Sprintf("%s question must not have options", q.Kind))
		}
	default:
		out = append(out, fmt.Sprintf("unknown question type %q", q.Kind))
	}

	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			out = append(out, fmt.Sprintf("duplicate option %q", o))
		}
		seen[o] = true
	}

	switch {
	case q.Limit < 0:
		out = append(out, "limit must not be negative")
	case q.Limit > 0 && !q.Kind.IsMulti():
		out = append(out, "limit is only allowed on checkbox questions")
	case q.Limit > len(q.Options) && len(q.Options) > 0:
		out = append(out, fmt.Sprintf("limit %d exceeds %d options", q.Limit, len(q.Options)))
	}

	if c := q.Condition; c != nil {
		out = append(out, conditionProblems(q, c, declared)...)
	}
	return out
}

func conditionProblems(q model.Question, c *model.Condition, declared map[string]model.Question) []string {
	var out []string
	hasValue, hasValues := c.Value != "", len(c.Values) > 0
	if hasValue == hasValues {
		out = append(out, "condition needs exactly one of value or values")
	}

	if c.Field == q.ID {
		return append(out, "condition references itself")
	}
	ref, ok := declared[c.Field]
	if !ok {
		return append(out, fmt.Sprintf("condition references %q which is not declared earlier", c.Field))
	}
	if ref.Kind.IsMulti() {
		return append(out, fmt.Sprintf("condition references checkbox question %s", c.Field))
	}
	if ref.Kind.IsChoice() {
		expected := c.Values
		if hasValue {
			expected = []string{c.Value}
		}
		for _, v := range expected {
			if !ref.HasOption(v) {
				out = append(out, fmt.Sprintf("condition value %q is not an option of %s", v, c.Field))
			}
		}
	}
	return out
}

// Title returns the catalog title
func (s *Schema) Title() string {
	return s.title
}

// Sections returns every section in declaration order
func (s *Schema) Sections() []model.Section {
	out := make([]model.Section, len(s.sections))
	for i, sec := range s.sections {
		out[i] = cloneSection(sec)
	}
	return out
}

// Section returns the section with the given id
func (s *Schema) Section(id string) (model.Section, bool) {
	for _, sec := range s.sections {
		if sec.ID == id {
			return cloneSection(sec), true
		}
	}
	return model.Section{}, false
}

// Questions returns the ordered questions of a section, or nil for an unknown section
func (s *Schema) Questions(sectionID string) []model.Question {
	qs, ok := s.questions[sectionID]
	if !ok {
		return nil
	}
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		out[i] = cloneQuestion(q)
	}
	return out
}

// Question looks up a question by id
func (s *Schema) Question(id string) (model.Question, bool) {
	q, ok := s.byID[id]
	if !ok {
		return model.Question{}, false
	}
	return cloneQuestion(q), true
}

// SectionOf returns the id of the section that owns a question
func (s *Schema) SectionOf(questionID string) (string, bool) {
	id, ok := s.sectionOf[questionID]
	return id, ok
}

// AllQuestions returns every question in declaration order
func (s *Schema) AllQuestions() []model.Question {
	out := make([]model.Question, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneQuestion(s.byID[id]))
	}
	return out
}

// Views returns every section with its questions
func (s *Schema) Views() []model.SectionView {
	out := make([]model.SectionView, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, model.SectionView{Section: cloneSection(sec), Questions: s.Questions(sec.ID)})
	}
	return out
}

func cloneSection(sec model.Section) model.Section {
	if sec.Conditional != nil {
		p := *sec.Conditional
		p.AnyOf = append([]string(nil), p.AnyOf...)
		sec.Conditional = &p
	}
	return sec
}

func cloneQuestion(q model.Question) model.Question {
	q.Options = append([]string(nil), q.Options...)
	if q.Condition != nil {
		c := *q.Condition
		c.Values = append([]string(nil), c.Values...)
		q.Condition = &c
	}
	return q
}
