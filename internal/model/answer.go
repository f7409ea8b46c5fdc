package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AnswerValue is either a single string or an ordered list of strings.
// The zero value is an empty scalar.
type AnswerValue struct {
	text  string
	items []string
	list  bool
}

// Text builds a scalar answer
func Text(s string) AnswerValue {
	return AnswerValue{text: s}
}

// List builds a multi-choice answer; the items are copied
func List(items ...string) AnswerValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return AnswerValue{items: cp, list: true}
}

// IsList reports whether the value is a list answer
func (v AnswerValue) IsList() bool {
	return v.list
}

// Scalar returns the string and true for scalar answers
func (v AnswerValue) Scalar() (string, bool) {
	if v.list {
		return "", false
	}
	return v.text, true
}

// Items returns a copy of the list, or nil for scalar answers
func (v AnswerValue) Items() []string {
	if !v.list {
		return nil
	}
	cp := make([]string, len(v.items))
	copy(cp, v.items)
	return cp
}

// IsBlank is true for an empty string or an empty list
func (v AnswerValue) IsBlank() bool {
	if v.list {
		return len(v.items) == 0
	}
	return v.text == ""
}

// Equal compares kind and content
func (v AnswerValue) Equal(o AnswerValue) bool {
	if v.list != o.list {
		return false
	}
	if !v.list {
		return v.text == o.text
	}
	if len(v.items) != len(o.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// Contains reports whether a list answer contains s
func (v AnswerValue) Contains(s string) bool {
	for _, item := range v.items {
		if item == s {
			return true
		}
	}
	return false
}

func (v AnswerValue) String() string {
	if v.list {
		return fmt.Sprint(v.items)
	}
	return v.text
}

// MarshalJSON encodes scalars as strings and lists as arrays
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.list {
		if v.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.items)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts a string or an array of strings
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("answer must be a string or an array of strings")
	}
	*v = List(items...)
	return nil
}

// MarshalBSONValue stores the answer as a BSON string or array
func (v AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if v.list {
		items := v.items
		if items == nil {
			items = []string{}
		}
		return bson.MarshalValue(items)
	}
	return bson.MarshalValue(v.text)
}

// UnmarshalBSONValue reads a BSON string or array
func (v *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*v = Text(raw.StringValue())
		return nil
	case bsontype.Array:
		var items []string
		if err := raw.Unmarshal(&items); err != nil {
			return err
		}
		*v = List(items...)
		return nil
	}
	return fmt.Errorf("unsupported answer type %s", t)
}

// AnswerSet maps question id to answer; a missing key means unanswered
type AnswerSet map[string]AnswerValue

// Get returns the answer for id
func (a AnswerSet) Get(id string) (AnswerValue, bool) {
	v, ok := a[id]
	return v, ok
}

// Scalar returns the scalar answer for id, or "" when absent or a list
func (a AnswerSet) Scalar(id string) string {
	s, _ := a[id].Scalar()
	return s
}

// List returns the list answer for id, or nil when absent or scalar
func (a AnswerSet) List(id string) []string {
	return a[id].Items()
}

// Clone returns a deep copy
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		if v.list {
			out[k] = List(v.items...)
		} else {
			out[k] = v
		}
	}
	return out
}
