package form

import (
	"strconv"
	"strings"
)

// Kind selects how a field is rendered and read back.
type Kind string

const (
	KindText       Kind = "text"
	KindEmail      Kind = "email"
	KindTel        Kind = "tel"
	KindTextarea   Kind = "textarea"
	KindSelect     Kind = "select"
	KindCheckboxes Kind = "checkboxes"
)

// Option is one choice of a select or checkbox list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field describes one input of an entity form.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	// Options are fixed choices. Source names a reference list loaded from
	// the API instead.
	Options []Option
	Source  string
}

// IsMulti reports whether the field holds a set of ids.
func (f Field) IsMulti() bool {
	return f.Kind == KindCheckboxes
}

// Selection is an ordered set of ids edited through checkbox toggles.
type Selection struct {
	IDs []int64 `json:"ids"`
}

// Toggle inserts id when checked and it is absent, and removes it by value
// when unchecked. Duplicates never accumulate.
func (s *Selection) Toggle(id int64, checked bool) {
	idx := s.index(id)
	switch {
	case checked && idx < 0:
		s.IDs = append(s.IDs, id)
	case !checked && idx >= 0:
		s.IDs = append(s.IDs[:idx:idx], s.IDs[idx+1:]...)
	}
}

// Replace rebuilds the set from posted checkbox values, in posted order.
// Values that are not ids are skipped.
func (s *Selection) Replace(values []string) {
	s.IDs = nil
	for _, v := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		s.Toggle(id, true)
	}
}

func (s Selection) Has(id int64) bool {
	return s.index(id) >= 0
}

func (s Selection) index(id int64) int {
	for i, v := range s.IDs {
		if v == id {
			return i
		}
	}
	return -1
}
