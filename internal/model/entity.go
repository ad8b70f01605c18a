package model

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entity is implemented by every record served by the hospital API.
type Entity interface {
	GetID() int64
	SearchValues() []string
}

// Ref is an embedded reference to another record by id.
type Ref struct {
	ID int64 `json:"id"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses a decimal record id. Zero and negative ids are rejected.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Label returns the display form of a lowercase enum value.
func Label(value string) string {
	if value == "" {
		return ""
	}
	return cases.Title(language.French).String(value)
}
