package model

import "strings"

type Section struct {
	ID          int64              `json:"id"`
	Nom         string             `json:"nom"`
	Description string             `json:"description"`
	Personnels  []PersonnelSummary `json:"personnels,omitempty"`
}

func (s Section) GetID() int64 { return s.ID }

func (s Section) SearchValues() []string {
	return []string{s.Nom, s.Description, s.AssignedTo()}
}

// AssignedTo lists the assigned staff as "nom prenom" joined by ", ".
func (s Section) AssignedTo() string {
	names := make([]string, 0, len(s.Personnels))
	for _, p := range s.Personnels {
		names = append(names, p.FullName())
	}
	return strings.Join(names, ", ")
}

// PersonnelIDs returns the ids of the assigned staff in order.
func (s Section) PersonnelIDs() []int64 {
	ids := make([]int64, 0, len(s.Personnels))
	for _, p := range s.Personnels {
		ids = append(ids, p.ID)
	}
	return ids
}

// SectionInput is the body sent on section create and update. Assigned
// staff travel as the personnelsIds query parameter.
type SectionInput struct {
	Nom         string `json:"nom"`
	Description string `json:"description"`
}
