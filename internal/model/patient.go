package model

// SituationMedicale is the clinical status of a patient.
type SituationMedicale string

const (
	SituationStable       SituationMedicale = "Stable"
	SituationCritique     SituationMedicale = "Critique"
	SituationObservation  SituationMedicale = "En observation"
	SituationRemission    SituationMedicale = "En rémission"
	SituationEnTraitement SituationMedicale = "En traitement"
)

var SituationsMedicales = []SituationMedicale{
	SituationStable,
	SituationCritique,
	SituationObservation,
	SituationRemission,
	SituationEnTraitement,
}

// SectionRef is the section a patient is admitted to.
type SectionRef struct {
	ID  int64  `json:"id"`
	Nom string `json:"nom"`
}

type Patient struct {
	ID                int64             `json:"id"`
	Nom               string            `json:"nom"`
	Prenom            string            `json:"prenom"`
	SituationMedicale SituationMedicale `json:"situationMedicale"`
	Section           *SectionRef       `json:"section,omitempty"`
}

func (p Patient) GetID() int64 { return p.ID }

func (p Patient) SearchValues() []string {
	return []string{p.Nom, p.Prenom, string(p.SituationMedicale), p.SectionName()}
}

// SectionName is empty when the patient has no section.
func (p Patient) SectionName() string {
	if p.Section == nil {
		return ""
	}
	return p.Section.Nom
}

// SectionID is zero when the patient has no section.
func (p Patient) SectionID() int64 {
	if p.Section == nil {
		return 0
	}
	return p.Section.ID
}

// PatientInput is the body sent on patient create. The section travels
// as the sectionId query parameter.
type PatientInput struct {
	Nom               string            `json:"nom"`
	Prenom            string            `json:"prenom"`
	SituationMedicale SituationMedicale `json:"situationMedicale"`
}

// PatientUpdate is the body sent on patient update.
type PatientUpdate struct {
	ID                int64             `json:"id"`
	Nom               string            `json:"nom"`
	Prenom            string            `json:"prenom"`
	SituationMedicale SituationMedicale `json:"situationMedicale"`
	SectionID         int64             `json:"sectionId"`
}
