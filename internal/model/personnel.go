package model

// Fonction is the role of a staff member.
type Fonction string

const (
	FonctionAdministrateur Fonction = "Administrateur"
	FonctionMedecin        Fonction = "Médecin"
	FonctionInfirmier      Fonction = "Infirmier"
	FonctionAgentDAide     Fonction = "Agent d'aide"
	FonctionDirecteur      Fonction = "Directeur"
)

// Fonctions lists the selectable roles in display order.
var Fonctions = []Fonction{
	FonctionAdministrateur,
	FonctionMedecin,
	FonctionInfirmier,
	FonctionAgentDAide,
	FonctionDirecteur,
}

type Personnel struct {
	ID        int64    `json:"id"`
	Nom       string   `json:"nom"`
	Prenom    string   `json:"prenom"`
	Email     string   `json:"email"`
	Telephone string   `json:"telephone"`
	Fonction  Fonction `json:"fonction"`
}

func (p Personnel) GetID() int64 { return p.ID }

func (p Personnel) SearchValues() []string {
	return []string{p.Nom, p.Prenom, p.Email, p.Telephone, string(p.Fonction)}
}

// FullName is the "nom prenom" form used wherever a staff member is listed.
func (p Personnel) FullName() string {
	return fullName(p.Nom, p.Prenom)
}

// PersonnelSummary is the shape of a staff member embedded in a section.
type PersonnelSummary struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
}

func (p PersonnelSummary) FullName() string {
	return fullName(p.Nom, p.Prenom)
}

func fullName(nom, prenom string) string {
	switch {
	case nom == "":
		return prenom
	case prenom == "":
		return nom
	}
	return nom + " " + prenom
}

// PersonnelInput is the body sent on personnel create and update.
type PersonnelInput struct {
	ID        int64    `json:"id,omitempty"`
	Nom       string   `json:"nom"`
	Prenom    string   `json:"prenom"`
	Email     string   `json:"email"`
	Telephone string   `json:"telephone"`
	Fonction  Fonction `json:"fonction"`
}
