package model

import "strings"

// Fonctionnalite is the purpose of a building. Values are persisted lowercase.
type Fonctionnalite string

const (
	FonctionnaliteUrgence        Fonctionnalite = "urgence"
	FonctionnaliteChirurgie      Fonctionnalite = "chirurgie"
	FonctionnaliteRadiologie     Fonctionnalite = "radiologie"
	FonctionnaliteAdministration Fonctionnalite = "administration"
)

var Fonctionnalites = []Fonctionnalite{
	FonctionnaliteUrgence,
	FonctionnaliteChirurgie,
	FonctionnaliteRadiologie,
	FonctionnaliteAdministration,
}

// NormalizeFonctionnalite lowercases a building purpose before it is persisted.
func NormalizeFonctionnalite(v string) Fonctionnalite {
	return Fonctionnalite(strings.ToLower(strings.TrimSpace(v)))
}

func (f Fonctionnalite) Label() string {
	return Label(string(f))
}

type Batiment struct {
	ID             int64          `json:"id"`
	Nom            string         `json:"nom"`
	Taille         string         `json:"taille"`
	Emplacement    string         `json:"emplacement"`
	Fonctionnalite Fonctionnalite `json:"fonctionnalite"`
	Description    string         `json:"description"`
}

func (b Batiment) GetID() int64 { return b.ID }

func (b Batiment) SearchValues() []string {
	return []string{b.Nom, b.Taille, b.Emplacement, string(b.Fonctionnalite), b.Description}
}

type BatimentInput struct {
	ID             int64          `json:"id,omitempty"`
	Nom            string         `json:"nom"`
	Taille         string         `json:"taille"`
	Emplacement    string         `json:"emplacement"`
	Fonctionnalite Fonctionnalite `json:"fonctionnalite"`
	Description    string         `json:"description"`
}
