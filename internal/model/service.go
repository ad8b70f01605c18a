package model

type Service struct {
	ID          int64  `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description"`
	Batiment    *Ref   `json:"batiment,omitempty"`
}

func (s Service) GetID() int64 { return s.ID }

func (s Service) SearchValues() []string {
	return []string{s.Nom, s.Description}
}

// BatimentID is zero when the service is not attached to a building.
func (s Service) BatimentID() int64 {
	if s.Batiment == nil {
		return 0
	}
	return s.Batiment.ID
}

type ServiceInput struct {
	ID          int64  `json:"id,omitempty"`
	Nom         string `json:"nom"`
	Description string `json:"description"`
	Batiment    Ref    `json:"batiment"`
}
