package entity

import (
	"context"

	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

func Section(d Deps) *Descriptor[model.Section] {
	api := d.API.Sections
	doctors := recordOptions(d.API.Doctors, model.Personnel.FullName)

	input := func(f *form.Form) model.SectionInput {
		return model.SectionInput{
			Nom:         f.Value("nom"),
			Description: f.Value("description"),
		}
	}

	return &Descriptor[model.Section]{
		Key:            "sections",
		Title:          "Sections",
		ListPath:       "/dashboard/sections",
		BasePath:       "/dashboard/sections",
		FileName:       "sections",
		AddTitle:       "Ajouter une nouvelle section",
		EditTitle:      "Modifier la section",
		LoadingMessage: "Chargement des sections...",
		DeleteMessage:  "Voulez-vous supprimer cette section ?",
		LoadError:      "Impossible de charger les sections",
		Columns: []Column[model.Section]{
			{Header: "Section", Value: func(s model.Section) string { return s.Nom }},
			{Header: "Description", Value: func(s model.Section) string { return s.Description }},
			{Header: "Affecté à", Value: model.Section.AssignedTo},
		},
		Label:    func(s model.Section) string { return s.Nom },
		Resource: api,
		Form: &form.Controller[model.Section]{
			Entity: "sections",
			Fields: []form.Field{
				{Name: "nom", Label: "Section", Kind: form.KindText, Required: true},
				{Name: "description", Label: "Description", Kind: form.KindTextarea},
				{Name: "personnels", Label: "Médecins affectés", Kind: form.KindCheckboxes, Source: "doctors"},
			},
			Sources: map[string]form.Source{"doctors": doctors},
			Get:     api.Get,
			Fill: func(s model.Section, f *form.Form) {
				f.Values.Set("nom", s.Nom)
				f.Values.Set("description", s.Description)
				sel := f.Selection("personnels")
				for _, id := range s.PersonnelIDs() {
					sel.Toggle(id, true)
				}
			},
			Create: func(ctx context.Context, f *form.Form) error {
				_, _, err := d.API.CreateSection(ctx, input(f), f.Selection("personnels").IDs)
				return err
			},
			Update: func(ctx context.Context, f *form.Form) error {
				return d.API.UpdateSection(ctx, f.ID, input(f), f.Selection("personnels").IDs)
			},
			Log: d.Log,
		},
	}
}
