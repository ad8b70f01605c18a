package entity

import (
	"context"

	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

func Patient(d Deps) *Descriptor[model.Patient] {
	api := d.API.Patients
	sections := recordOptions(d.API.Sections.List, func(s model.Section) string { return s.Nom })

	return &Descriptor[model.Patient]{
		Key:            "patient",
		Title:          "Patients",
		ListPath:       "/dashboard/patient",
		BasePath:       "/dashboard/patient",
		FileName:       "patients",
		AddTitle:       "Ajouter un nouveau patient",
		EditTitle:      "Modifier le patient",
		LoadingMessage: "Chargement des patients...",
		DeleteMessage:  "Voulez-vous supprimer ce patient ?",
		LoadError:      "Impossible de charger les patients",
		Columns: []Column[model.Patient]{
			{Header: "Nom", Value: func(p model.Patient) string { return p.Nom }},
			{Header: "Prénom", Value: func(p model.Patient) string { return p.Prenom }},
			{Header: "Situation médicale", Value: func(p model.Patient) string { return string(p.SituationMedicale) }},
			{Header: "Section", Value: model.Patient.SectionName},
		},
		Label:    func(p model.Patient) string { return p.Nom + " " + p.Prenom },
		Resource: api,
		Form: &form.Controller[model.Patient]{
			Entity: "patient",
			Fields: []form.Field{
				{Name: "nom", Label: "Nom", Kind: form.KindText, Required: true},
				{Name: "prenom", Label: "Prénom", Kind: form.KindText, Required: true},
				{
					Name: "situationMedicale", Label: "Situation médicale", Kind: form.KindSelect, Required: true,
					Placeholder: "Sélectionner une situation",
					Options:     enumOptions(model.SituationsMedicales, plain[model.SituationMedicale]),
				},
				{
					Name: "sectionId", Label: "Section", Kind: form.KindSelect, Required: true,
					Placeholder: "Sélectionner une section",
					Source:      "sections",
				},
			},
			Sources: map[string]form.Source{"sections": sections},
			Get:     api.Get,
			Fill: func(p model.Patient, f *form.Form) {
				f.Values.Set("nom", p.Nom)
				f.Values.Set("prenom", p.Prenom)
				f.Values.Set("situationMedicale", string(p.SituationMedicale))
				f.Values.Set("sectionId", idString(p.SectionID()))
			},
			Create: func(ctx context.Context, f *form.Form) error {
				_, _, err := d.API.CreatePatient(ctx, f.Int64("sectionId"), model.PatientInput{
					Nom:               f.Value("nom"),
					Prenom:            f.Value("prenom"),
					SituationMedicale: model.SituationMedicale(f.Value("situationMedicale")),
				})
				return err
			},
			Update: func(ctx context.Context, f *form.Form) error {
				return d.API.UpdatePatient(ctx, model.PatientUpdate{
					ID:                f.ID,
					Nom:               f.Value("nom"),
					Prenom:            f.Value("prenom"),
					SituationMedicale: model.SituationMedicale(f.Value("situationMedicale")),
					SectionID:         f.Int64("sectionId"),
				})
			},
			Log: d.Log,
		},
	}
}
