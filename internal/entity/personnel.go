package entity

import (
	"context"

	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

func personnelInput(f *form.Form) model.PersonnelInput {
	return model.PersonnelInput{
		Nom:       f.Value("nom"),
		Prenom:    f.Value("prenom"),
		Email:     f.Value("email"),
		Telephone: f.Value("telephone"),
		Fonction:  model.Fonction(f.Value("fonction")),
	}
}

// Personnel describes staff members. Their list is the dashboard home page.
func Personnel(d Deps) *Descriptor[model.Personnel] {
	api := d.API.Personnels

	return &Descriptor[model.Personnel]{
		Key:            "personnel",
		Title:          "Personnel",
		ListPath:       "/dashboard",
		BasePath:       "/dashboard/personnel",
		FileName:       "personnel",
		AddTitle:       "Ajouter un nouveau personnel",
		EditTitle:      "Modifier le personnel",
		LoadingMessage: "Chargement du personnel...",
		DeleteMessage:  "Voulez-vous supprimer ce personnel ?",
		LoadError:      "Impossible de charger le personnel",
		Columns: []Column[model.Personnel]{
			{Header: "Identifiant", Value: func(p model.Personnel) string { return idString(p.ID) }},
			{Header: "Nom", Value: func(p model.Personnel) string { return p.Nom }},
			{Header: "Prénom", Value: func(p model.Personnel) string { return p.Prenom }},
			{Header: "Email", Value: func(p model.Personnel) string { return p.Email }},
			{Header: "Téléphone", Value: func(p model.Personnel) string { return p.Telephone }},
			{Header: "Fonction", Value: func(p model.Personnel) string { return string(p.Fonction) }},
		},
		Label:    model.Personnel.FullName,
		Resource: api,
		Form: &form.Controller[model.Personnel]{
			Entity: "personnel",
			Fields: []form.Field{
				{Name: "nom", Label: "Nom", Kind: form.KindText, Required: true},
				{Name: "prenom", Label: "Prénom", Kind: form.KindText, Required: true},
				{Name: "email", Label: "Email", Kind: form.KindEmail, Required: true},
				{Name: "telephone", Label: "Téléphone", Kind: form.KindTel, Required: true},
				{
					Name: "fonction", Label: "Fonction", Kind: form.KindSelect, Required: true,
					Placeholder: "Sélectionner une fonction",
					Options:     enumOptions(model.Fonctions, plain[model.Fonction]),
				},
			},
			Get: api.Get,
			Fill: func(p model.Personnel, f *form.Form) {
				f.Values.Set("nom", p.Nom)
				f.Values.Set("prenom", p.Prenom)
				f.Values.Set("email", p.Email)
				f.Values.Set("telephone", p.Telephone)
				f.Values.Set("fonction", string(p.Fonction))
			},
			Create: func(ctx context.Context, f *form.Form) error {
				_, _, err := api.Create(ctx, personnelInput(f), nil)
				return err
			},
			Update: func(ctx context.Context, f *form.Form) error {
				in := personnelInput(f)
				in.ID = f.ID
				return api.Update(ctx, f.ID, in, nil)
			},
			Log: d.Log,
		},
	}
}
