package entity

import (
	"context"

	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

func batimentInput(f *form.Form) model.BatimentInput {
	return model.BatimentInput{
		Nom:            f.Value("nom"),
		Taille:         f.Value("taille"),
		Emplacement:    f.Value("emplacement"),
		Fonctionnalite: model.NormalizeFonctionnalite(f.Value("fonctionnalite")),
		Description:    f.Value("description"),
	}
}

func Batiment(d Deps) *Descriptor[model.Batiment] {
	api := d.API.Batiments

	return &Descriptor[model.Batiment]{
		Key:            "batiment",
		Title:          "Bâtiments",
		ListPath:       "/dashboard/batiment",
		BasePath:       "/dashboard/batiment",
		FileName:       "batiments",
		AddTitle:       "Ajouter un nouveau bâtiment",
		EditTitle:      "Modifier le bâtiment",
		LoadingMessage: "Chargement des bâtiments...",
		DeleteMessage:  "Voulez-vous supprimer ce bâtiment ?",
		LoadError:      "Impossible de charger les bâtiments",
		Columns: []Column[model.Batiment]{
			{Header: "Bâtiment", Value: func(b model.Batiment) string { return b.Nom }},
			{Header: "Taille", Value: func(b model.Batiment) string { return b.Taille }},
			{Header: "Emplacement", Value: func(b model.Batiment) string { return b.Emplacement }},
			{Header: "Fonctionnalité", Value: func(b model.Batiment) string { return b.Fonctionnalite.Label() }},
			{Header: "Description", Value: func(b model.Batiment) string { return b.Description }},
		},
		Label:    func(b model.Batiment) string { return b.Nom },
		Resource: api,
		Form: &form.Controller[model.Batiment]{
			Entity: "batiment",
			Fields: []form.Field{
				{Name: "nom", Label: "Bâtiment", Kind: form.KindText, Required: true},
				{Name: "taille", Label: "Taille", Kind: form.KindText, Required: true},
				{Name: "emplacement", Label: "Emplacement", Kind: form.KindText, Required: true},
				{
					Name: "fonctionnalite", Label: "Fonctionnalité", Kind: form.KindSelect, Required: true,
					Placeholder: "Sélectionner une fonctionnalité",
					Options:     enumOptions(model.Fonctionnalites, model.Fonctionnalite.Label),
				},
				{Name: "description", Label: "Description", Kind: form.KindTextarea},
			},
			Get: api.Get,
			Fill: func(b model.Batiment, f *form.Form) {
				f.Values.Set("nom", b.Nom)
				f.Values.Set("taille", b.Taille)
				f.Values.Set("emplacement", b.Emplacement)
				f.Values.Set("fonctionnalite", string(model.NormalizeFonctionnalite(string(b.Fonctionnalite))))
				f.Values.Set("description", b.Description)
			},
			Create: func(ctx context.Context, f *form.Form) error {
				_, _, err := api.Create(ctx, batimentInput(f), nil)
				return err
			},
			Update: func(ctx context.Context, f *form.Form) error {
				in := batimentInput(f)
				in.ID = f.ID
				return api.Update(ctx, f.ID, in, nil)
			},
			Log: d.Log,
		},
	}
}
