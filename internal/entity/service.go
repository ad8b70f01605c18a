package entity

import (
	"context"

	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

// Service describes hospital services. The API offers no delete for them.
func Service(d Deps) *Descriptor[model.Service] {
	api := d.API.Services
	batiments := recordOptions(d.API.Batiments.List, func(b model.Batiment) string { return b.Nom })

	input := func(f *form.Form) model.ServiceInput {
		batimentID := f.Int64("batimentId")
		if batimentID == 0 {
			batimentID = d.ServiceBatimentID
		}
		return model.ServiceInput{
			Nom:         f.Value("nom"),
			Description: f.Value("description"),
			Batiment:    model.Ref{ID: batimentID},
		}
	}

	return &Descriptor[model.Service]{
		Key:            "service",
		Title:          "Services",
		ListPath:       "/dashboard/service",
		BasePath:       "/dashboard/service",
		FileName:       "services",
		AddTitle:       "Ajouter un nouveau service",
		EditTitle:      "Modifier le service",
		LoadingMessage: "Chargement des services...",
		DeleteMessage:  "Voulez-vous supprimer ce service ?",
		LoadError:      "Impossible de charger les services",
		Columns: []Column[model.Service]{
			{Header: "Service", Value: func(s model.Service) string { return s.Nom }},
			{Header: "Description", Value: func(s model.Service) string { return s.Description }},
		},
		Label:    func(s model.Service) string { return s.Nom },
		Resource: api,
		Form: &form.Controller[model.Service]{
			Entity: "service",
			Fields: []form.Field{
				{Name: "nom", Label: "Service", Kind: form.KindText, Required: true},
				{Name: "description", Label: "Description", Kind: form.KindTextarea},
				{
					Name: "batimentId", Label: "Bâtiment", Kind: form.KindSelect,
					Placeholder: "Sélectionner un bâtiment",
					Source:      "batiments",
				},
			},
			Sources: map[string]form.Source{"batiments": batiments},
			Get:     api.Get,
			Fill: func(s model.Service, f *form.Form) {
				f.Values.Set("nom", s.Nom)
				f.Values.Set("description", s.Description)
				f.Values.Set("batimentId", idString(s.BatimentID()))
			},
			Create: func(ctx context.Context, f *form.Form) error {
				_, _, err := api.Create(ctx, input(f), nil)
				return err
			},
			Update: func(ctx context.Context, f *form.Form) error {
				in := input(f)
				in.ID = f.ID
				return api.Update(ctx, f.ID, in, nil)
			},
			Log: d.Log,
		},
	}
}
