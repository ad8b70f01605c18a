package entity

import (
	"context"
	"strconv"

	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

func idString(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func enumOptions[E ~string](values []E, label func(E) string) []form.Option {
	out := make([]form.Option, 0, len(values))
	for _, v := range values {
		out = append(out, form.Option{Value: string(v), Label: label(v)})
	}
	return out
}

func plain[E ~string](v E) string { return string(v) }

// recordOptions turns a fetched collection into select choices.
func recordOptions[T model.Entity](list func(context.Context) ([]T, error), label func(T) string) form.Source {
	return func(ctx context.Context) ([]form.Option, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]form.Option, 0, len(items))
		for _, item := range items {
			out = append(out, form.Option{Value: idString(item.GetID()), Label: label(item)})
		}
		return out, nil
	}
}
