package collection

import (
	"net/url"
	"strconv"

	"github.com/jwalitptl/hospital-dashboard/internal/entity"
	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/listview"
)

// ListView is the body of a list page.
type ListView struct {
	Key            string
	Title          string
	BasePath       string
	AddPath        string
	LoadingMessage string
	Search         string
	Size           int
	Sizes          []int
	Table          TableView
}

// RowView is one table row. ID is the stable row key.
type RowView struct {
	ID    int64
	Cells []string
}

// TableView is the htmx-swappable table region.
type TableView struct {
	BasePath   string
	Headers    []string
	Rows       []RowView
	Search     string
	Size       int
	Page       int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Links      []listview.Link
	CanDelete  bool
	ClearModal bool
}

// PageURL is the table request for page n with the current search and size.
func (t TableView) PageURL(n int) string {
	q := url.Values{}
	q.Set("q", t.Search)
	q.Set("size", strconv.Itoa(t.Size))
	q.Set("page", strconv.Itoa(n))
	return t.BasePath + "/table?" + q.Encode()
}

func (t TableView) PrevURL() string { return t.PageURL(t.Page - 1) }
func (t TableView) NextURL() string { return t.PageURL(t.Page + 1) }

// ExportURL downloads the filtered rows in format.
func (t TableView) ExportURL(format string) string {
	q := url.Values{}
	q.Set("q", t.Search)
	return t.BasePath + "/export/" + format + "?" + q.Encode()
}

// DetailsView is the body of the details dialog.
type DetailsView struct {
	Title    string
	Fields   []entity.Field
	EditPath string
}

// ConfirmView is the body of the delete confirmation dialog.
type ConfirmView struct {
	BasePath string
	Message  string
	Label    string
}

// FormView is the body of the add and edit pages.
type FormView struct {
	Title          string
	ListPath       string
	Action         string
	ToggleURL      string
	FormURL        string
	Loading        bool
	Failed         bool
	LoadingMessage string
	Fields         []FieldView
}

type FieldView struct {
	Name        string
	Label       string
	Kind        form.Kind
	Required    bool
	Placeholder string
	Value       string
	Options     []OptionView
}

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

func fieldViews(fields []form.Field, f *form.Form) []FieldView {
	out := make([]FieldView, 0, len(fields))
	for _, field := range fields {
		fv := FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Kind:        field.Kind,
			Required:    field.Required,
			Placeholder: field.Placeholder,
			Value:       f.Value(field.Name),
		}

		opts := field.Options
		if field.Source != "" {
			opts = f.Options[field.Source]
		}
		for _, o := range opts {
			ov := OptionView{Value: o.Value, Label: o.Label}
			if field.IsMulti() {
				id, err := strconv.ParseInt(o.Value, 10, 64)
				ov.Selected = err == nil && f.Selection(field.Name).Has(id)
			} else {
				ov.Selected = o.Value == fv.Value
			}
			fv.Options = append(fv.Options, ov)
		}
		out = append(out, fv)
	}
	return out
}
