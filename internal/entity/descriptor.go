// Package entity describes each hospital record type to the generic list,
// form and export machinery.
package entity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jwalitptl/hospital-dashboard/internal/apiclient"
	"github.com/jwalitptl/hospital-dashboard/internal/export"
	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
)

// Column maps a record to one displayed cell. The same columns feed the
// on-screen table and the exports.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Resource is the part of the API client a list page needs.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
	CanDelete() bool
}

// Descriptor is everything that differs between two collection pages.
type Descriptor[T model.Entity] struct {
	Key      string // session and template key, e.g. "patient"
	Title    string // list heading, e.g. "Patients"
	ListPath string
	BasePath string
	FileName string

	AddTitle       string
	EditTitle      string
	LoadingMessage string
	DeleteMessage  string
	LoadError      string

	Columns []Column[T]
	Details []Column[T]
	Label   func(T) string

	Resource Resource[T]
	Form     *form.Controller[T]
}

// Table renders items with the descriptor columns.
func (d *Descriptor[T]) Table(items []T) export.Table {
	t := export.Table{
		Title:   d.Title,
		Headers: make([]string, len(d.Columns)),
		Rows:    make([][]string, 0, len(items)),
	}
	for i, col := range d.Columns {
		t.Headers[i] = col.Header
	}
	for _, item := range items {
		t.Rows = append(t.Rows, d.Row(item))
	}
	return t
}

// Row renders one record with the descriptor columns.
func (d *Descriptor[T]) Row(item T) []string {
	row := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		row[i] = col.Value(item)
	}
	return row
}

// Field is one labelled value of the details dialog.
type Field struct {
	Label string
	Value string
}

// DetailFields renders item for the details dialog.
func (d *Descriptor[T]) DetailFields(item T) []Field {
	cols := d.Details
	if len(cols) == 0 {
		cols = d.Columns
	}
	out := make([]Field, 0, len(cols))
	for _, col := range cols {
		out = append(out, Field{Label: col.Header, Value: col.Value(item)})
	}
	return out
}

// Deps are the collaborators shared by every descriptor.
type Deps struct {
	API *apiclient.Client
	Log zerolog.Logger
	// ServiceBatimentID is sent as the building of a new service when the
	// form leaves it empty.
	ServiceBatimentID int64
}
