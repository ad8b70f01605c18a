// Package form drives the create and edit forms of every entity.
package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotReady = errors.New("form: not ready for submission")
	ErrMismatch = errors.New("form: submission does not match the open form")
)

// InvalidError lists the required fields left empty.
type InvalidError struct {
	Fields []string
}

func (e *InvalidError) Error() string {
	return "form: missing required fields: " + strings.Join(e.Fields, ", ")
}

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Form is the state of one open form. It is kept between requests.
type Form struct {
	Entity     string                `json:"entity"`
	Mode       Mode                  `json:"mode"`
	ID         int64                 `json:"id,omitempty"`
	Status     Status                `json:"status"`
	Values     url.Values            `json:"values"`
	Selections map[string]*Selection `json:"selections,omitempty"`
	Options    map[string][]Option   `json:"options,omitempty"`
}

// Value returns the current value of a single-valued field.
func (f *Form) Value(name string) string {
	return f.Values.Get(name)
}

// Selection returns the id set of a multi-valued field, creating it.
func (f *Form) Selection(name string) *Selection {
	if f.Selections == nil {
		f.Selections = map[string]*Selection{}
	}
	s, ok := f.Selections[name]
	if !ok {
		s = &Selection{}
		f.Selections[name] = s
	}
	return s
}

// Int64 parses a single-valued field as an id. Empty or invalid values give zero.
func (f *Form) Int64(name string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(f.Value(name)), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Source loads the options of a reference list.
type Source func(ctx context.Context) ([]Option, error)

// Controller runs the form lifecycle for records of type T.
type Controller[T any] struct {
	Entity  string
	Fields  []Field
	Sources map[string]Source

	// Get fetches the record being edited.
	Get func(ctx context.Context, id int64) (T, error)
	// Fill copies a fetched record into the form.
	Fill func(item T, f *Form)
	// Create and Update send the form to the API.
	Create func(ctx context.Context, f *Form) error
	Update func(ctx context.Context, f *Form) error

	Log zerolog.Logger
}

var validate = validator.New()

// Begin returns a form in the loading state.
func (c *Controller[T]) Begin(mode Mode, id int64) *Form {
	return &Form{
		Entity: c.Entity,
		Mode:   mode,
		ID:     id,
		Status: StatusLoading,
		Values: url.Values{},
	}
}

// Load resolves a loading form. A create form only needs its reference
// lists and stays usable, with empty choices, if one fails. An edit form
// fetches the record and the reference lists in parallel and becomes ready
// only when all of them resolved.
func (c *Controller[T]) Load(ctx context.Context, f *Form) error {
	if f.Status == StatusReady {
		return nil
	}

	options := make(map[string][]Option, len(c.Sources))
	results := make([][]Option, len(c.Sources))
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}

	var (
		item T
		g    *errgroup.Group
		gctx = ctx
	)
	if f.Mode == ModeEdit {
		g, gctx = errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			item, err = c.Get(gctx, f.ID)
			if err != nil {
				return fmt.Errorf("load %s %d: %w", c.Entity, f.ID, err)
			}
			return nil
		})
	} else {
		g = &errgroup.Group{}
	}

	for i, name := range names {
		src := c.Sources[name]
		g.Go(func() error {
			opts, err := src(gctx)
			if err != nil {
				if f.Mode == ModeCreate {
					c.Log.Error().Err(err).Str("entity", c.Entity).Str("source", name).Msg("failed to load form choices")
					return nil
				}
				return fmt.Errorf("load %s choices: %w", name, err)
			}
			results[i] = opts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		f.Status = StatusFailed
		c.Log.Error().Err(err).Str("entity", c.Entity).Int64("id", f.ID).Msg("failed to load form")
		return err
	}

	for i, name := range names {
		options[name] = results[i]
	}
	f.Options = options
	if f.Mode == ModeEdit && c.Fill != nil {
		c.Fill(item, f)
	}
	f.Status = StatusReady
	return nil
}

// Select replaces the id set of a checkbox field with the boxes the
// browser reported as checked.
func (c *Controller[T]) Select(f *Form, field string, checked []string) error {
	if f.Status != StatusReady {
		return ErrNotReady
	}
	if !c.isMulti(field) {
		return fmt.Errorf("form: %s is not a checkbox field", field)
	}
	f.Selection(field).Replace(checked)
	return nil
}

// Submit copies the posted fields into the form, checks the required ones
// and sends the form. A checkbox field is set to the posted ids, so an
// unchecked group sends an empty set.
func (c *Controller[T]) Submit(ctx context.Context, f *Form, posted url.Values) error {
	if f.Status != StatusReady {
		return ErrNotReady
	}

	for _, field := range c.Fields {
		if field.IsMulti() {
			f.Selection(field.Name).Replace(posted[field.Name])
			continue
		}
		f.Values.Set(field.Name, strings.TrimSpace(posted.Get(field.Name)))
	}

	var missing []string
	for _, field := range c.Fields {
		if !field.Required || field.IsMulti() {
			continue
		}
		if err := validate.Var(f.Value(field.Name), "required"); err != nil {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) > 0 {
		return &InvalidError{Fields: missing}
	}

	var err error
	switch f.Mode {
	case ModeCreate:
		err = c.Create(ctx, f)
	case ModeEdit:
		err = c.Update(ctx, f)
	default:
		err = fmt.Errorf("form: unknown mode %q", f.Mode)
	}
	if err != nil {
		c.Log.Error().Err(err).Str("entity", c.Entity).Str("mode", string(f.Mode)).Int64("id", f.ID).Msg("form submission failed")
		return err
	}
	return nil
}

// FieldByName returns the field definition with the given name.
func (c *Controller[T]) FieldByName(name string) (Field, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func (c *Controller[T]) isMulti(name string) bool {
	field, ok := c.FieldByName(name)
	return ok && field.IsMulti()
}
