package collection

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-dashboard/internal/form"
	"github.com/jwalitptl/hospital-dashboard/internal/handler"
	"github.com/jwalitptl/hospital-dashboard/internal/middleware"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
	"github.com/jwalitptl/hospital-dashboard/internal/session"
	apperrors "github.com/jwalitptl/hospital-dashboard/pkg/errors"
)

func (h *Handler[T]) openForm(c *gin.Context) (*form.Form, bool) {
	var f form.Form
	found, err := middleware.CurrentSession(c).Get(h.key("form"), &f)
	if err != nil {
		h.logger(c).Error().Err(err).Msg("failed to read form from session")
		return nil, false
	}
	return &f, found
}

func (h *Handler[T]) saveForm(c *gin.Context, f *form.Form) {
	if err := middleware.CurrentSession(c).Put(h.key("form"), f); err != nil {
		h.logger(c).Error().Err(err).Msg("failed to write form to session")
	}
}

func (h *Handler[T]) formView(f *form.Form) FormView {
	view := FormView{
		ListPath:       h.desc.ListPath,
		ToggleURL:      h.desc.BasePath + "/form/toggle",
		LoadingMessage: "Chargement...",
		Loading:        f.Status == form.StatusLoading,
		Failed:         f.Status == form.StatusFailed,
		Fields:         fieldViews(h.desc.Form.Fields, f),
	}
	if f.Mode == form.ModeEdit {
		view.Title = h.desc.EditTitle
		view.Action = fmt.Sprintf("%s/edit/%d", h.desc.BasePath, f.ID)
		view.FormURL = view.Action + "/form"
	} else {
		view.Title = h.desc.AddTitle
		view.Action = h.desc.BasePath + "/add"
	}
	return view
}

func (h *Handler[T]) renderFormPage(c *gin.Context, status int, f *form.Form) {
	view := h.formView(f)
	handler.Render(c, status, "form.html", handler.NewPage(c, view.Title, h.desc.ListPath, view))
}

// AddPage opens an empty form. Reference lists are loaded before rendering.
func (h *Handler[T]) AddPage(c *gin.Context) {
	ctrl := h.desc.Form
	f := ctrl.Begin(form.ModeCreate, 0)
	_ = ctrl.Load(c.Request.Context(), f)
	h.saveForm(c, f)
	h.renderFormPage(c, http.StatusOK, f)
}

func (h *Handler[T]) Add(c *gin.Context) {
	f, found := h.openForm(c)
	if !found || f.Mode != form.ModeCreate {
		h.submitRejected(c, form.ErrMismatch, h.desc.BasePath+"/add")
		return
	}
	h.submit(c, f)
}

// EditPage renders the loading placeholder; the fields arrive from EditForm.
func (h *Handler[T]) EditPage(c *gin.Context) {
	id, ok := model.ParseID(c.Param("id"))
	if !ok {
		c.Error(apperrors.BadRequest("Identifiant invalide", nil))
		return
	}
	f := h.desc.Form.Begin(form.ModeEdit, id)
	h.saveForm(c, f)
	h.renderFormPage(c, http.StatusOK, f)
}

// EditForm resolves the record and its reference lists, then renders the
// interactive form.
func (h *Handler[T]) EditForm(c *gin.Context) {
	id, ok := model.ParseID(c.Param("id"))
	if !ok {
		c.Error(apperrors.BadRequest("Identifiant invalide", nil))
		return
	}

	f, found := h.openForm(c)
	if !found || f.Mode != form.ModeEdit || f.ID != id {
		f = h.desc.Form.Begin(form.ModeEdit, id)
	}
	if err := h.desc.Form.Load(c.Request.Context(), f); err != nil {
		middleware.CurrentSession(c).Notify(session.LevelError, "Impossible de charger le formulaire")
	}
	h.saveForm(c, f)
	handler.Render(c, http.StatusOK, "form_fields.html", handler.NewPartial(c, h.formView(f)))
}

func (h *Handler[T]) Edit(c *gin.Context) {
	id, ok := model.ParseID(c.Param("id"))
	if !ok {
		c.Error(apperrors.BadRequest("Identifiant invalide", nil))
		return
	}
	editPath := fmt.Sprintf("%s/edit/%d", h.desc.BasePath, id)

	f, found := h.openForm(c)
	if !found || f.Mode != form.ModeEdit || f.ID != id {
		h.submitRejected(c, form.ErrMismatch, editPath)
		return
	}
	if f.Status != form.StatusReady {
		h.submitRejected(c, form.ErrNotReady, editPath)
		return
	}
	h.submit(c, f)
}

func (h *Handler[T]) submitRejected(c *gin.Context, err error, location string) {
	h.logger(c).Warn().Err(err).Msg("form submission rejected")
	middleware.CurrentSession(c).Notify(session.LevelError, "Le formulaire n'est pas prêt, veuillez réessayer")
	handler.Redirect(c, location)
}

// submit sends the form. Success returns to the list; failure stays on the
// form with the typed values and a notice.
func (h *Handler[T]) submit(c *gin.Context, f *form.Form) {
	sess := middleware.CurrentSession(c)
	if err := c.Request.ParseForm(); err != nil {
		c.Error(apperrors.BadRequest("Formulaire invalide", err))
		return
	}

	err := h.desc.Form.Submit(c.Request.Context(), f, c.Request.PostForm)
	var invalid *form.InvalidError
	switch {
	case err == nil:
		sess.Delete(h.key("form"))
		sess.Notify(session.LevelSuccess, "Enregistrement effectué")
		handler.Redirect(c, h.desc.ListPath)
	case errors.As(err, &invalid):
		h.saveForm(c, f)
		sess.Notify(session.LevelError, "Veuillez remplir tous les champs obligatoires")
		h.renderFormPage(c, http.StatusUnprocessableEntity, f)
	default:
		h.saveForm(c, f)
		sess.Notify(session.LevelError, "L'enregistrement a échoué")
		h.renderFormPage(c, http.StatusOK, f)
	}
}

// Toggle records a checkbox change of a multi-select field. htmx posts the
// whole form, so the selection is rebuilt from every box checked in the
// browser and overlapping clicks cannot drop one another.
func (h *Handler[T]) Toggle(c *gin.Context) {
	field := c.PostForm("field")
	if field == "" {
		c.Error(apperrors.BadRequest("Sélection invalide", nil))
		return
	}

	f, found := h.openForm(c)
	if !found {
		c.Error(apperrors.Conflict("Aucun formulaire ouvert", form.ErrMismatch))
		return
	}
	if err := h.desc.Form.Select(f, field, c.PostFormArray(field)); err != nil {
		c.Error(apperrors.Conflict("Le formulaire n'est pas prêt", err))
		return
	}
	h.saveForm(c, f)
	if err := middleware.CommitSession(c); err != nil {
		h.logger(c).Error().Err(err).Msg("failed to save session")
	}
	c.Status(http.StatusNoContent)
}
