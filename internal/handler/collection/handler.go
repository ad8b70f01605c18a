// Package collection serves the list, details, delete, export and form
// screens of one entity type.
package collection

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/hospital-dashboard/internal/collection"
	"github.com/jwalitptl/hospital-dashboard/internal/entity"
	"github.com/jwalitptl/hospital-dashboard/internal/export"
	"github.com/jwalitptl/hospital-dashboard/internal/gate"
	"github.com/jwalitptl/hospital-dashboard/internal/handler"
	"github.com/jwalitptl/hospital-dashboard/internal/listview"
	"github.com/jwalitptl/hospital-dashboard/internal/middleware"
	"github.com/jwalitptl/hospital-dashboard/internal/model"
	"github.com/jwalitptl/hospital-dashboard/internal/session"
	apperrors "github.com/jwalitptl/hospital-dashboard/pkg/errors"
	"github.com/jwalitptl/hospital-dashboard/pkg/metrics"
)

type Handler[T model.Entity] struct {
	desc    *entity.Descriptor[T]
	metrics *metrics.Metrics
}

func NewHandler[T model.Entity](desc *entity.Descriptor[T], m *metrics.Metrics) *Handler[T] {
	return &Handler[T]{desc: desc, metrics: m}
}

func (h *Handler[T]) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(h.desc.ListPath, h.List)

	base := r.Group(h.desc.BasePath)
	{
		base.GET("/table", h.Table)
		base.GET("/:id/details", h.Details)

		base.POST("/:id/delete", h.RequestDelete)
		base.POST("/delete/confirm", h.ConfirmDelete)
		base.POST("/delete/cancel", h.CancelDelete)

		base.GET("/export/:format", h.Export)

		base.GET("/add", h.AddPage)
		base.POST("/add", h.Add)
		base.GET("/edit/:id", h.EditPage)
		base.GET("/edit/:id/form", h.EditForm)
		base.POST("/edit/:id", h.Edit)
		base.POST("/form/toggle", h.Toggle)
	}
}

func (h *Handler[T]) key(part string) string {
	return part + "/" + h.desc.Key
}

func (h *Handler[T]) logger(c *gin.Context) *zerolog.Logger {
	l := middleware.RequestLogger(c).With().Str("entity", h.desc.Key).Logger()
	return &l
}

// state is the part of the session owned by one list page.
type state[T model.Entity] struct {
	items *collection.Collection[T]
	list  listview.State
	gate  gate.Gate
}

func (h *Handler[T]) load(c *gin.Context) state[T] {
	sess := middleware.CurrentSession(c)
	st := state[T]{items: collection.New[T](), list: listview.NewState()}
	logger := h.logger(c)

	if _, err := sess.Get(h.key("collection"), st.items); err != nil {
		logger.Error().Err(err).Msg("failed to read collection from session")
	}
	if _, err := sess.Get(h.key("list"), &st.list); err != nil {
		logger.Error().Err(err).Msg("failed to read list state from session")
	}
	if _, err := sess.Get(h.key("gate"), &st.gate); err != nil {
		logger.Error().Err(err).Msg("failed to read delete gate from session")
	}
	return st
}

func (h *Handler[T]) store(c *gin.Context, st state[T]) {
	sess := middleware.CurrentSession(c)
	logger := h.logger(c)
	for key, v := range map[string]any{
		h.key("collection"): st.items,
		h.key("list"):       st.list,
		h.key("gate"):       st.gate,
	} {
		if err := sess.Put(key, v); err != nil {
			logger.Error().Err(err).Str("key", key).Msg("failed to write session")
		}
	}
}

// List is the page mount: the collection is fetched again and the search,
// pagination and delete gate start over.
func (h *Handler[T]) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	st := state[T]{items: collection.New[T](), list: listview.NewState()}

	if err := st.items.Load(c.Request.Context(), h.desc.Resource, *h.logger(c)); err != nil {
		sess.Notify(session.LevelError, h.desc.LoadError)
	}
	h.store(c, st)

	view := ListView{
		Key:            h.desc.Key,
		Title:          h.desc.Title,
		BasePath:       h.desc.BasePath,
		AddPath:        h.desc.BasePath + "/add",
		LoadingMessage: h.desc.LoadingMessage,
		Search:         st.list.Search,
		Size:           st.list.Size,
		Sizes:          listview.PageSizes,
		Table:          h.table(st, false),
	}
	handler.Render(c, http.StatusOK, "list.html", handler.NewPage(c, h.desc.Title, h.desc.ListPath, view))
}

// Table re-renders the table region for the q, size and page parameters
// against the collection already fetched by List.
func (h *Handler[T]) Table(c *gin.Context) {
	st := h.load(c)

	st.list.SetSearch(c.Query("q"))
	sizeChanged := false
	if size, err := strconv.Atoi(c.Query("size")); err == nil && size != st.list.Size {
		sizeChanged = st.list.SetSize(size)
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && !sizeChanged {
		st.list.SetPage(page)
	}

	h.store(c, st)
	handler.Render(c, http.StatusOK, "table.html", handler.NewPartial(c, h.table(st, false)))
}

func (h *Handler[T]) table(st state[T], clearModal bool) TableView {
	filtered := listview.Filter(st.items.Items(), st.list.Search)
	page := listview.Paginate(filtered, st.list)

	headers := make([]string, len(h.desc.Columns))
	for i, col := range h.desc.Columns {
		headers[i] = col.Header
	}
	rows := make([]RowView, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, RowView{ID: item.GetID(), Cells: h.desc.Row(item)})
	}

	return TableView{
		BasePath:   h.desc.BasePath,
		Headers:    headers,
		Rows:       rows,
		Search:     st.list.Search,
		Size:       page.Size,
		Page:       page.Page,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		Links:      page.Links,
		CanDelete:  h.desc.Resource.CanDelete(),
		ClearModal: clearModal,
	}
}

func (h *Handler[T]) find(c *gin.Context, st state[T]) (T, bool) {
	var zero T
	id, ok := model.ParseID(c.Param("id"))
	if !ok {
		c.Error(apperrors.BadRequest("Identifiant invalide", nil))
		return zero, false
	}
	item, ok := st.items.Find(id)
	if !ok {
		c.Error(apperrors.NotFound(h.desc.Key, nil))
		return zero, false
	}
	return item, true
}

func (h *Handler[T]) Details(c *gin.Context) {
	item, ok := h.find(c, h.load(c))
	if !ok {
		return
	}
	view := DetailsView{
		Title:    h.desc.Label(item),
		Fields:   h.desc.DetailFields(item),
		EditPath: fmt.Sprintf("%s/edit/%d", h.desc.BasePath, item.GetID()),
	}
	handler.Render(c, http.StatusOK, "details.html", handler.NewPartial(c, view))
}

// RequestDelete opens the confirmation gate for one row.
func (h *Handler[T]) RequestDelete(c *gin.Context) {
	if !h.desc.Resource.CanDelete() {
		c.Error(apperrors.MethodNotAllowed("La suppression n'est pas disponible"))
		return
	}
	st := h.load(c)
	item, ok := h.find(c, st)
	if !ok {
		return
	}

	target := gate.Target{ID: item.GetID(), Label: h.desc.Label(item)}
	if err := st.gate.Open(target); err != nil {
		c.Error(apperrors.Conflict("Une suppression est déjà en attente", err))
		return
	}
	h.store(c, st)

	view := ConfirmView{
		BasePath: h.desc.BasePath,
		Message:  h.desc.DeleteMessage,
		Label:    target.Label,
	}
	handler.Render(c, http.StatusOK, "confirm.html", handler.NewPartial(c, view))
}

// ConfirmDelete issues the pending delete and re-renders the table.
func (h *Handler[T]) ConfirmDelete(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	st := h.load(c)

	target, err := st.gate.Confirm(c.Request.Context(), h.desc.Resource.Delete)
	switch {
	case errors.Is(err, gate.ErrClosed):
		sess.Notify(session.LevelInfo, "Aucune suppression en attente")
	case err != nil:
		h.logger(c).Error().Err(err).Int64("id", target.ID).Msg("delete failed")
		sess.Notify(session.LevelError, "La suppression a échoué")
	default:
		st.items.Remove(target.ID)
		sess.Notify(session.LevelSuccess, "Suppression effectuée")
	}

	h.store(c, st)
	handler.Render(c, http.StatusOK, "table.html", handler.NewPartial(c, h.table(st, true)))
}

// CancelDelete closes the gate without a request.
func (h *Handler[T]) CancelDelete(c *gin.Context) {
	st := h.load(c)
	st.gate.Cancel()
	h.store(c, st)
	handler.Render(c, http.StatusOK, "modal_empty.html", handler.NewPartial(c, nil))
}

// Export writes the filtered collection, ignoring pagination.
func (h *Handler[T]) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		c.Error(apperrors.NotFound("format", err))
		return
	}

	st := h.load(c)
	search := st.list.Search
	if q, ok := c.GetQuery("q"); ok {
		search = q
	}
	filtered := listview.Filter(st.items.Items(), search)

	data, err := export.Write(format, h.desc.Table(filtered))
	if err != nil {
		c.Error(apperrors.Internal(err))
		return
	}
	h.metrics.Exports.WithLabelValues(h.desc.Key, string(format)).Inc()
	h.metrics.ExportRows.WithLabelValues(h.desc.Key).Observe(float64(len(filtered)))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.FileName(h.desc.FileName)))
	c.Data(http.StatusOK, format.ContentType(), data)
}
