// Package layout serves the sidebar toggle and the viewport report used to
// collapse the sidebar on narrow screens.
package layout

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-dashboard/internal/handler"
	"github.com/jwalitptl/hospital-dashboard/internal/middleware"
	apperrors "github.com/jwalitptl/hospital-dashboard/pkg/errors"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ui := r.Group("/ui")
	{
		ui.POST("/sidebar/toggle", h.ToggleSidebar)
		ui.POST("/viewport", h.Viewport)
	}
}

func (h *Handler) ToggleSidebar(c *gin.Context) {
	middleware.CurrentSession(c).ToggleSidebar()
	h.render(c)
}

func (h *Handler) Viewport(c *gin.Context) {
	width, err := strconv.Atoi(c.PostForm("width"))
	if err != nil || width <= 0 {
		c.Error(apperrors.BadRequest("Largeur invalide", err))
		return
	}
	middleware.CurrentSession(c).Resize(width)
	h.render(c)
}

// render returns the sidebar with the link of the page htmx was called from
// still highlighted.
func (h *Handler) render(c *gin.Context) {
	active := ""
	if u, err := url.Parse(c.GetHeader("HX-Current-URL")); err == nil {
		active = u.Path
	}
	// pending notices stay queued for the next page
	page := handler.Page{
		Layout: middleware.CurrentSession(c).Layout,
		Nav:    handler.Nav(active),
	}
	handler.Render(c, http.StatusOK, "sidebar.html", page)
}
