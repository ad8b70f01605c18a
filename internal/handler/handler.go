// Package handler holds the page plumbing shared by the dashboard handlers.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-dashboard/internal/middleware"
	"github.com/jwalitptl/hospital-dashboard/internal/session"
)

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Href   string
	Icon   string
	Active bool
}

var navigation = []NavItem{
	{Label: "Personnel", Href: "/dashboard", Icon: "users"},
	{Label: "Services", Href: "/dashboard/service", Icon: "building-2"},
	{Label: "Bâtiments", Href: "/dashboard/batiment", Icon: "building"},
	{Label: "Patients", Href: "/dashboard/patient", Icon: "user-round"},
	{Label: "Sections", Href: "/dashboard/sections", Icon: "layers"},
}

// Nav returns the sidebar with the entry for active highlighted.
func Nav(active string) []NavItem {
	out := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Active = item.Href == active
		out[i] = item
	}
	return out
}

// Page is the data of every full page.
type Page struct {
	Title   string
	Email   string
	Layout  session.Layout
	Notices []session.Notice
	Nav     []NavItem
	Body    any
}

// NewPage builds a full page and takes the pending notices of the session.
func NewPage(c *gin.Context, title, active string, body any) Page {
	sess := middleware.CurrentSession(c)
	return Page{
		Title:   title,
		Email:   sess.Email,
		Layout:  sess.Layout,
		Notices: sess.TakeNotices(),
		Nav:     Nav(active),
		Body:    body,
	}
}

// Partial wraps an htmx fragment with the notices to append out of band.
type Partial struct {
	Notices []session.Notice
	Body    any
}

func NewPartial(c *gin.Context, body any) Partial {
	return Partial{
		Notices: middleware.CurrentSession(c).TakeNotices(),
		Body:    body,
	}
}

// Render saves the session, then writes the named template.
func Render(c *gin.Context, status int, name string, data any) {
	if err := middleware.CommitSession(c); err != nil {
		middleware.RequestLogger(c).Error().Err(err).Msg("failed to save session")
	}
	c.HTML(status, name, data)
}

// Redirect saves the session and sends the browser to location. htmx
// requests get an HX-Redirect header instead of a 303.
func Redirect(c *gin.Context, location string) {
	if err := middleware.CommitSession(c); err != nil {
		middleware.RequestLogger(c).Error().Err(err).Msg("failed to save session")
	}
	if middleware.IsHTMX(c) {
		c.Header("HX-Redirect", location)
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}
