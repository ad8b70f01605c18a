// Package web embeds the dashboard templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// HTMXScript is loaded from the CDN allowed by the security headers.
const HTMXScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Templates parses every page and partial. Each file is named after its
// base name, e.g. "list.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"htmx": func() string { return HTMXScript },
	}).ParseFS(templateFS, "templates/*.html")
}

// Static serves the files under static/ at their relative path.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
