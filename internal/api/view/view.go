// Package view renders the server-side pages of the attendance kiosk and the
// admin views. Templates are embedded in the binary.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
	loc       *time.Location
}

// New parses the embedded templates. Timestamps are displayed in loc.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}
	r := &Renderer{loc: loc}
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"clock": r.clock,
		"hours": hours,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	r.templates = tmpl
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func (r *Renderer) clock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(r.loc).Format("15:04:05")
}

func hours(v interface{}) string {
	switch h := v.(type) {
	case *float64:
		if h == nil {
			return "open"
		}
		return fmt.Sprintf("%.2f", *h)
	case float64:
		return fmt.Sprintf("%.2f", h)
	default:
		return ""
	}
}
