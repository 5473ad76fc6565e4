package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"MetalPulse/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"safeCSS": func(s string) template.CSS { return template.CSS(s) },
}).ParseFS(templateFS, "templates/dashboard.html"))

// Frame embeds one mounted chart into the page.
type Frame struct {
	Slot  string
	Title string
	Src   string
}

// PageData is the template input.
type PageData struct {
	view.Page
	Frames   []Frame
	Phases   []view.Phase
	LoadedAt string
}

// NewPageData pairs a page view model with its mounted chart instances.
func NewPageData(p view.Page, mounted []*Instance, loadedAt time.Time) PageData {
	d := PageData{Page: p, Phases: p.Dashboard.Phases}
	if len(d.Phases) == 0 {
		d.Phases = make([]view.Phase, len(view.Phases))
		for i, name := range view.Phases {
			d.Phases[i] = view.Phase{Name: name}
		}
	}
	for _, inst := range mounted {
		d.Frames = append(d.Frames, Frame{
			Slot:  inst.Slot,
			Title: inst.Spec.Title,
			Src:   fmt.Sprintf("/charts/%s?v=%d", inst.Slot, inst.Seq),
		})
	}
	if !loadedAt.IsZero() {
		d.LoadedAt = loadedAt.UTC().Format(time.RFC3339)
	}
	return d
}

// RenderPage writes the dashboard HTML.
func RenderPage(w io.Writer, d PageData) error {
	return pageTemplate.Execute(w, d)
}
