package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer serves the two views of the app: the URL input form and the
// summary result page.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type FormData struct {
	Notice string
}

type ResultData struct {
	SummaryHTML  template.HTML
	ThumbnailURL string
	URL          string
}

func (r *Renderer) RenderForm(w io.Writer, data FormData) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", data)
}

func (r *Renderer) RenderResult(w io.Writer, data ResultData) error {
	return r.tmpl.ExecuteTemplate(w, "summary.html", data)
}

// MarkdownToHTML converts LLM markdown output to HTML for display.
func MarkdownToHTML(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- goldmark escapes raw HTML by default
}
