package site

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

const defaultTemplateName = "templates/page.html.tmpl"

// Renderer writes pages as HTML through a text/template. Row.HTML escapes
// school names.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the template at path, or the bundled template when
// path is empty.
func NewRenderer(path string) (*Renderer, error) {
	var (
		name string
		src  []byte
		err  error
	)

	if strings.TrimSpace(path) == "" {
		name = defaultTemplateName
		src, err = templateFS.ReadFile(defaultTemplateName)
	} else {
		name = path
		src, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("read page template %q: %w", name, err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse page template %q: %w", name, err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template for page.
func (r *Renderer) Render(w io.Writer, page Page) error {
	return r.tmpl.Execute(w, page)
}
