// Package web renders the storefront's HTML pages from embedded templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	ginrender "github.com/gin-gonic/gin/render"

	"github.com/saanjh/storefront/internal/application/storefront"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile = "templates/layout.html"
	rootName   = "layout"
)

// Page template names
const (
	TemplateHome    = storefront.PageHome
	TemplateAbout   = storefront.PageAbout
	TemplateJournal = storefront.PageJournal
	TemplateArticle = storefront.PageArticle
	TemplateContact = storefront.PageContact
	TemplateStore   = storefront.PageStore
	TemplateProduct = storefront.PageProduct
	TemplateCart    = storefront.PageCart
	TemplateError   = storefront.PageError
)

// View is the data every page template receives
type View struct {
	Title       string
	Description string
	Layout      storefront.Layout
	Page        any
}

// ErrorPage is the model of the generic error page
type ErrorPage struct {
	Status  int
	Title   string
	Message string
}

// Renderer holds one parsed template set per page, each sharing the layout.
// It implements gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

var _ ginrender.HTMLRender = (*Renderer)(nil)

// NewRenderer parses the embedded templates. basePath prefixes every link
// built with the path function.
func NewRenderer(basePath string) (*Renderer, error) {
	return newRenderer(templateFS, basePath)
}

func newRenderer(fsys fs.FS, basePath string) (*Renderer, error) {
	base, err := template.New(rootName).Funcs(funcMap(basePath)).ParseFS(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		page, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := page.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[strings.TrimSuffix(path.Base(file), ".html")] = page
	}
	return r, nil
}

// Has reports whether a page template exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render writes the named page
func (r *Renderer) Render(w io.Writer, name string, view View) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("web: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, rootName, view)
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data any) ginrender.Render {
	return ginrender.HTML{
		Template: r.pages[name],
		Name:     rootName,
		Data:     data,
	}
}
