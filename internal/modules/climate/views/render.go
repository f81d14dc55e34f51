package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

var indexTmpl *template.Template

// Route is one documented API path on the welcome page.
type Route struct {
	Path    string
	Example string
}

type IndexData struct {
	Title  string
	Routes []Route
}

// APIRoutes are the documented endpoints, in the order the welcome page lists them.
var APIRoutes = []Route{
	{Path: "/api/v1.0/precipitation"},
	{Path: "/api/v1.0/stations"},
	{Path: "/api/v1.0/tobs"},
	{Path: "/api/v1.0/start/<start_date>", Example: "/api/v1.0/start/2016-09-01"},
	{Path: "/api/v1.0/start_end/<start_date>_<end_date>", Example: "/api/v1.0/start_end/2010-10-10_2010-12-24"},
}

// loadTemplatesFromFS is split out so tests can feed broken filesystems.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	indexTmpl, err = template.ParseFS(sub, "*.html")
	return err
}

// LoadTemplates parses the embedded templates. Call during startup; the
// server must not start if it fails.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

func RenderIndex(w io.Writer, data *IndexData) error {
	if indexTmpl == nil {
		return errors.New("index template not loaded: call views.LoadTemplates during startup")
	}
	return indexTmpl.ExecuteTemplate(w, "index.html", data)
}
