package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/coffeelux/auth/pkg/httpx"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages maps a page file name to its parsed template set. Each page is
// parsed together with the shared layout so they can define the same block
// names without clashing.
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	parsed := make(map[string]*template.Template)
	for _, file := range entries {
		name := path.Base(file)
		if name == "layout.html" {
			continue
		}
		parsed[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", file))
	}
	return parsed
}

// pageBase carries the one-shot messages every page can show.
type pageBase struct {
	SuccessMessage string
	ErrorMessage   string
}

func render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := pages[page]
	if !ok {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = tmpl.ExecuteTemplate(w, "layout", data)
}
