package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageIndex    = "index.html"
	pageRedirect = "redirect.html"
	pageOrders   = "orders.html"
	pageNotFound = "404.html"
	pageError    = "500.html"
)

func parseTemplates() (map[string]*template.Template, error) {
	pages := []string{pageIndex, pageRedirect, pageOrders, pageNotFound, pageError}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[page] = t
	}

	return templates, nil
}

func (srv *Server) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := srv.templates[page]
	if !ok {
		srv.deps.Logger.Errorf("template %s not found", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		srv.deps.Logger.Errorf("render %s: %v", page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		srv.deps.Logger.Errorf("write %s: %v", page, err)
	}
}
