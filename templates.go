package main

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/lerl/portfolio/internal/portfolio"
	"github.com/lerl/portfolio/web"
)

func templateFuncs(catalog *portfolio.Catalog) template.FuncMap {
	return template.FuncMap{
		"tagStyle": catalog.TagStyle,
		"join":     strings.Join,
		"add":      func(a, b int) int { return a + b },
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"days": func(d time.Duration) int {
			return int(d.Hours() / 24)
		},
	}
}

func mustTemplates(catalog *portfolio.Catalog) *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs(catalog)).ParseFS(web.Templates, "templates/*.html"))
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(web.Static, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
