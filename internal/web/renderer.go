package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"catalogweb/internal/browser"
	"catalogweb/internal/catalog"
)

type navLink struct {
	Label  string
	Value  string
	Href   string
	Active bool
}

type pageData struct {
	browser.View
	Title           string
	CollectionLinks []navLink
	SortLinks       []navLink
}

// pageRenderer renders one response. Partial requests get only the grid.
type pageRenderer struct {
	w       http.ResponseWriter
	r       *http.Request
	tmpl    *template.Template
	partial bool
}

func (p *pageRenderer) Render(v browser.View) error {
	name := "base"
	if p.partial {
		name = "grid"
	}

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, newPageData(v)); err != nil {
		return fmt.Errorf("execute %s template: %w", name, err)
	}

	p.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	p.w.Header().Set("Cache-Control", "no-store")
	p.w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(p.w)
	return err
}

func (p *pageRenderer) Open(targetURL string) error {
	http.Redirect(p.w, p.r, targetURL, http.StatusSeeOther)
	return nil
}

func newPageData(v browser.View) pageData {
	data := pageData{View: v, Title: pageTitle}

	collections := append([]string{catalog.AllCollections}, v.Collections...)
	for _, c := range collections {
		label := c
		if c == catalog.AllCollections {
			label = "Todas"
		}
		s := v.State
		s.Collection = c
		data.CollectionLinks = append(data.CollectionLinks, navLink{
			Label:  label,
			Value:  c,
			Href:   "/?" + stateQuery(s).Encode(),
			Active: c == v.State.Collection,
		})
	}

	for _, opt := range sortOptions {
		s := v.State
		s.Sort = opt.Value
		data.SortLinks = append(data.SortLinks, navLink{
			Label:  opt.Label,
			Value:  opt.Value,
			Href:   "/?" + stateQuery(s).Encode(),
			Active: opt.Value == v.State.Sort,
		})
	}
	return data
}
