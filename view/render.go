// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"plural": func(n int, singular string) string {
		return english.Plural(n, singular, "")
	},
	"ago": func(t time.Time) string {
		return humanize.Time(t)
	},
	"timestamp": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	"join": strings.Join,
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

// RenderEmbed renders the poll widget fragment
func RenderEmbed(e PollEmbed) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "embed", e); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderPage writes a full poll page. Output is buffered so a template
// error never leaves a half-written page.
func RenderPage(w io.Writer, page Page) error {
	return execute(w, "page", page)
}

// RenderNotFound writes the 404 page
func RenderNotFound(w io.Writer) error {
	return execute(w, "notfound", nil)
}

// RenderError writes the generic 500 page
func RenderError(w io.Writer) error {
	return execute(w, "error", nil)
}

func execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
