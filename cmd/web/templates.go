package main

import (
	"bytes"
	"fmt"
	"github.com/microcosm-cc/bluemonday"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/contexthelpers"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/ui"
	"html/template"
	"log/slog"
	"net/http"
)

type BaseTemplateData struct {
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

// modelTextPolicy strips every tag from engine answers. The engine is instructed to answer in plain text but
// its output is not trusted.
var modelTextPolicy = bluemonday.StrictPolicy() //nolint:gochecknoglobals // policies are safe for concurrent use

// plainText removes markup from s. The policy's output is already HTML-escaped.
func plainText(s string) template.HTML {
	return template.HTML(modelTextPolicy.Sanitize(s)) //nolint:gosec // sanitized by a strict policy
}

// imageURL embeds an attached image as a data URI.
func imageURL(image *analysis.Image) template.URL {
	if image == nil {
		return ""
	}
	return template.URL(image.DataURI()) //nolint:gosec // data URI built from decoded bytes
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to directory inside ui/templates/pages folder. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	patterns := []string{
		"templates/base.gohtml",
		fmt.Sprintf("templates/pages/%s/*.gohtml", pageName),
	}

	// We need to initialize the FuncMap before parsing the files. These will be overridden in the render function.
	t, err := template.New(pageName).Funcs(template.FuncMap{
		"nonce": func() string {
			panic("not implemented")
		},
		"csrf": func() string {
			panic("not implemented")
		},
		"plain":    plainText,
		"imageURL": imageURL,
	}).ParseFS(ui.Files, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "parse templates", slog.String("page", pageName))
	}
	return t, nil
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, file string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", file)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // we trust the csrf since it's not provided by user.
		},
	})
	if err = t.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", file)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
