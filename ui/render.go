// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets/*
var assetFS embed.FS

var (
	tmpl    *template.Template
	once    sync.Once
	initErr error

	minifier = newMinifier()
	assets   map[string][]byte
)

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.Add("text/html", &mhtml.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

func InitTemplates() error {
	once.Do(func() {
		funcs := template.FuncMap{
			"ellipsify": EllipsifyDefault,
			"markdown":  Markdown,
			"isActive": func(active, p string) bool {
				if p == "/" {
					return active == "/"
				}
				return strings.HasPrefix(active, p)
			},

			// include renders a named template chosen at runtime
			"include": func(name string, data any) template.HTML {
				if tmpl == nil {
					return template.HTML(`<pre class="err">templates not initialized</pre>`)
				}
				var b strings.Builder
				if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
					return template.HTML(`<pre class="err">` + html.EscapeString(err.Error()) + `</pre>`)
				}
				return template.HTML(b.String())
			},
		}

		var err error
		tmpl, err = template.New("root").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
		if err != nil {
			initErr = err
			return
		}

		assets, initErr = minifyAssets()
	})
	return initErr
}

// Render always executes the shared layout, which picks the page body via .ContentTmpl
func Render(w http.ResponseWriter, data any) {
	RenderStatus(w, http.StatusOK, data)
}

func RenderStatus(w http.ResponseWriter, status int, data any) {
	if err := InitTemplates(); err != nil {
		http.Error(w, fmt.Sprintf("template init error: %v", err), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template error", "error", err)
		http.Error(w, fmt.Sprintf("template error: %v", err), http.StatusInternalServerError)
		return
	}

	out, err := minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		slog.Warn("html minify failed, serving unminified", "error", err)
		out = buf.Bytes()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(out)
}

func minifyAssets() (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := fs.WalkDir(assetFS, "assets", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := assetFS.ReadFile(p)
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(p, "assets/")
		small, err := minifier.Bytes(assetType(name), raw)
		if err != nil {
			slog.Warn("asset minify failed, serving unminified", "asset", name, "error", err)
			small = raw
		}
		out[name] = small
		return nil
	})
	return out, err
}

func assetType(name string) string {
	switch path.Ext(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	}
	return "application/octet-stream"
}

// AssetHandler serves the minified stylesheet and scripts. Mount it at
// /assets/ with a StripPrefix.
func AssetHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := InitTemplates(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/")
		data, ok := assets[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", assetType(name)+"; charset=utf-8")
		w.Write(data)
	})
}
