// Package site embeds the templates, translations, markdown pages and static
// assets served by the web server.
package site

import (
	"embed"
	"io/fs"
)

//go:embed templates locales content public
var files embed.FS

// Templates returns the template tree (layouts/, partials/, pages/).
func Templates() fs.FS { return sub("templates") }

// Locales returns the translation bundles, one <lang>.json per locale.
func Locales() fs.FS { return sub("locales") }

// Content returns the markdown pages, laid out as <lang>/<slug>.md.
func Content() fs.FS { return sub("content") }

// Public returns the static assets served under /assets.
func Public() fs.FS { return sub("public") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
