// Package view holds the server-rendered pages.
package view

import (
	"embed"
	"html/template"
)

// Index is the template name of the landing page.
const Index = "index.tmpl"

//go:embed templates/*.tmpl
var templates embed.FS

// Load parses every embedded page template.
func Load() (*template.Template, error) {
	return template.ParseFS(templates, "templates/*.tmpl")
}
