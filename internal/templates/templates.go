// Package templates embeds the HTML template set and static assets.
package templates

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed pages/*.html admin/*.html partials/*.html
var files embed.FS

//go:embed static
var static embed.FS

// New parses the full template set. Templates are addressed by base
// filename (admin screens carry an admin_ prefix to keep names unique).
func New() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).ParseFS(files, "pages/*.html", "admin/*.html", "partials/*.html")
}

// StaticFS returns the embedded static asset tree rooted at static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}
