// Package markdown renders blog bodies for display. Bodies authored as raw
// HTML pass through a sanitizer; bodies with no HTML tags are treated as
// markdown and converted first.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

var htmlTagPattern = regexp.MustCompile(`<\s*[a-zA-Z][^>]*>`)

// RenderBody converts a blog body to safe HTML ready for template injection.
func RenderBody(body string) (template.HTML, error) {
	html := body
	if !htmlTagPattern.MatchString(body) {
		var buf bytes.Buffer
		if err := markdownEngine.Convert([]byte(body), &buf); err != nil {
			return "", err
		}
		html = buf.String()
	}
	safe, err := Sanitize(html)
	if err != nil {
		return "", err
	}
	return template.HTML(safe), nil
}
