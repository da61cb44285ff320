package markdown

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Allowlist for blog content. Anything else is dropped together with its
// attributes; script/style subtrees are removed entirely.
var allowedTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "blockquote": true, "br": true,
	"code": true, "del": true, "div": true, "em": true, "figcaption": true,
	"figure": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "hr": true, "i": true, "img": true, "li": true,
	"ol": true, "p": true, "pre": true, "s": true, "span": true,
	"strong": true, "table": true, "tbody": true, "td": true, "th": true,
	"thead": true, "tr": true, "u": true, "ul": true,
}

var allowedAttrs = map[string]bool{
	"href": true, "src": true, "alt": true, "title": true,
	"width": true, "height": true,
}

var droppedSubtrees = map[string]bool{
	"script": true, "style": true, "iframe": true, "object": true,
	"embed": true, "form": true,
}

// Sanitize strips disallowed tags, attributes and javascript: URLs from an
// HTML fragment.
func Sanitize(fragment string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		writeSanitized(&buf, n)
	}
	return buf.String(), nil
}

func writeSanitized(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		if droppedSubtrees[n.Data] {
			return
		}
		if !allowedTags[n.Data] {
			// Unknown wrapper: keep children, drop the tag.
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				writeSanitized(buf, c)
			}
			return
		}
		buf.WriteString("<" + n.Data)
		for _, attr := range n.Attr {
			if !allowedAttrs[attr.Key] {
				continue
			}
			if (attr.Key == "href" || attr.Key == "src") && unsafeURL(attr.Val) {
				continue
			}
			buf.WriteString(` ` + attr.Key + `="` + html.EscapeString(attr.Val) + `"`)
		}
		if voidElements[n.Data] {
			buf.WriteString(">")
			return
		}
		buf.WriteString(">")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeSanitized(buf, c)
		}
		buf.WriteString("</" + n.Data + ">")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeSanitized(buf, c)
		}
	}
}

var voidElements = map[string]bool{"br": true, "hr": true, "img": true}

func unsafeURL(raw string) bool {
	v := strings.TrimSpace(strings.ToLower(raw))
	return strings.HasPrefix(v, "javascript:") || strings.HasPrefix(v, "data:text/html") || strings.HasPrefix(v, "vbscript:")
}
