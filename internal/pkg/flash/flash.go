// Package flash carries one-shot notifications across a redirect via a
// short-lived cookie.
package flash

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

const (
	cookieName = "kmab_flash"
	maxAge     = 60
)

// Kind distinguishes success from error banners.
type Kind string

const (
	KindSuccess Kind = "s"
	KindError   Kind = "e"
)

// Message is a consumed flash notification.
type Message struct {
	Kind Kind
	Text string
}

// Set queues a flash message for the next rendered page.
func Set(c *gin.Context, kind Kind, text string) {
	c.SetCookie(cookieName, string(kind)+":"+url.QueryEscape(text), maxAge, "/", "", false, true)
}

// Pop reads and clears the pending flash message, if any.
func Pop(c *gin.Context) *Message {
	raw, err := c.Cookie(cookieName)
	if err != nil || len(raw) < 2 || raw[1] != ':' {
		return nil
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	text, err := url.QueryUnescape(raw[2:])
	if err != nil {
		return nil
	}
	return &Message{Kind: Kind(raw[:1]), Text: text}
}
