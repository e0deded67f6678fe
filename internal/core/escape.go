package core

import "strings"

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// Escape makes value safe for embedding in HTML text and double-quoted
// attributes.  Single quotes are left alone.
func Escape(value string) string {
	return htmlEscaper.Replace(value)
}
