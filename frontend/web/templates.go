// Package web embeds the frontend's HTML templates.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
