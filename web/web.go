// Package web embeds the dashboard served at the site root.
package web

import "embed"

//go:embed index.html app.js
var FS embed.FS
