// Package static embeds the stylesheet and images served under /static/.
package static

import "embed"

// FS exposes web static assets for HTTP serving.
//
//go:embed *.css *.svg
var FS embed.FS
