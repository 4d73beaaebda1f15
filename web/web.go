package web

import "embed"

// Static is the single-page dashboard: index.html shell, app.js and styles.
// The server mounts it with fs.Sub(Static, "static") and falls back to
// index.html for client-side routes.
//
//go:embed static
var Static embed.FS
