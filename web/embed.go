package web

import "embed"

// Templates embeds the HMS layouts, partials and page templates.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static embeds the stylesheet and other assets served under /static/.
//
//go:embed static/**/*
var Static embed.FS
