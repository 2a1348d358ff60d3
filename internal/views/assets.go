package views

import "embed"

// Assets holds the static files served under /static/.
//
//go:embed static
var Assets embed.FS
