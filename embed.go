package glassblog

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains static assets shipped with the framework:
// glassblog.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

func embeddedFS() fs.FS {
	sub, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		panic(err)
	}
	return sub
}
