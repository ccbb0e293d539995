// Package site serves the embedded browser client for the session API.
package site

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded client.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Expose the raw FS if the sub-tree is missing.
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

// Register attaches the client routes to mux. Only GET requests not claimed
// by a more specific API route reach the file server.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /", http.FileServer(FS()))
}
