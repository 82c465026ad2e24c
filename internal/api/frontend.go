package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the static frontend bundle from a directory.
// Paths that do not match a file fall back to index.html so client-side
// routes survive a page reload.
type FrontendHandler struct {
	root string
}

// NewFrontendHandler creates a handler serving files under root.
func NewFrontendHandler(root string) *FrontendHandler {
	return &FrontendHandler{root: root}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" {
		name = "index.html"
	}

	path, ok := h.safePath(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
		return
	}

	http.ServeFile(w, r, path)
}

// safePath resolves name inside the frontend root, rejecting anything
// that would escape it.
func (h *FrontendHandler) safePath(name string) (string, bool) {
	path := filepath.Join(h.root, filepath.Clean("/"+name))
	if path != h.root && !strings.HasPrefix(path, h.root+string(filepath.Separator)) {
		return "", false
	}

	return path, true
}
