// Package site serves the root liveness banner.
package site

import (
	"context"
	"net/http"
)

// Banner is the plain-text body of GET /.
const Banner = "Careers Demo Assistant — Webhook OK"

// Register attaches the root banner to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", NewRootHandler(Banner).HandleRoot)
}

// RootHandler handles root path requests.
type RootHandler struct {
	banner string
}

// NewRootHandler creates a root handler answering with banner.
func NewRootHandler(banner string) *RootHandler {
	return &RootHandler{banner: banner}
}

// HandleRoot handles GET / requests. Every other path under / is a 404.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.banner))
}
