package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cheatsheeter/cheatsheeter/internal/sheetservice"
)

// NewRouter creates a chi router with all API routes mounted.
// sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *sheetservice.Service, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Health.
	r.Get("/health", h.Health)

	// Cheatsheet CRUD.
	r.Get("/cheatsheets", h.ListCheatSheets)
	r.Post("/cheatsheets", h.CreateCheatSheet)
	r.Get("/cheatsheets/{name}", h.GetCheatSheet)
	r.Put("/cheatsheets/{name}", h.UpdateCheatSheet)
	r.Delete("/cheatsheets/{name}", h.DeleteCheatSheet)

	// SSE endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
