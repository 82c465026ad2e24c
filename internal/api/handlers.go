package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/cheatsheeter/cheatsheeter/internal/apperr"
	"github.com/cheatsheeter/cheatsheeter/internal/sheetservice"
)

const maxBodyBytes = 1 << 20 // 1 MB

// Handler holds API route handlers.
type Handler struct {
	svc *sheetservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *sheetservice.Service) *Handler {
	return &Handler{svc: svc}
}

// sheetName extracts the cheatsheet name from the URL. Encoded characters
// are decoded first so that e.g. %2E%2E is rejected by name validation, not
// silently routed.
func sheetName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeError maps service errors onto API responses. The taxonomy is shared
// by every handler: invalid names and validation failures are client errors,
// corrupt stored data is a server error distinct from absence.
func writeError(w http.ResponseWriter, op, name string, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.Is(err, apperr.ErrInvalidName):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid cheatsheet name"))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("cheatsheet already exists"))
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, validationBody(ve))
	case errors.Is(err, apperr.ErrCorruptData):
		slog.Error(op+" failed: stored data corrupt", slog.String("name", name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("stored cheatsheet is corrupt"))
	default:
		slog.Error(op+" failed", slog.String("name", name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Health handles GET /api/health.
//
//	@Summary		Health check
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ListCheatSheets handles GET /api/cheatsheets.
//
//	@Summary		List cheatsheet names, sorted, with optional substring filter
//	@Tags			cheatsheets
//	@Produce		json
//	@Param			q	query		string	false	"Substring filter on names"
//	@Success		200	{object}	ListResponse
//	@Router			/cheatsheets [get]
func (h *Handler) ListCheatSheets(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("list cheatsheets failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Cheatsheets: names})
}

// GetCheatSheet handles GET /api/cheatsheets/{name}.
//
//	@Summary		Get a single cheatsheet by name
//	@Tags			cheatsheets
//	@Produce		json
//	@Param			name	path		string	true	"Cheatsheet name"
//	@Success		200		{object}	CheatSheetResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/cheatsheets/{name} [get]
func (h *Handler) GetCheatSheet(w http.ResponseWriter, r *http.Request) {
	name := sheetName(r)
	sheet, err := h.svc.Get(r.Context(), name)
	if err != nil {
		writeError(w, "get cheatsheet", name, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// CreateCheatSheet handles POST /api/cheatsheets.
//
//	@Summary		Create a new cheatsheet
//	@Tags			cheatsheets
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateCheatSheetRequest	true	"Cheatsheet to create"
//	@Success		201		{object}	CheatSheetResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Router			/cheatsheets [post]
func (h *Handler) CreateCheatSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateCheatSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	sheet, err := h.svc.Create(r.Context(), req.Name, req.Data)
	if err != nil {
		writeError(w, "create cheatsheet", req.Name, err)
		return
	}
	writeJSON(w, http.StatusCreated, sheet)
}

// UpdateCheatSheet handles PUT /api/cheatsheets/{name}.
//
//	@Summary		Replace a cheatsheet's document wholesale
//	@Tags			cheatsheets
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string					true	"Cheatsheet name"
//	@Param			body	body		UpdateCheatSheetRequest	true	"Replacement document"
//	@Success		200		{object}	CheatSheetResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/cheatsheets/{name} [put]
func (h *Handler) UpdateCheatSheet(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	name := sheetName(r)
	var req UpdateCheatSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	sheet, err := h.svc.Update(r.Context(), name, req.Data)
	if err != nil {
		writeError(w, "update cheatsheet", name, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// DeleteCheatSheet handles DELETE /api/cheatsheets/{name}.
//
//	@Summary		Delete a cheatsheet
//	@Tags			cheatsheets
//	@Param			name	path	string	true	"Cheatsheet name"
//	@Success		204		"Cheatsheet deleted"
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Router			/cheatsheets/{name} [delete]
func (h *Handler) DeleteCheatSheet(w http.ResponseWriter, r *http.Request) {
	name := sheetName(r)
	if err := h.svc.Delete(r.Context(), name); err != nil {
		writeError(w, "delete cheatsheet", name, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
