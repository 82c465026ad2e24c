package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cheatsheeter/cheatsheeter/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error   string   `json:"error" validate:"required"`
	Details []string `json:"details,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

func validationBody(ve *apperr.ValidationError) errResponse {
	return errResponse{Error: "validation failed", Details: ve.Details()}
}
