package api

import (
	"github.com/cheatsheeter/cheatsheeter/internal/models"
)

// CreateCheatSheetRequest is the request body for creating a cheatsheet.
type CreateCheatSheetRequest struct {
	Name string                `json:"name" example:"git-commands" validate:"required"`
	Data models.CheatSheetData `json:"data" validate:"required"`
}

// UpdateCheatSheetRequest is the request body for replacing a cheatsheet's
// document.
type UpdateCheatSheetRequest struct {
	Data models.CheatSheetData `json:"data" validate:"required"`
}

// CheatSheetResponse is the full cheatsheet response type (aliased from the
// domain layer).
type CheatSheetResponse = models.CheatSheet

// ListResponse wraps a name listing.
type ListResponse struct {
	Cheatsheets []string `json:"cheatsheets" validate:"required"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status" example:"ok" validate:"required"`
}
