// Package sheetservice coordinates storage, codec, and validation into the
// cheatsheet CRUD operations used by the API, the CLI, and the MCP server.
package sheetservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cheatsheeter/cheatsheeter/internal/apperr"
	"github.com/cheatsheeter/cheatsheeter/internal/codec"
	"github.com/cheatsheeter/cheatsheeter/internal/models"
	"github.com/cheatsheeter/cheatsheeter/internal/storage"
)

// Service owns all reads and writes of stored cheatsheets.
type Service struct {
	store storage.Provider
}

// New creates a new cheatsheet service.
func New(store storage.Provider) *Service {
	return &Service{store: store}
}

// List returns the stored cheatsheet names, sorted. A non-empty query keeps
// only names containing it, case-insensitively.
func (s *Service) List(_ context.Context, query string) ([]string, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return names, nil
	}
	needle := strings.ToLower(query)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), needle) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Get loads, decodes, and validates a stored cheatsheet. A missing file maps
// to ErrNotFound. Content that fails to parse or validate maps to
// ErrCorruptData, so on-disk damage is never reported as absence.
func (s *Service) Get(_ context.Context, name string) (*models.CheatSheet, error) {
	raw, err := s.store.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	data, err := codec.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrCorruptData, name, err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrCorruptData, name, err)
	}
	return &models.CheatSheet{Name: name, Data: data.Normalized()}, nil
}

// Create validates and stores a new cheatsheet. The underlying write is an
// atomic create-if-absent, so two racing creates for the same name cannot
// both succeed.
func (s *Service) Create(_ context.Context, name string, data models.CheatSheetData) (*models.CheatSheet, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	normalized := data.Normalized()
	raw, err := codec.Encode(normalized)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(name, raw); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, apperr.ErrAlreadyExists
		}
		return nil, err
	}
	return &models.CheatSheet{Name: name, Data: normalized}, nil
}

// Update replaces an existing cheatsheet's document wholesale. Concurrent
// updates are last-write-wins; the atomic rename guarantees readers see one
// complete document or the other, never a mix.
func (s *Service) Update(_ context.Context, name string, data models.CheatSheetData) (*models.CheatSheet, error) {
	exists, err := s.store.Exists(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	if err := data.Validate(); err != nil {
		return nil, apperr.Validation(err)
	}
	normalized := data.Normalized()
	raw, err := codec.Encode(normalized)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(name, raw); err != nil {
		return nil, err
	}
	return &models.CheatSheet{Name: name, Data: normalized}, nil
}

// Delete removes a stored cheatsheet.
func (s *Service) Delete(_ context.Context, name string) error {
	if err := s.store.Delete(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return nil
}
