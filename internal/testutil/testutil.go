// Package testutil provides shared test helpers for setting up cheatsheet
// stores and services.
package testutil

import (
	"testing"

	"github.com/cheatsheeter/cheatsheeter/internal/models"
	"github.com/cheatsheeter/cheatsheeter/internal/sheetservice"
	"github.com/cheatsheeter/cheatsheeter/internal/storage"
)

// TestStore creates a temporary store directory with a storage.Provider.
func TestStore(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// TestService creates a sheet service backed by a temporary store directory.
func TestService(t *testing.T) (*sheetservice.Service, string) {
	t.Helper()
	dir, store := TestStore(t)
	return sheetservice.New(store), dir
}

// SampleData returns a small valid document for tests.
func SampleData(title string) models.CheatSheetData {
	return models.CheatSheetData{
		Title:   title,
		Columns: 1,
		Categories: []models.Category{
			{Name: "Basics", Items: []models.Item{
				{Command: "example --help", Description: "show help"},
			}},
		},
	}
}
