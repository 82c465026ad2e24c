// Package models defines the domain types for CheatSheeter.
package models

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/cheatsheeter/cheatsheeter/internal/apperr"
)

// MaxNameLength caps cheatsheet names so that "<name>.yaml" still fits in a
// single 255-byte filename component on common filesystems.
const MaxNameLength = 250

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName checks that name is usable as both identifier and filename
// stem: non-empty, at most MaxNameLength bytes, only letters, digits, hyphen,
// and underscore. Everything else (separators, dots, spaces, NUL) fails with
// apperr.ErrInvalidName.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", apperr.ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d bytes", apperr.ErrInvalidName, MaxNameLength)
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", apperr.ErrInvalidName, name)
	}
	return nil
}

// CheatSheet pairs a name with its document.
type CheatSheet struct {
	Name string         `json:"name"`
	Data CheatSheetData `json:"data"`
}

// CheatSheetData is the document body exactly as persisted to YAML.
type CheatSheetData struct {
	Title      string     `json:"title" yaml:"title"`
	Columns    int        `json:"columns" yaml:"columns"`
	Categories []Category `json:"categories" yaml:"categories"`
}

// Category groups items under a heading. Slice order is display order.
type Category struct {
	Name   string `json:"name" yaml:"name"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
	Items  []Item `json:"items" yaml:"items"`
}

// Item is a single command/description pair.
type Item struct {
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description" yaml:"description"`
}

// Validate checks the document structure: title present, columns at least 1
// when set, every category and item well-formed. Nested failures carry the
// offending slice index in the error key.
func (d CheatSheetData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.Columns, validation.Min(1)),
		validation.Field(&d.Categories),
	)
}

// Validate checks a single category.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Column, validation.Min(1)),
		validation.Field(&c.Items),
	)
}

// Validate checks a single item.
func (i Item) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Command, validation.Required),
		validation.Field(&i.Description, validation.Required),
	)
}

// Normalized returns a copy with defaults applied: unset columns becomes 1
// and nil category/item slices become empty ones. The store only persists
// normalized documents, so a save/load round-trip is exact. The receiver is
// left untouched.
func (d CheatSheetData) Normalized() CheatSheetData {
	out := d
	if out.Columns < 1 {
		out.Columns = 1
	}
	out.Categories = make([]Category, len(d.Categories))
	copy(out.Categories, d.Categories)
	for i := range out.Categories {
		if out.Categories[i].Items == nil {
			out.Categories[i].Items = []Item{}
		}
	}
	return out
}
