// Package codec serializes cheatsheet documents to and from their on-disk
// YAML form.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cheatsheeter/cheatsheeter/internal/models"
)

// Decode parses YAML bytes into a CheatSheetData. Decoding is strict: unknown
// mapping keys are rejected, and nodes that do not fit the typed document
// fields fail. An empty document decodes to the zero value; callers validate
// the result.
func Decode(data []byte) (models.CheatSheetData, error) {
	var d models.CheatSheetData
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return models.CheatSheetData{}, nil
		}
		return models.CheatSheetData{}, fmt.Errorf("codec: decode: %w", err)
	}
	return d, nil
}

// Encode renders the document as YAML in struct field order.
func Encode(d models.CheatSheetData) ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("codec: encode: %w", err)
	}
	return out, nil
}
