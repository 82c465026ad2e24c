package apperr

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestValidation_NilPassesThrough(t *testing.T) {
	if err := Validation(nil); err != nil {
		t.Errorf("Validation(nil) = %v, want nil", err)
	}
}

func TestValidation_FlattensNestedPaths(t *testing.T) {
	src := validation.Errors{
		"categories": validation.Errors{
			"1": validation.Errors{
				"items": validation.Errors{
					"0": validation.Errors{
						"command": errors.New("cannot be blank"),
					},
				},
			},
		},
	}

	err := Validation(src)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Fields) != 1 {
		t.Fatalf("len(Fields) = %d, want 1", len(ve.Fields))
	}
	if got := ve.Fields[0].Path; got != "categories[1].items[0].command" {
		t.Errorf("path = %q, want categories[1].items[0].command", got)
	}
	if got := ve.Fields[0].Message; got != "cannot be blank" {
		t.Errorf("message = %q", got)
	}
}

func TestValidation_SortsByPath(t *testing.T) {
	src := validation.Errors{
		"title":   errors.New("cannot be blank"),
		"columns": errors.New("must be no less than 1"),
	}

	err := Validation(src)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(ve.Fields))
	}
	if ve.Fields[0].Path != "columns" || ve.Fields[1].Path != "title" {
		t.Errorf("paths = [%q %q], want sorted [columns title]", ve.Fields[0].Path, ve.Fields[1].Path)
	}
}

func TestValidation_PlainErrorKeepsMessage(t *testing.T) {
	err := Validation(errors.New("something else"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if got := ve.Error(); got != "validation failed: something else" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	inner := Validation(validation.Errors{"title": errors.New("cannot be blank")})
	wrapped := fmt.Errorf("create sheet: %w", inner)

	var ve *ValidationError
	if !errors.As(wrapped, &ve) {
		t.Fatal("errors.As should find *ValidationError through wrapping")
	}
	if len(ve.Details()) != 1 || ve.Details()[0] != "title: cannot be blank" {
		t.Errorf("details = %v", ve.Details())
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrInvalidName, ErrCorruptData}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}
}
