package apperr

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidName   = errors.New("invalid name")
	ErrCorruptData   = errors.New("corrupt data")
)

// FieldError pinpoints a single invalid field by its path, e.g.
// "categories[1].items[0].command".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	if f.Path == "" {
		return f.Message
	}
	return f.Path + ": " + f.Message
}

// ValidationError reports structural validation failures, one FieldError per
// invalid field, sorted by path.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Details(), "; ")
}

// Details renders the field errors as "path: message" strings.
func (e *ValidationError) Details() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.String()
	}
	return out
}

// Validation converts an ozzo-validation error into a *ValidationError,
// flattening nested validation.Errors maps into dotted field paths with
// bracketed slice indexes. A nil err returns nil.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	ve := &ValidationError{}
	flatten("", err, &ve.Fields)
	sort.Slice(ve.Fields, func(i, j int) bool { return ve.Fields[i].Path < ve.Fields[j].Path })
	return ve
}

func flatten(path string, err error, out *[]FieldError) {
	errs, ok := err.(validation.Errors)
	if !ok {
		*out = append(*out, FieldError{Path: path, Message: err.Error()})
		return
	}
	for key, sub := range errs {
		if sub == nil {
			continue
		}
		flatten(joinPath(path, key), sub, out)
	}
}

// joinPath appends a path segment: numeric keys come from slice element
// validation and render as "[n]", everything else as a dotted field name.
func joinPath(path, key string) string {
	if _, err := strconv.Atoi(key); err == nil {
		return path + "[" + key + "]"
	}
	if path == "" {
		return key
	}
	return path + "." + key
}
