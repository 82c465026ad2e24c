package codec

import (
	"reflect"
	"strings"
	"testing"

	"github.com/cheatsheeter/cheatsheeter/internal/models"
)

func TestDecode_FullDocument(t *testing.T) {
	input := []byte(`title: Git Commands
columns: 2
categories:
  - name: Branching
    column: 1
    items:
      - command: git checkout -b foo
        description: create branch foo
  - name: Stashing
    items:
      - command: git stash
        description: stash changes
`)
	d, err := Decode(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Git Commands" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Columns != 2 {
		t.Errorf("columns = %d, want 2", d.Columns)
	}
	if len(d.Categories) != 2 {
		t.Fatalf("len(categories) = %d, want 2", len(d.Categories))
	}
	if d.Categories[0].Name != "Branching" || d.Categories[1].Name != "Stashing" {
		t.Errorf("category order not preserved: %v, %v", d.Categories[0].Name, d.Categories[1].Name)
	}
	if d.Categories[0].Items[0].Command != "git checkout -b foo" {
		t.Errorf("item command = %q", d.Categories[0].Items[0].Command)
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	d, err := Decode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(d, models.CheatSheetData{}) {
		t.Errorf("empty input should decode to zero value, got %+v", d)
	}
}

func TestDecode_UnknownFieldRejected(t *testing.T) {
	input := []byte("title: T\nextra: nope\n")
	if _, err := Decode(input); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestDecode_MalformedYAML(t *testing.T) {
	input := []byte("title: [unclosed\n")
	if _, err := Decode(input); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDecode_ForeignTagRejected(t *testing.T) {
	// Tags that would instantiate arbitrary types in other YAML
	// implementations must not decode into the document.
	input := []byte("title: !!python/object/apply:os.system [echo pwned]\n")
	if _, err := Decode(input); err == nil {
		t.Error("expected error for foreign tag")
	}
}

func TestDecode_ScalarDocumentRejected(t *testing.T) {
	if _, err := Decode([]byte("just a string\n")); err == nil {
		t.Error("expected error for non-mapping document")
	}
}

func TestDecode_WrongTypeRejected(t *testing.T) {
	input := []byte("title: T\ncolumns: not-a-number\n")
	if _, err := Decode(input); err == nil {
		t.Error("expected error for non-integer columns")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := models.CheatSheetData{
		Title:   "Docker",
		Columns: 3,
		Categories: []models.Category{
			{Name: "Images", Column: 1, Items: []models.Item{
				{Command: "docker build -t app .", Description: "build image"},
				{Command: "docker images", Description: "list images"},
			}},
			{Name: "Containers", Items: []models.Item{
				{Command: "docker ps", Description: "list running containers"},
			}},
		},
	}

	raw, err := Encode(d)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, d)
	}
}

func TestEncode_FieldOrder(t *testing.T) {
	raw, err := Encode(models.CheatSheetData{Title: "T", Columns: 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := string(raw)
	if !strings.HasPrefix(s, "title:") {
		t.Errorf("encoded document should start with title, got %q", s)
	}
	if strings.Index(s, "title:") > strings.Index(s, "columns:") {
		t.Errorf("title should precede columns: %q", s)
	}
}
