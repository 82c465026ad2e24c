package mcpserver

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cheatsheeter/cheatsheeter/internal/sheetservice"
	"github.com/cheatsheeter/cheatsheeter/internal/testutil"
)

const sampleYAML = `title: Git Commands
columns: 2
categories:
  - name: Branching
    items:
      - command: git switch -c feature
        description: Create and switch to a new branch
`

func testServer(t *testing.T) (*Server, *sheetservice.Service) {
	t.Helper()
	svc, _ := testutil.TestService(t)
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_cheatsheets":
		result, err = srv.listCheatSheets(ctx, req)
	case "read_cheatsheet":
		result, err = srv.readCheatSheet(ctx, req)
	case "create_cheatsheet":
		result, err = srv.createCheatSheet(ctx, req)
	case "update_cheatsheet":
		result, err = srv.updateCheatSheet(ctx, req)
	case "get_cheatsheet_format":
		result, err = srv.getCheatSheetFormat(ctx, req)
	case "import_cheatsheet":
		result, err = srv.importCheatSheet(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndReadCheatSheet(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_cheatsheet", map[string]interface{}{
		"name": "git",
		"data": sampleYAML,
	})
	if text := resultText(r); text != "created: git" {
		t.Errorf("create result = %q", text)
	}

	r = callTool(t, srv, "read_cheatsheet", map[string]interface{}{"name": "git"})
	text := resultText(r)
	if !strings.Contains(text, "title: Git Commands") {
		t.Errorf("read result missing title: %q", text)
	}
	if !strings.Contains(text, "git switch -c feature") {
		t.Errorf("read result missing command: %q", text)
	}
}

func TestCreateCheatSheet_InvalidYAML(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_cheatsheet", map[string]interface{}{
		"name": "broken",
		"data": "title: [unclosed",
	})
	if !r.IsError {
		t.Error("expected error for malformed YAML")
	}
}

func TestCreateCheatSheet_UnknownField(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_cheatsheet", map[string]interface{}{
		"name": "typo",
		"data": "tittle: Git\n",
	})
	if !r.IsError {
		t.Error("expected error for unknown field")
	}
}

func TestCreateCheatSheet_ValidationError(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "create_cheatsheet", map[string]interface{}{
		"name": "untitled",
		"data": "columns: 1\n",
	})
	if !r.IsError {
		t.Fatal("expected validation error")
	}
	if text := resultText(r); !strings.Contains(text, "title") {
		t.Errorf("error text = %q, want title mentioned", text)
	}
}

func TestCreateCheatSheet_Duplicate(t *testing.T) {
	srv, _ := testServer(t)

	_ = callTool(t, srv, "create_cheatsheet", map[string]interface{}{"name": "dup", "data": sampleYAML})
	r := callTool(t, srv, "create_cheatsheet", map[string]interface{}{"name": "dup", "data": sampleYAML})
	if !r.IsError {
		t.Fatal("expected error for duplicate create")
	}
	if text := resultText(r); !strings.Contains(text, "already exists") {
		t.Errorf("error text = %q", text)
	}
}

func TestReadCheatSheet_Missing(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "read_cheatsheet", map[string]interface{}{"name": "nope"})
	if !r.IsError {
		t.Error("expected error for missing cheatsheet")
	}
}

func TestListCheatSheets(t *testing.T) {
	srv, svc := testServer(t)
	ctx := context.Background()
	for _, name := range []string{"zsh", "docker"} {
		if _, err := svc.Create(ctx, name, testutil.SampleData(name)); err != nil {
			t.Fatal(err)
		}
	}

	r := callTool(t, srv, "list_cheatsheets", map[string]interface{}{})
	if text := resultText(r); text != "docker\nzsh" {
		t.Errorf("list = %q, want docker\\nzsh", text)
	}

	r = callTool(t, srv, "list_cheatsheets", map[string]interface{}{"query": "DOC"})
	if text := resultText(r); text != "docker" {
		t.Errorf("filtered list = %q, want docker", text)
	}
}

func TestListCheatSheets_Empty(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "list_cheatsheets", map[string]interface{}{})
	if text := resultText(r); text != "no cheatsheets found" {
		t.Errorf("empty list = %q", text)
	}
}

func TestUpdateCheatSheet(t *testing.T) {
	srv, _ := testServer(t)

	_ = callTool(t, srv, "create_cheatsheet", map[string]interface{}{"name": "git", "data": sampleYAML})

	r := callTool(t, srv, "update_cheatsheet", map[string]interface{}{
		"name": "git",
		"data": "title: Git Basics\ncategories: []\n",
	})
	if text := resultText(r); text != "updated: git" {
		t.Errorf("update result = %q", text)
	}

	r = callTool(t, srv, "read_cheatsheet", map[string]interface{}{"name": "git"})
	if text := resultText(r); !strings.Contains(text, "title: Git Basics") {
		t.Errorf("read after update = %q", text)
	}
}

func TestUpdateCheatSheet_Missing(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "update_cheatsheet", map[string]interface{}{
		"name": "ghost",
		"data": sampleYAML,
	})
	if !r.IsError {
		t.Fatal("expected error for missing cheatsheet")
	}
	if text := resultText(r); !strings.Contains(text, "not found") {
		t.Errorf("error text = %q", text)
	}
}

func TestGetCheatSheetFormat(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_cheatsheet_format", map[string]interface{}{})
	if text := resultText(r); text != FormatContract {
		t.Errorf("format result = %q", text)
	}
}

func TestImportCheatSheet_DataURI(t *testing.T) {
	srv, _ := testServer(t)

	uri := "data:application/yaml;base64," + base64.StdEncoding.EncodeToString([]byte(sampleYAML))
	r := callTool(t, srv, "import_cheatsheet", map[string]interface{}{
		"url":  uri,
		"name": "imported-git",
	})
	if text := resultText(r); text != "imported: imported-git" {
		t.Errorf("import result = %q", text)
	}

	r = callTool(t, srv, "read_cheatsheet", map[string]interface{}{"name": "imported-git"})
	if text := resultText(r); !strings.Contains(text, "title: Git Commands") {
		t.Errorf("read after import = %q", text)
	}
}

func TestImportCheatSheet_DataURIWithoutName(t *testing.T) {
	srv, _ := testServer(t)

	uri := "data:application/yaml;base64," + base64.StdEncoding.EncodeToString([]byte(sampleYAML))
	r := callTool(t, srv, "import_cheatsheet", map[string]interface{}{"url": uri})
	if !r.IsError {
		t.Error("expected error when no name can be derived")
	}
}

func TestImportCheatSheet_BadBase64(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "import_cheatsheet", map[string]interface{}{
		"url":  "data:;base64,!!!",
		"name": "x",
	})
	if !r.IsError {
		t.Error("expected error for invalid base64")
	}
}

func TestImportCheatSheet_SchemeRejected(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "import_cheatsheet", map[string]interface{}{
		"url":  "ftp://example.com/sheet.yaml",
		"name": "x",
	})
	if !r.IsError {
		t.Fatal("expected error for non-http scheme")
	}
	if text := resultText(r); !strings.Contains(text, "unsupported scheme") {
		t.Errorf("error text = %q", text)
	}
}

func TestImportCheatSheet_BlockedHost(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "import_cheatsheet", map[string]interface{}{
		"url":  "http://127.0.0.1/sheet.yaml",
		"name": "x",
	})
	if !r.IsError {
		t.Fatal("expected error for loopback host")
	}
	if text := resultText(r); !strings.Contains(text, "blocked host") {
		t.Errorf("error text = %q", text)
	}
}

func TestCheckBlockedHost(t *testing.T) {
	for _, host := range []string{"127.0.0.1", "::1", "169.254.169.254", "metadata.google.internal"} {
		if err := checkBlockedHost(host); err == nil {
			t.Errorf("checkBlockedHost(%q) = nil, want error", host)
		}
	}
	if err := checkBlockedHost("93.184.216.34"); err != nil {
		t.Errorf("public address blocked: %v", err)
	}
}

func TestSheetNameFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://example.com/sheets/git-commands.yaml", "git-commands"},
		{"https://example.com/tmux.yml", "tmux"},
		{"https://example.com/my%20sheet.yaml", "my_sheet"},
		{"https://example.com/", ""},
		{"data:;base64,eA==", ""},
	}
	for _, c := range cases {
		if got := sheetNameFromURL(c.url); got != c.want {
			t.Errorf("sheetNameFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}
