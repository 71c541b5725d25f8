package cobraext

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/relux-works/skill-grid-query/gridquery"
	"github.com/spf13/cobra"
)

type testItem struct {
	ID       string
	Name     string
	Priority int
}

func newTestSchema(t *testing.T) *gridquery.Schema[*testItem] {
	t.Helper()
	s := gridquery.NewSchema[*testItem]()
	gridquery.StringField(s, "id", func(item *testItem) string { return item.ID })
	gridquery.StringField(s, "name", func(item *testItem) string { return item.Name })
	gridquery.IntField(s, "priority", func(item *testItem) int { return item.Priority })

	items := []*testItem{
		{ID: "T1", Name: "alpha", Priority: 3},
		{ID: "T2", Name: "beta", Priority: 7},
		{ID: "T3", Name: "gamma", Priority: 5},
	}
	s.SetLoader(func() ([]*testItem, error) {
		return items, nil
	})
	return s
}

func testConfig() Config[*testItem] {
	return Config[*testItem]{
		Defaults: gridquery.Defaults{SortField: "name", SortDirection: gridquery.Asc, PageSize: 2},
		ID:       func(item *testItem) any { return item.ID },
	}
}

// run executes cmd with args and returns stdout and stderr.
func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func rowIDs(g gridquery.GridModel) []string {
	var out []string
	for _, row := range g.Rows {
		out = append(out, row.ID.(string))
	}
	return out
}

func TestQueryCommand_JSON(t *testing.T) {
	cmd := QueryCommand(newTestSchema(t), testConfig())
	out, _, err := run(t, cmd, "--format", "json", "--filter", "priority:ge:5", "--sort", "priority", "--order", "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var g gridquery.GridModel
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("output is not a grid: %v\n%s", err, out)
	}
	if diff := cmp.Diff([]string{"T2", "T3"}, rowIDs(g)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if g.Page != 1 || g.Records != 2 || g.Total != 1 {
		t.Errorf("paging = %d/%d/%d, want 1/2/1", g.Page, g.Records, g.Total)
	}
	if diff := cmp.Diff([]string{"id", "name", "priority"}, g.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryCommand_Compact(t *testing.T) {
	cmd := QueryCommand(newTestSchema(t), testConfig())
	out, _, err := run(t, cmd, "--format", "compact", "--columns", "name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "page:1 total:2 records:3\n" +
		"id,name\n" +
		"T1,alpha\n" +
		"T2,beta\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryCommand_SecondPage(t *testing.T) {
	cmd := QueryCommand(newTestSchema(t), testConfig())
	out, _, err := run(t, cmd, "--format", "compact", "--columns", "name", "--page", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "page:2 total:2 records:3\n") || !strings.HasSuffix(out, "T3,gamma\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestQueryCommand_RequestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	doc := `
_search: true
filters:
  groupOp: OR
  rules:
    - {field: name, op: eq, data: alpha}
    - {field: name, op: eq, data: gamma}
sidx: priority
sord: desc
rows: 10
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := QueryCommand(newTestSchema(t), testConfig())
	out, _, err := run(t, cmd, "--format", "json", "--request", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var g gridquery.GridModel
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("output is not a grid: %v", err)
	}
	if diff := cmp.Diff([]string{"T3", "T1"}, rowIDs(g)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	// Flags override the file.
	cmd = QueryCommand(newTestSchema(t), testConfig())
	out, _, err = run(t, cmd, "--format", "json", "--request", path, "--order", "asc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g = gridquery.GridModel{}
	if err := json.Unmarshal([]byte(out), &g); err != nil {
		t.Fatalf("output is not a grid: %v", err)
	}
	if diff := cmp.Diff([]string{"T1", "T3"}, rowIDs(g)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryCommand_SkippedRulesReported(t *testing.T) {
	cmd := QueryCommand(newTestSchema(t), testConfig())
	out, errOut, err := run(t, cmd, "--format", "compact", "--columns", "name", "--filter", "bogus:eq:1", "--filter", "name:bw:g")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut, "skipped: filter bogus eq") {
		t.Errorf("stderr = %q, want a skipped filter line", errOut)
	}
	if !strings.HasSuffix(out, "T3,gamma\n") || strings.Contains(out, "alpha") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestQueryCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing format", []string{"--sort", "name"}, "format"},
		{"unknown format", []string{"--format", "xml"}, `unknown format "xml"`},
		{"bad filter", []string{"--format", "json", "--filter", "name"}, `invalid filter "name"`},
		{"unknown column", []string{"--format", "json", "--columns", "nope"}, "nope"},
		{"missing request file", []string{"--format", "json", "--request", "/nonexistent/request.yaml"}, "request.yaml"},
		{"positional args", []string{"--format", "json", "extra"}, "extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := QueryCommand(newTestSchema(t), testConfig())
			_, _, err := run(t, cmd, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestQueryCommand_LoaderError(t *testing.T) {
	s := newTestSchema(t)
	boom := errors.New("store offline")
	s.SetLoader(func() ([]*testItem, error) { return nil, boom })

	_, _, err := run(t, QueryCommand(s, testConfig()), "--format", "json")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestFieldsCommand(t *testing.T) {
	out, _, err := run(t, FieldsCommand(newTestSchema(t)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff("id\nname\npriority\n", out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestAddCommands(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	AddCommands(root, newTestSchema(t), testConfig())

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	if diff := cmp.Diff([]string{"fields", "q"}, names); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    gridquery.FilterRule
		wantErr bool
	}{
		{"name:eq:alpha", gridquery.FilterRule{Field: "name", Operator: "eq", Data: "alpha"}, false},
		{"placed:ge:2024-03-15T10:00:00Z", gridquery.FilterRule{Field: "placed", Operator: "ge", Data: "2024-03-15T10:00:00Z"}, false},
		{"note:nu", gridquery.FilterRule{Field: "note", Operator: "nu"}, false},
		{"name:eq:", gridquery.FilterRule{Field: "name", Operator: "eq"}, false},
		{"name", gridquery.FilterRule{}, true},
		{":eq:x", gridquery.FilterRule{}, true},
		{"name::x", gridquery.FilterRule{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRule(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
