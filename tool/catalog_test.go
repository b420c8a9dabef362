package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonwraymond/tooldiscovery/tooldoc"

	"github.com/jonwraymond/adablock/params"
)

func newTestCatalog(t *testing.T, runner *scriptedRunner) (*Catalog, *Backend) {
	t.Helper()
	b := NewBackend(newTestExecutor(t, runner))
	c := NewCatalog(Options{})
	if err := c.Register(context.Background(), b); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return c, b
}

func TestDefinition(t *testing.T) {
	def := Definition()
	if def.Namespace != Namespace || def.Name != Name {
		t.Errorf("Definition() = %s:%s, want %s", def.Namespace, def.Name, ID)
	}
	if def.InputSchema == nil {
		t.Fatal("InputSchema is nil")
	}
	if diff := cmp.Diff([]any{ArgCode}, inputSchema()["required"]); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_SearchTools(t *testing.T) {
	c, _ := newTestCatalog(t, &scriptedRunner{})

	results, err := c.SearchTools(context.Background(), "execute", 10)
	if err != nil {
		t.Fatalf("SearchTools() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("SearchTools() returned no results")
	}
	if results[0].ID != ID {
		t.Errorf("results[0].ID = %q, want %q", results[0].ID, ID)
	}
}

func TestCatalog_GetToolDoc(t *testing.T) {
	c, _ := newTestCatalog(t, &scriptedRunner{})

	doc, err := c.GetToolDoc(context.Background(), ID, tooldoc.DetailFull)
	if err != nil {
		t.Fatalf("GetToolDoc() error = %v", err)
	}
	if doc.Tool == nil || doc.Tool.Name != Name {
		t.Errorf("doc.Tool = %v, want name %q", doc.Tool, Name)
	}
	if doc.Summary != Doc().Summary {
		t.Errorf("doc.Summary = %q, want %q", doc.Summary, Doc().Summary)
	}
}

func TestCatalog_RunTool(t *testing.T) {
	runner := &scriptedRunner{output: "Hello\n"}
	c, _ := newTestCatalog(t, runner)

	res, err := c.RunTool(context.Background(), ID, map[string]any{ArgCode: helloSource})
	if err != nil {
		t.Fatalf("RunTool() error = %v", err)
	}
	out, ok := res.Value.(Output)
	if !ok {
		t.Fatalf("Value = %T, want Output", res.Value)
	}
	if out.Text != "Hello\n" || out.Failed || out.Mode != "execute" {
		t.Errorf("Output = %+v", out)
	}
	if out.RunID == "" {
		t.Error("RunID is empty")
	}
	if res.ToolID != ID {
		t.Errorf("ToolID = %q, want %q", res.ToolID, ID)
	}
	if runner.count() != 2 {
		t.Errorf("runner calls = %d, want 2", runner.count())
	}
}

func TestCatalog_RunTool_CompileFailureIsOutput(t *testing.T) {
	runner := &scriptedRunner{compileFail: "hello.adb:1:1: error: bad\n"}
	c, _ := newTestCatalog(t, runner)

	res, err := c.RunTool(context.Background(), ID, map[string]any{
		ArgCode:   helloSource,
		ArgParams: map[string]string{"ada-version": "2012"},
	})
	if err != nil {
		t.Fatalf("RunTool() error = %v", err)
	}
	out := res.Value.(Output)
	if !out.Failed || out.Text != "hello.adb:1:1: error: bad\n" {
		t.Errorf("Output = %+v, want failed with diagnostics", out)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Message != "bad" {
		t.Errorf("Diagnostics = %+v", out.Diagnostics)
	}
}

func TestCatalog_RunTool_Errors(t *testing.T) {
	tests := []struct {
		name    string
		toolID  string
		args    map[string]any
		wantErr error
		invalid bool
	}{
		{name: "unknown tool", toolID: "ada:session", args: map[string]any{ArgCode: helloSource}, wantErr: ErrToolNotFound},
		{name: "missing code", toolID: ID, args: map[string]any{}, wantErr: ErrInvalidArguments, invalid: true},
		{name: "params not an object", toolID: ID, args: map[string]any{ArgCode: helloSource, ArgParams: "prove"}, wantErr: ErrInvalidArguments, invalid: true},
		{name: "bad parameter token", toolID: ID, args: map[string]any{ArgCode: helloSource, ArgParams: map[string]any{"prove": "yes"}}, wantErr: params.ErrInvalidParameter, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCatalog(t, &scriptedRunner{})
			_, err := c.RunTool(context.Background(), tt.toolID, tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RunTool() error = %v, want %v", err, tt.wantErr)
			}
			if IsInvalidInput(err) != tt.invalid {
				t.Errorf("IsInvalidInput(%v) = %v, want %v", err, IsInvalidInput(err), tt.invalid)
			}
		})
	}
}

func TestCatalog_RunTool_DisabledBackend(t *testing.T) {
	c, b := newTestCatalog(t, &scriptedRunner{})
	b.SetEnabled(false)

	_, err := c.RunTool(context.Background(), ID, map[string]any{ArgCode: helloSource})
	if !errors.Is(err, ErrBackendDisabled) {
		t.Errorf("RunTool() error = %v, want ErrBackendDisabled", err)
	}
	if b.Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}

func TestCatalog_RegisterNil(t *testing.T) {
	c := NewCatalog(Options{})
	if err := c.Register(context.Background(), nil); !errors.Is(err, ErrBackendRequired) {
		t.Errorf("Register(nil) error = %v, want ErrBackendRequired", err)
	}
}

func TestBackend_ListTools(t *testing.T) {
	b := NewBackend(newTestExecutor(t, &scriptedRunner{}))
	if b.Kind() != "local" || b.Name() != BackendName {
		t.Errorf("backend = %s/%s", b.Kind(), b.Name())
	}
	tools, err := b.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if len(tools) != 1 || tools[0].Name != Name || tools[0].Namespace != Namespace {
		t.Errorf("ListTools() = %+v", tools)
	}
}

func TestCatalog_ListToolExamples(t *testing.T) {
	c, _ := newTestCatalog(t, &scriptedRunner{})

	examples, err := c.ListToolExamples(context.Background(), ID, 2)
	if err != nil {
		t.Fatalf("ListToolExamples() error = %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("len(examples) = %d, want 2", len(examples))
	}
	if examples[0].Title != Doc().Examples[0].Title {
		t.Errorf("examples[0].Title = %q, want %q", examples[0].Title, Doc().Examples[0].Title)
	}
}
