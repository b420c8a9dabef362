package tool

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/adablock/block"
)

// Errors returned by Backend.
var (
	ErrBackendDisabled = errors.New("backend disabled")
	ErrToolNotFound    = errors.New("tool not found in backend")
)

// BackendName is the name the execute tool's handler is registered under.
const BackendName = "ada-block"

// Backend serves the Ada tools from in-process handlers.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: passed through to the handler.
// - Errors: ErrBackendDisabled, ErrToolNotFound, or the handler's error.
type Backend struct {
	name     string
	enabled  bool
	handlers map[string]entry
	mu       sync.RWMutex
}

type entry struct {
	tool    model.Tool
	doc     *tooldoc.DocEntry
	handler HandlerFunc
}

// NewBackend creates a backend serving the execute tool backed by exec.
func NewBackend(exec *block.Executor) *Backend {
	b := &Backend{
		name:     BackendName,
		enabled:  true,
		handlers: make(map[string]entry),
	}
	doc := Doc()
	b.handlers[Name] = entry{tool: Definition(), doc: &doc, handler: ExecuteHandler(exec)}
	return b
}

// Kind returns the backend kind.
func (b *Backend) Kind() string {
	return "local"
}

// Name returns the backend instance name.
func (b *Backend) Name() string {
	return b.name
}

// Enabled returns whether the backend is enabled.
func (b *Backend) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

// SetEnabled enables or disables the backend.
func (b *Backend) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// ListTools returns the tools served by this backend, sorted by name.
func (b *Backend) ListTools(_ context.Context) ([]model.Tool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Tool, 0, len(b.handlers))
	for _, e := range b.handlers {
		t := e.tool
		t.Tags = model.NormalizeTags(t.Tags)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Execute invokes a tool by its name within the backend.
func (b *Backend) Execute(ctx context.Context, tool string, args map[string]any) (any, error) {
	b.mu.RLock()
	enabled := b.enabled
	e, ok := b.handlers[tool]
	b.mu.RUnlock()

	if !enabled {
		return nil, ErrBackendDisabled
	}
	if !ok || e.handler == nil {
		return nil, ErrToolNotFound
	}
	if args == nil {
		args = map[string]any{}
	}
	return e.handler(ctx, args)
}

// docFor returns the documentation registered with a tool.
func (b *Backend) docFor(tool string) (*tooldoc.DocEntry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.handlers[tool]
	if !ok || e.doc == nil {
		return nil, false
	}
	return e.doc, true
}
