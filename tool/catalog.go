package tool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
)

// ErrBackendRequired is returned by Register for a nil backend.
var ErrBackendRequired = errors.New("tool: backend is required")

// Options configures a Catalog.
type Options struct {
	// Index provides tool discovery and registration.
	// Default: an in-memory index with BM25 search
	Index index.Index

	// Docs provides tool documentation. Entries are registered when the store
	// supports RegisterDoc, as tooldoc.InMemoryStore does.
	// Default: an in-memory store over Index
	Docs tooldoc.Store
}

// applyDefaults sets default values for unset optional fields.
func (o *Options) applyDefaults() {
	if o.Index == nil {
		o.Index = index.NewInMemoryIndex(index.IndexOptions{
			Searcher: search.NewBM25Searcher(search.BM25Config{}),
		})
	}
	if o.Docs == nil {
		o.Docs = tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: o.Index})
	}
}

// docRegistrar is implemented by doc stores that accept new entries.
type docRegistrar interface {
	RegisterDoc(id string, doc tooldoc.DocEntry) error
}

// Result is the outcome of a single tool call.
type Result struct {
	// Value is the return value from the tool.
	Value any

	// ToolID is the canonical ID of the executed tool.
	ToolID string

	// Duration is how long the tool took to execute.
	Duration time.Duration

	// Error is the handler's error, also returned by RunTool.
	Error error
}

// OK returns true if the result has no error.
func (r Result) OK() bool {
	return r.Error == nil
}

// Catalog makes backend tools discoverable and callable by tool ID.
type Catalog struct {
	index index.Index
	docs  tooldoc.Store

	mu     sync.RWMutex
	routes map[string]route
}

type route struct {
	backend *Backend
	name    string
}

// NewCatalog creates a Catalog.
func NewCatalog(opts Options) *Catalog {
	opts.applyDefaults()
	return &Catalog{
		index:  opts.Index,
		docs:   opts.Docs,
		routes: make(map[string]route),
	}
}

// Register indexes every tool of b and its documentation.
func (c *Catalog) Register(ctx context.Context, b *Backend) error {
	if b == nil {
		return ErrBackendRequired
	}
	tools, err := b.ListTools(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		id := t.Namespace + ":" + t.Name
		if err := c.index.RegisterTool(t, model.NewLocalBackend(b.Name())); err != nil {
			return fmt.Errorf("registering %s: %w", id, err)
		}
		if reg, ok := c.docs.(docRegistrar); ok {
			if doc, ok := b.docFor(t.Name); ok {
				if err := reg.RegisterDoc(id, *doc); err != nil {
					return fmt.Errorf("registering doc for %s: %w", id, err)
				}
			}
		}
		c.routes[id] = route{backend: b, name: t.Name}
	}
	return nil
}

// RunTool executes a registered tool by ID.
func (c *Catalog) RunTool(ctx context.Context, toolID string, args map[string]any) (Result, error) {
	c.mu.RLock()
	r, ok := c.routes[toolID]
	c.mu.RUnlock()
	if !ok {
		return Result{ToolID: toolID, Error: ErrToolNotFound}, fmt.Errorf("%w: %s", ErrToolNotFound, toolID)
	}

	start := time.Now()
	value, err := r.backend.Execute(ctx, r.name, args)
	res := Result{
		Value:    value,
		ToolID:   toolID,
		Duration: time.Since(start),
		Error:    err,
	}
	return res, err
}

// SearchTools finds tools matching a query.
func (c *Catalog) SearchTools(_ context.Context, query string, limit int) ([]index.Summary, error) {
	return c.index.Search(query, limit)
}

// GetToolDoc retrieves tool documentation at the specified detail level.
func (c *Catalog) GetToolDoc(_ context.Context, toolID string, level tooldoc.DetailLevel) (tooldoc.ToolDoc, error) {
	return c.docs.DescribeTool(toolID, level)
}

// ListToolExamples returns up to maxExamples usage examples for a tool.
func (c *Catalog) ListToolExamples(_ context.Context, toolID string, maxExamples int) ([]tooldoc.ToolExample, error) {
	return c.docs.ListExamples(toolID, maxExamples)
}

// Index returns the underlying tool index.
func (c *Catalog) Index() index.Index {
	return c.index
}

// DocStore returns the underlying documentation store.
func (c *Catalog) DocStore() tooldoc.Store {
	return c.docs
}
