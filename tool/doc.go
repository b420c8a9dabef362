// Package tool exposes Ada block execution as the tool "ada:execute".
//
// The tool is described in the toolfoundation model ([Definition], [Doc]),
// served from an in-process [Backend], made discoverable and callable by ID
// through a [Catalog] over a tooldiscovery index, and published over the Model
// Context Protocol by [NewServer].
//
// Arguments:
//
//	{"code": "<Ada source>", "params": {"unit": "hello", "prove": "t", ...}}
//
// The value returned is an [Output]. A failed compile, run, or proof is not a
// call error: Output.Failed is set and Output.Text holds the diagnostics.
//
// Usage:
//
//	exec, _ := block.New(block.Config{})
//	catalog := tool.NewCatalog(tool.Options{})
//	_ = catalog.Register(ctx, tool.NewBackend(exec))
//	res, err := catalog.RunTool(ctx, tool.ID, map[string]any{"code": src})
package tool
