package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/adablock/block"
	"github.com/jonwraymond/adablock/params"
	"github.com/jonwraymond/adablock/toolchain"
)

// ErrInvalidArguments indicates tool arguments of the wrong shape.
var ErrInvalidArguments = errors.New("invalid tool arguments")

// HandlerFunc is the function signature for tool handlers.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// Output is the value returned by the execute tool.
type Output struct {
	RunID  string     `json:"runId"`
	Mode   string     `json:"mode"`
	Text   string     `json:"text"`
	Table  [][]string `json:"table,omitempty"`
	Failed bool       `json:"failed,omitempty"`

	// Diagnostics are the located messages of a failed step.
	Diagnostics []toolchain.Diagnostic `json:"diagnostics,omitempty"`
}

// NewOutput converts a block result.
func NewOutput(res block.Result) Output {
	out := Output{
		RunID:  res.RunID,
		Mode:   string(res.Mode),
		Text:   res.Value.Text,
		Table:  res.Value.Table,
		Failed: !res.OK(),
	}
	var tcErr *toolchain.Error
	if errors.As(res.Error, &tcErr) {
		out.Diagnostics = tcErr.Diagnostics()
	}
	return out
}

// ExecuteHandler returns the handler of the execute tool. Toolchain failures
// are reported through Output.Failed with the diagnostics as Text; invalid
// arguments and parameter, configuration, or filesystem problems are errors.
func ExecuteHandler(exec *block.Executor) HandlerFunc {
	return func(ctx context.Context, args map[string]any) (any, error) {
		req, err := decodeRequest(args)
		if err != nil {
			return nil, err
		}
		res, err := exec.Execute(ctx, req)
		if err != nil {
			return nil, err
		}
		return NewOutput(res), nil
	}
}

func decodeRequest(args map[string]any) (block.Request, error) {
	code, ok := args[ArgCode].(string)
	if !ok {
		return block.Request{}, fmt.Errorf("%w: %q must be a string", ErrInvalidArguments, ArgCode)
	}
	req := block.Request{Source: code}

	switch p := args[ArgParams].(type) {
	case nil:
	case map[string]any:
		req.Params = p
	case map[string]string:
		req.Params = make(map[string]any, len(p))
		for k, v := range p {
			req.Params[k] = v
		}
	default:
		return block.Request{}, fmt.Errorf("%w: %q must be an object, got %T", ErrInvalidArguments, ArgParams, p)
	}
	return req, nil
}

// IsInvalidInput reports whether err was caused by the caller's input rather
// than by the environment.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidArguments) || errors.Is(err, params.ErrInvalidParameter)
}
