package tool

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/jonwraymond/adablock/block"
	"github.com/jonwraymond/adablock/toolchain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const helloSource = "procedure Hello is begin null; end Hello;"

// scriptedRunner implements toolchain.Runner for testing. The compiler always
// succeeds; every other invocation prints output.
type scriptedRunner struct {
	mu sync.Mutex

	output      string
	compileFail string

	// Call tracking
	calls []toolchain.Invocation
}

func (r *scriptedRunner) Run(_ context.Context, inv toolchain.Invocation) (toolchain.Output, error) {
	r.mu.Lock()
	r.calls = append(r.calls, inv)
	r.mu.Unlock()

	if inv.Path == block.DefaultCompileCommand {
		if r.compileFail != "" {
			return toolchain.Output{ExitCode: 1, Combined: r.compileFail},
				&toolchain.Error{Invocation: inv, ExitCode: 1, Output: r.compileFail}
		}
		return toolchain.Output{}, nil
	}
	return toolchain.Output{Combined: r.output}, nil
}

func (r *scriptedRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestExecutor(t *testing.T, runner *scriptedRunner) *block.Executor {
	t.Helper()
	exec, err := block.New(block.Config{TempDir: t.TempDir(), Runner: runner})
	if err != nil {
		t.Fatalf("block.New() error = %v", err)
	}
	return exec
}
