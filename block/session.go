package block

import (
	"context"
	"fmt"
)

// StartSession always fails: Ada blocks are compiled and run as isolated
// one-shot builds, so there is no interpreter state to keep between blocks.
func (e *Executor) StartSession(_ context.Context, name string) error {
	e.logError("session requested", "session", name)
	return fmt.Errorf("%w: ada blocks do not support sessions (requested %q); each block is a fresh one-shot build",
		ErrUnsupportedOperation, name)
}
