package intent

import "context"

// Completer sends a prompt to a language model and returns its raw output.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
