package ports

import "context"

// CompletionProvider submits one prompt to a text-completion model and
// returns the raw reply text.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
