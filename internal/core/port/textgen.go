package port

import "context"

// TextGenerator is the generative-text collaborator. It has one capability:
// turn a prompt into text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Model identifies the model behind the generator for provenance.
	Model() string
}
