// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the text-understanding API used to pull achievement and
// recognition strings out of unstructured source text. Callers must treat
// every response as untrusted free text: the model is asked for a JSON
// array but is under no obligation to return one.
package llm

import "context"

// Backend abstracts the text-understanding API so tests can supply a mock.
type Backend interface {
	// Complete sends an instruction and a data blob and returns the raw
	// model output.
	Complete(ctx context.Context, instruction, data string) (string, error)
}
