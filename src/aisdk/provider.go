package aisdk

import (
	"context"
)

// ModelClient is the model collaborator contract. Instruct sends the full
// windowed conversation plus the tool catalog and returns the model's reply.
// Calls fail fast; there is no retry or backoff policy here.
type ModelClient interface {
	Instruct(ctx context.Context, req *InstructRequest) (*InstructResponse, error)

	// InstructStream is the optional streaming variant. Implementations
	// that do not stream may return ErrStreamingUnsupported.
	InstructStream(ctx context.Context, req *InstructRequest) (StreamReader, error)
}
