package publisher

import (
	"context"
)

// Provider receives a copy of every finished report.
type Provider interface {
	// Publish stores data under name and returns its location.
	Publish(ctx context.Context, name string, data []byte) (string, error)
}
