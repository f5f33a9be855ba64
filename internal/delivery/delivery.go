// Package delivery defines the long-running servers started by the application.
package delivery

import (
	"context"
	"time"
)

// DefaultShutdownTimeout bounds graceful shutdown of a Delivery.
const DefaultShutdownTimeout = 10 * time.Second

// Delivery is a server that blocks in Serve until it is stopped.
type Delivery interface {
	Serve(ctx context.Context) error
}
