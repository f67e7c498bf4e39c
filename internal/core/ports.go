package core

import (
	"context"
)

// Transport defines the interface for delivering a composed reply
type Transport interface {
	// Deliver submits the envelope. Exactly one attempt is made; retry is
	// the invoking MTA's responsibility.
	Deliver(ctx context.Context, env *Envelope) error

	// Name returns the transport name for logging
	Name() string
}
