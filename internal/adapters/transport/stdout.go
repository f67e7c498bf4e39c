package transport

import (
	"context"
	"io"
	"os"

	"github.com/mikey/mailecho/internal/core"
	"go.uber.org/zap"
)

// StdoutTransport writes the reply's full wire serialization to standard
// output instead of transmitting it. This is the dry-run mode used for
// testing and for inspecting the composed reply.
type StdoutTransport struct {
	writer io.Writer
	logger *zap.Logger
}

// NewStdoutTransport creates a dry-run transport writing to os.Stdout
func NewStdoutTransport(logger *zap.Logger) *StdoutTransport {
	return &StdoutTransport{writer: os.Stdout, logger: logger}
}

// NewStdoutTransportWithWriter creates a dry-run transport writing to the
// given writer. This is useful for testing.
func NewStdoutTransportWithWriter(w io.Writer, logger *zap.Logger) *StdoutTransport {
	return &StdoutTransport{writer: w, logger: logger}
}

// Deliver writes the serialized reply to the output stream
func (t *StdoutTransport) Deliver(_ context.Context, env *core.Envelope) error {
	t.logger.Debug("Dry-run delivery",
		zap.String("envelope_from", env.From),
		zap.String("envelope_to", env.To),
		zap.Int("bytes", len(env.Data)))

	if _, err := t.writer.Write(env.Data); err != nil {
		return &core.TransportError{Stage: "write", Err: err}
	}
	return nil
}

// Name returns the transport name
func (t *StdoutTransport) Name() string {
	return "stdout"
}
