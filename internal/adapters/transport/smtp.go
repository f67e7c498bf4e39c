package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/mikey/mailecho/internal/core"
	"go.uber.org/zap"
)

// SMTPTransport submits replies to a configured SMTP server. The session is
// always upgraded with STARTTLS; authentication happens only when both a
// username and a password are configured.
type SMTPTransport struct {
	logger   *zap.Logger
	server   string
	port     int
	username string
	password string
	timeout  time.Duration
}

// NewSMTPTransport creates a new SMTP transport
func NewSMTPTransport(
	logger *zap.Logger,
	server string,
	port int,
	username string,
	password string,
	timeout time.Duration,
) *SMTPTransport {
	return &SMTPTransport{
		logger:   logger,
		server:   server,
		port:     port,
		username: username,
		password: password,
		timeout:  timeout,
	}
}

// Deliver opens an SMTP session and transmits the envelope. Exactly one
// attempt is made; any failure is wrapped in a *core.TransportError.
func (t *SMTPTransport) Deliver(ctx context.Context, env *core.Envelope) error {
	if err := ctx.Err(); err != nil {
		return &core.TransportError{Stage: "connect", Err: err}
	}

	addr := fmt.Sprintf("%s:%d", t.server, t.port)

	conn, err := net.DialTimeout("tcp", addr, t.timeout)
	if err != nil {
		return &core.TransportError{Stage: "connect", Err: err}
	}

	// The deadline bounds the whole session; the process must never hang
	// waiting on an unresponsive server.
	if err := conn.SetDeadline(time.Now().Add(t.timeout)); err != nil {
		conn.Close()
		return &core.TransportError{Stage: "connect", Err: err}
	}

	tlsConfig := &tls.Config{
		ServerName: t.server,
		MinVersion: tls.VersionTLS12,
	}

	// NewClientStartTLS runs the greeting, EHLO and TLS upgrade in one step
	// and closes the connection itself on failure.
	c, err := smtp.NewClientStartTLS(conn, tlsConfig)
	if err != nil {
		return &core.TransportError{Stage: "starttls", Err: err}
	}
	defer c.Close()

	if t.username != "" && t.password != "" {
		if err := c.Auth(sasl.NewPlainClient("", t.username, t.password)); err != nil {
			return &core.TransportError{Stage: "auth", Err: err}
		}
	}

	if err := c.Mail(env.From, nil); err != nil {
		return &core.TransportError{Stage: "mail", Err: err}
	}
	if err := c.Rcpt(env.To, nil); err != nil {
		return &core.TransportError{Stage: "rcpt", Err: err}
	}

	wc, err := c.Data()
	if err != nil {
		return &core.TransportError{Stage: "data", Err: err}
	}
	if _, err := wc.Write(env.Data); err != nil {
		wc.Close()
		return &core.TransportError{Stage: "write", Err: err}
	}
	if err := wc.Close(); err != nil {
		return &core.TransportError{Stage: "data", Err: err}
	}

	// The message is already accepted at this point, so a failed QUIT is
	// logged but not treated as a delivery failure.
	if err := c.Quit(); err != nil {
		t.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// Name returns the transport name
func (t *SMTPTransport) Name() string {
	return "smtp"
}
