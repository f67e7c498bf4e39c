package factory

import (
	"github.com/mikey/mailecho/internal/adapters/transport"
	"github.com/mikey/mailecho/internal/config"
	"github.com/mikey/mailecho/internal/core"
	"go.uber.org/zap"
)

// TransportFactory creates delivery transports based on configuration
type TransportFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTransportFactory creates a new transport factory
func NewTransportFactory(cfg *config.Config, logger *zap.Logger) *TransportFactory {
	return &TransportFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTransport creates a transport based on the configuration. When
// send_email is disabled the reply is written to stdout instead.
func (f *TransportFactory) CreateTransport() (core.Transport, error) {
	if !f.cfg.SendEmail() {
		return transport.NewStdoutTransport(f.logger), nil
	}

	smtpCfg := f.cfg.GetSMTP()
	return transport.NewSMTPTransport(
		f.logger,
		smtpCfg.Server,
		smtpCfg.Port,
		smtpCfg.Username,
		smtpCfg.Password,
		smtpCfg.Timeout,
	), nil
}
