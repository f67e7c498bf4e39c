package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mailecho/internal/config"
	"github.com/mikey/mailecho/internal/core"
	"github.com/mikey/mailecho/internal/factory"
	"github.com/mikey/mailecho/internal/logging"
)

// Options carries the command line switches that influence wiring
type Options struct {
	ConfigPath string
	DryRun     bool
	Verbose    bool
	JSONLog    bool
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer(opts Options) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		cfg, err := config.New(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		if opts.DryRun {
			cfg.GetViper().Set("send_email", false)
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logging.InitLogger(cfg, opts.Verbose, opts.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register transport factory
	if err := container.Provide(factory.NewTransportFactory); err != nil {
		return nil, err
	}

	// Register transport
	if err := container.Provide(func(f *factory.TransportFactory) (core.Transport, error) {
		return f.CreateTransport()
	}); err != nil {
		return nil, err
	}

	// Register echo service
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger, t core.Transport) *core.EchoService {
		reply := cfg.GetReply()
		return core.NewEchoService(t, logger, reply.ServiceName, reply.BodyHeader, reply.BodyFooter)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
