package di

import (
	"testing"

	"github.com/mikey/mailecho/internal/config"
	"github.com/mikey/mailecho/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

func TestBuildContainer(t *testing.T) {
	container, err := BuildContainer(Options{DryRun: true})
	require.NoError(t, err)

	err = container.Invoke(func(cfg *config.Config, logger *zap.Logger, transport core.Transport, service *core.EchoService) {
		assert.False(t, cfg.SendEmail())
		assert.Equal(t, "stdout", transport.Name())
		assert.NotNil(t, logger)
		assert.NotNil(t, service)
	})
	require.NoError(t, err)
}

func TestBuildContainerBadConfig(t *testing.T) {
	container, err := BuildContainer(Options{ConfigPath: "/nonexistent/mailecho.yaml"})
	require.NoError(t, err)

	err = container.Invoke(func(cfg *config.Config) {})
	require.Error(t, err)

	var cfgErr *config.ConfigError
	assert.ErrorAs(t, dig.RootCause(err), &cfgErr)
}
