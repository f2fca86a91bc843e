package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"castads/internal/config/configs"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), configs.Telemetry{Endpoint: "http://localhost:4318"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), configs.Telemetry{Enabled: true})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSetupCreatesProvider(t *testing.T) {
	// non-routable, nothing is exported before shutdown
	shutdown, err := Setup(context.Background(), configs.Telemetry{
		Enabled: true, Endpoint: "http://192.0.2.1:4318", ServiceName: "castads-test",
	})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
