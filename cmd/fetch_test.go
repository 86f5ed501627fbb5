package cmd

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartMetricsServer(t *testing.T) {
	addr, shutdown, err := startMetricsServer("127.0.0.1:0", zap.NewNop())
	require.NoError(t, err)
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "# HELP")

	shutdown()

	// The listener is gone after shutdown.
	_, err = http.Get("http://" + addr + "/metrics")
	assert.Error(t, err)
}

func TestStartMetricsServerBadAddr(t *testing.T) {
	_, _, err := startMetricsServer("127.0.0.1:not-a-port", zap.NewNop())
	assert.Error(t, err)
}
