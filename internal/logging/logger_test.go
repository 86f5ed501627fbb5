package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastalkit/tidearchiver/internal/logging"
)

func TestNew(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		logger, err := logging.New(true)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(-1), "dev logger should enable debug")
	})

	t.Run("Production", func(t *testing.T) {
		logger, err := logging.New(false)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.False(t, logger.Core().Enabled(-1), "prod logger should not enable debug")
	})
}
