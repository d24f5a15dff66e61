package logging_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"walletlink/internal/logging"
)

func TestNewLevels(t *testing.T) {
	log, err := logging.New("debug", true)
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = logging.New("", false)
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))
	require.True(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = logging.New("off", false)
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New("verbose", false)
	require.Error(t, err)
}

func TestOrNop(t *testing.T) {
	require.NotNil(t, logging.OrNop(nil))
}
