package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jacostamo01/CalculadoraNoviembre01/pkg/logger"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetReportCaller(false)
		log.SetFormatter(&log.TextFormatter{})
	})

	t.Run("known level", func(t *testing.T) {
		logger.SetupLogger("debug", "")
		assert.Equal(t, log.DebugLevel, log.GetLevel())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger.SetupLogger("loud", "")
		assert.Equal(t, log.InfoLevel, log.GetLevel())
	})

	t.Run("file output", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "opslogger.log")
		logger.SetupLogger("info", file)

		log.Info("written to file")

		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"written to file"`)
		assert.Contains(t, string(data), `"file":"logger_test.go:`)
	})
}
