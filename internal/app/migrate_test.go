package app

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"000001_create_operations_log.down.sql",
		"000001_create_operations_log.up.sql",
	}, names)

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_create_operations_log.up.sql")
	require.NoError(t, err)
	for _, col := range []string{
		"id", "op", "num1", "num2", "result", "source", "endpoint",
		"method", "status_code", "client_ip", "payload_json", "created_at",
	} {
		assert.Contains(t, string(up), "\n    "+col+" ", col)
	}
	assert.True(t, strings.Contains(string(up), "BIGSERIAL PRIMARY KEY"))
}
