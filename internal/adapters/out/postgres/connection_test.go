package postgres_test

import (
	"testing"

	"courierbot/internal/adapters/out/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DSN(t *testing.T) {
	cfg := postgres.Config{
		Host:     "db",
		User:     "courier",
		Password: "secret",
		Name:     "archive",
	}

	assert.True(t, cfg.Enabled())
	assert.Equal(t,
		"host=db port=5432 user=courier password=secret dbname=archive sslmode=disable",
		cfg.DSN())
}

func TestOpen_NotConfigured(t *testing.T) {
	_, err := postgres.Open(postgres.Config{})

	require.ErrorIs(t, err, postgres.ErrNotConfigured)
}
