package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB(t *testing.T) {
	pool := SetupTestDB(t)
	ctx := ContextWithTimeout(t, time.Minute)

	require.NoError(t, pool.Ping(ctx))

	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables WHERE table_name = 'builds'
	)`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "migrations create the builds table")
}
