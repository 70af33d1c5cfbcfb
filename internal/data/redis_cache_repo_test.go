package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblane/jobboard/internal/testutil"
)

func TestRedisCacheRepo_SetGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "jobs:test:key", []byte(`[{"id":"a"}]`), time.Minute))

	val, err := repo.Get(ctx, "jobs:test:key")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), val)

	deleted, err := repo.Delete(ctx, "jobs:test:key")
	require.NoError(t, err)
	assert.True(t, deleted)

	// Missing keys are a cache miss, not an error.
	val, err = repo.Get(ctx, "jobs:test:key")
	require.NoError(t, err)
	assert.Nil(t, val)

	deleted, err = repo.Delete(ctx, "jobs:test:key")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRedisCacheRepo_Health(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	repo := NewRedisCacheRepo(client)
	assert.NoError(t, repo.Health(context.Background()))
}
