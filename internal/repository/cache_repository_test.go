package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil, nil)
	var dest string

	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "k", "v", time.Minute))
	assert.NoError(t, repo.DeletePrefix(context.Background(), "k"))
}

func TestCacheRepositoryReportsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close() //nolint:errcheck
	obs := &countingObserver{}
	repo := NewCacheRepository(client, nil, obs)

	var dest map[string]int
	err := repo.Get(context.Background(), "dashboard:x", &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrCacheMiss)

	err = repo.Set(context.Background(), "dashboard:x", map[string]int{"a": 1}, time.Minute)
	require.Error(t, err)
	assert.Equal(t, []string{"cache_get", "cache_set"}, obs.ops)
	assert.Equal(t, []bool{false, false}, obs.hits)
}
