package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
		mr.Close()
	})
	return mr
}

func TestGetJSON_NilClient(t *testing.T) {
	SetClient(nil)
	var dest map[string]string
	found, err := GetJSON(context.Background(), "feed:1", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestSetGetJSON_RoundTrip(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	type profile struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}

	require.NoError(t, SetJSON(ctx, "profile:7", profile{ID: 7, Username: "alice"}, time.Minute))

	var got profile
	found, err := GetJSON(ctx, "profile:7", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, profile{ID: 7, Username: "alice"}, got)
}

func TestGetJSON_MissingKey(t *testing.T) {
	withMiniredis(t)
	var dest map[string]string
	found, err := GetJSON(context.Background(), "profile:404", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestAside_MissFetchesAndPopulates(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	fetched := 0
	var dest string
	err := Aside(ctx, "stats:total", &dest, time.Minute, func() error {
		fetched++
		dest = "from-db"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	assert.Equal(t, "from-db", dest)
	assert.True(t, mr.Exists("stats:total"))

	// Second call is served from the cache, fetch is not invoked again.
	var dest2 string
	err = Aside(ctx, "stats:total", &dest2, time.Minute, func() error {
		fetched++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	assert.Equal(t, "from-db", dest2)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	boom := errors.New("db down")
	var dest string
	err := Aside(ctx, "stats:broken", &dest, time.Minute, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("stats:broken"))
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)

	fetched := 0
	var dest string
	err := Aside(context.Background(), "stats:total", &dest, time.Minute, func() error {
		fetched++
		dest = "from-db"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	assert.Equal(t, "from-db", dest)
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "feed", keyPrefix("feed:1:page:2"))
	assert.Equal(t, "plain", keyPrefix("plain"))
}
