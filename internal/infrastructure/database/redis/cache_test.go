package redis

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/ChemReactivity/internal/config"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/logging"
)

type cachedValue struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// ─────────────────────────────────────────────────────────────────────────────
// redismock-backed suite for read paths with deterministic expectations
// ─────────────────────────────────────────────────────────────────────────────

type CacheTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock

	client := &Client{rdb: db, logger: logging.NewNopLogger()}
	s.cache = NewRedisCache(client, logging.NewNopLogger(), WithPrefix("test:"))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *CacheTestSuite) TestGet_CacheHit() {
	val := cachedValue{Name: "ammonia", Score: -7.2}
	data, _ := json.Marshal(val)
	s.mock.ExpectGet("test:key1").SetVal(string(data))

	var dest cachedValue
	require.NoError(s.T(), s.cache.Get(context.Background(), "key1", &dest))
	assert.Equal(s.T(), val, dest)
}

func (s *CacheTestSuite) TestGet_CacheMiss() {
	s.mock.ExpectGet("test:key1").RedisNil()

	var dest cachedValue
	err := s.cache.Get(context.Background(), "key1", &dest)
	assert.Equal(s.T(), ErrCacheMiss, err)
}

func (s *CacheTestSuite) TestGet_NullMarkerIsMiss() {
	s.mock.ExpectGet("test:key1").SetVal(nullMarker)

	var dest cachedValue
	assert.Equal(s.T(), ErrCacheMiss, s.cache.Get(context.Background(), "key1", &dest))
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("test:k1", "test:k2").SetVal(2)
	assert.NoError(s.T(), s.cache.Delete(context.Background(), "k1", "k2"))
}

func (s *CacheTestSuite) TestDelete_NoKeysIsNoop() {
	assert.NoError(s.T(), s.cache.Delete(context.Background()))
}

func (s *CacheTestSuite) TestExists() {
	s.mock.ExpectExists("test:k1").SetVal(1)

	exists, err := s.cache.Exists(context.Background(), "k1")
	require.NoError(s.T(), err)
	assert.True(s.T(), exists)
}

func (s *CacheTestSuite) TestGetOrSet_HitSkipsLoader() {
	val := cachedValue{Name: "water", Score: 1.5}
	data, _ := json.Marshal(val)
	s.mock.ExpectGet("test:key1").SetVal(string(data))

	var dest cachedValue
	err := s.cache.GetOrSet(context.Background(), "key1", &dest, time.Minute,
		func(context.Context) (interface{}, error) {
			s.T().Fatal("loader must not run on a cache hit")
			return nil, nil
		})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), val, dest)
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

// ─────────────────────────────────────────────────────────────────────────────
// miniredis-backed tests for write paths with jittered TTLs
// ─────────────────────────────────────────────────────────────────────────────

func newMiniredisCache(t *testing.T, opts ...CacheOption) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, logging.NewNopLogger(), opts...), mr
}

func TestCache_SetThenGet(t *testing.T) {
	cache, mr := newMiniredisCache(t, WithPrefix("test:"))
	ctx := context.Background()

	want := cachedValue{Name: "methane", Score: 3.4}
	require.NoError(t, cache.Set(ctx, "mol", want, time.Minute))

	// TTL carries jitter but stays within ±10%.
	ttl := mr.TTL("test:mol")
	assert.Greater(t, ttl, 54*time.Second)
	assert.Less(t, ttl, 66*time.Second)

	var got cachedValue
	require.NoError(t, cache.Get(ctx, "mol", &got))
	assert.Equal(t, want, got)
}

func TestCache_GetOrSet_LoadsOnceUnderConcurrency(t *testing.T) {
	cache, _ := newMiniredisCache(t)
	ctx := context.Background()

	var loads int32
	loader := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		return &cachedValue{Name: "benzene", Score: 2.2}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var dest cachedValue
			if err := cache.GetOrSet(ctx, "hot", &dest, time.Minute, loader); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt32(&loads), int32(2))

	var dest cachedValue
	require.NoError(t, cache.Get(ctx, "hot", &dest))
	assert.Equal(t, "benzene", dest.Name)
}

func TestCache_GetOrSet_NilResultCachesNullMarker(t *testing.T) {
	cache, mr := newMiniredisCache(t, WithPrefix("test:"))
	ctx := context.Background()

	var dest cachedValue
	err := cache.GetOrSet(ctx, "absent", &dest, time.Minute,
		func(context.Context) (interface{}, error) { return nil, nil })
	assert.Equal(t, ErrCacheMiss, err)

	stored, err := mr.Get("test:absent")
	require.NoError(t, err)
	assert.Equal(t, nullMarker, stored)
}

func TestCache_DeleteByPrefix(t *testing.T) {
	cache, _ := newMiniredisCache(t, WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "descriptor:1", cachedValue{}, time.Minute))
	require.NoError(t, cache.Set(ctx, "descriptor:2", cachedValue{}, time.Minute))
	require.NoError(t, cache.Set(ctx, "other:1", cachedValue{}, time.Minute))

	deleted, err := cache.DeleteByPrefix(ctx, "descriptor:")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	exists, err := cache.Exists(ctx, "other:1")
	require.NoError(t, err)
	assert.True(t, exists)
}
