package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/bitview"
	"github.com/hupe1980/bitview/blobstore"
	"github.com/hupe1980/bitview/snapshot"
	"github.com/hupe1980/bitview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBitmap(t *testing.T, seed int64, nbits uint64) *bitview.Bitmap {
	t.Helper()
	bm := bitview.Make(nbits)
	for _, b := range testutil.NewRNG(seed).Bits(nbits, int(nbits/16)+1) {
		require.NoError(t, bm.Set(b))
	}
	return bm
}

func TestSaveLoad(t *testing.T) {
	for _, c := range []snapshot.Compression{snapshot.None, snapshot.LZ4, snapshot.ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			ctx := context.Background()
			arc := New(blobstore.NewMemoryStore(), WithCompression(c))

			bm := randomBitmap(t, 1, 1000)
			require.NoError(t, arc.Save(ctx, "users/active", bm))

			got, err := arc.Load(ctx, "users/active")
			require.NoError(t, err)
			assert.True(t, bm.Equal(got))
			assert.Equal(t, bm.Bytes(), got.Bytes())

			h, err := arc.Header(ctx, "users/active")
			require.NoError(t, err)
			assert.Equal(t, uint64(1000), h.Bits)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	arc := New(blobstore.NewMemoryStore())

	_, err := arc.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoadCorrupt(t *testing.T) {
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "bad", []byte("not a snapshot at all, definitely not")))

	_, err := New(store).Load(context.Background(), "bad")
	assert.ErrorIs(t, err, snapshot.ErrInvalidMagic)
}

func TestDeleteList(t *testing.T) {
	ctx := context.Background()
	arc := New(blobstore.NewMemoryStore())

	for _, name := range []string{"a/1", "a/2", "b/1"} {
		require.NoError(t, arc.Save(ctx, name, bitview.Make(8)))
	}

	names, err := arc.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1", "a/2"}, names)

	require.NoError(t, arc.Delete(ctx, "a/1"))
	require.NoError(t, arc.Delete(ctx, "a/1"))

	names, err = arc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/2", "b/1"}, names)
}

func TestInvalidNames(t *testing.T) {
	ctx := context.Background()
	arc := New(blobstore.NewMemoryStore(), WithNamespace("tenant/"))

	for _, name := range []string{"", "/tenant/x", "tenant/../x", "tenant//x", "other/x"} {
		assert.ErrorIs(t, arc.Save(ctx, name, bitview.Make(8)), ErrInvalidName, name)
		_, err := arc.Load(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, arc.Delete(ctx, name), ErrInvalidName, name)
	}

	require.NoError(t, arc.Save(ctx, "tenant/x", bitview.Make(8)))
	assert.ErrorIs(t, arc.Save(ctx, "tenant/y", nil), ErrNilBitmap)
}

func TestListNamespace(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "other/x", []byte{1}))

	arc := New(store, WithNamespace("tenant/"))
	require.NoError(t, arc.Save(ctx, "tenant/x", bitview.Make(8)))

	names, err := arc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant/x"}, names)

	names, err = arc.List(ctx, "other/")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSaveAll(t *testing.T) {
	ctx := context.Background()
	metrics := &bitview.BasicMetricsCollector{}
	arc := New(blobstore.NewMemoryStore(), WithConcurrency(3), WithMetrics(metrics))

	bitmaps := make(map[string]*bitview.Bitmap)
	for i := 0; i < 20; i++ {
		bitmaps[fmt.Sprintf("bm/%02d", i)] = randomBitmap(t, int64(i), 256)
	}
	require.NoError(t, arc.SaveAll(ctx, bitmaps))

	for name, want := range bitmaps {
		got, err := arc.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), name)
	}

	stats := metrics.GetStats()
	assert.Equal(t, int64(20), stats.SaveCount)
	assert.Equal(t, int64(0), stats.SaveErrors)
	assert.Equal(t, int64(20), stats.LoadCount)
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(20), stats.BatchItems)
	assert.Equal(t, int64(0), stats.BatchFailed)
}

type failingStore struct {
	blobstore.Store
	mu    sync.Mutex
	fail  string
	calls int
}

var errBackend = errors.New("backend down")

func (s *failingStore) Put(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if name == s.fail {
		return errBackend
	}
	return s.Store.Put(ctx, name, data)
}

func TestSaveAllFirstError(t *testing.T) {
	store := &failingStore{Store: blobstore.NewMemoryStore(), fail: "bm/00"}
	metrics := &bitview.BasicMetricsCollector{}
	arc := New(store, WithConcurrency(1), WithMetrics(metrics))

	bitmaps := map[string]*bitview.Bitmap{
		"bm/00": bitview.Make(8),
		"bm/01": bitview.Make(8),
		"bm/02": bitview.Make(8),
	}
	err := arc.SaveAll(context.Background(), bitmaps)
	require.ErrorIs(t, err, errBackend)

	// Saves run in name order with one worker; the failure cancels the rest
	// before they reach the store.
	assert.Equal(t, 1, store.calls)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(3), stats.BatchItems)
	assert.GreaterOrEqual(t, stats.BatchFailed, int64(1))
}

func TestSaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arc := New(blobstore.NewMemoryStore(), WithIOLimit(1<<20))
	assert.ErrorIs(t, arc.Save(ctx, "x", bitview.Make(8)), context.Canceled)
}

func TestWithCache(t *testing.T) {
	ctx := context.Background()
	arc := New(blobstore.NewMemoryStore(), WithCache(1<<20))

	_, ok := arc.Store().(*blobstore.CachingStore)
	require.True(t, ok)

	bm := randomBitmap(t, 7, 512)
	require.NoError(t, arc.Save(ctx, "c", bm))
	for i := 0; i < 2; i++ {
		got, err := arc.Load(ctx, "c")
		require.NoError(t, err)
		assert.True(t, bm.Equal(got))
	}
	assert.Positive(t, arc.rc.MemoryUsage())
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := bitview.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	arc := New(blobstore.NewMemoryStore(), WithLogger(logger))

	ctx := context.Background()
	require.NoError(t, arc.Save(ctx, "logged", bitview.Make(16)))
	_, err := arc.Load(ctx, "missing")
	require.Error(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"msg":"save completed"`), out)
	assert.True(t, strings.Contains(out, `"bits":16`), out)
	assert.True(t, strings.Contains(out, `"msg":"load failed"`), out)
	assert.True(t, strings.Contains(out, `"name":"missing"`), out)
}

func TestHeaderCountsAsLoad(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := bitview.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &bitview.BasicMetricsCollector{}
	arc := New(blobstore.NewMemoryStore(), WithMetrics(metrics), WithLogger(logger), WithIOLimit(1<<20))

	require.NoError(t, arc.Save(ctx, "h", bitview.Make(100)))

	h, err := arc.Header(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), h.Bits)

	_, err = arc.Header(ctx, "missing")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.LoadCount)
	assert.Equal(t, int64(1), stats.LoadErrors)
	assert.Positive(t, stats.LoadBytes)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"msg":"load completed"`), out)
	assert.True(t, strings.Contains(out, `"bits":100`), out)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = arc.Header(canceled, "h")
	assert.ErrorIs(t, err, context.Canceled)
}
