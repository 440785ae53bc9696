package archive

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/bitview"
	"github.com/hupe1980/bitview/blobstore"
	"github.com/hupe1980/bitview/internal/cache"
	"github.com/hupe1980/bitview/internal/resource"
	"github.com/hupe1980/bitview/snapshot"
	"github.com/hupe1980/bitview/strutil"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrInvalidName is returned for empty, absolute or escaping names and
	// for names outside the configured namespace.
	ErrInvalidName = errors.New("archive: invalid bitmap name")

	// ErrNilBitmap is returned when saving a nil bitmap.
	ErrNilBitmap = errors.New("archive: nil bitmap")
)

// Archive stores bitmaps by name. Safe for concurrent use.
type Archive struct {
	store blobstore.Store
	rc    *resource.Controller
	opts  options
}

// New creates an Archive on top of store.
func New(store blobstore.Store, opts ...Option) *Archive {
	o := applyOptions(opts)

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   o.cacheBytes,
		MaxWorkers:         int64(o.concurrency),
		IOLimitBytesPerSec: o.ioLimit,
	})

	if o.cacheBytes > 0 {
		store = blobstore.NewCachingStore(store, cache.NewLRU(o.cacheBytes, rc))
	}

	return &Archive{
		store: store,
		rc:    rc,
		opts:  o,
	}
}

// Store returns the underlying store, including the cache layer if any.
func (a *Archive) Store() blobstore.Store { return a.store }

func (a *Archive) validate(name string) error {
	if name == "" || strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if slices.Contains(strings.Split(name, "/"), "..") || path.Clean(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if a.opts.namespace != "" && !strutil.HasPrefix(name, a.opts.namespace) {
		return fmt.Errorf("%w: %q is outside namespace %q", ErrInvalidName, name, a.opts.namespace)
	}
	return nil
}

// Save encodes bm and writes it under name.
func (a *Archive) Save(ctx context.Context, name string, bm *bitview.Bitmap) (err error) {
	start := time.Now()
	size := 0
	logger := a.opts.logger
	defer func() {
		elapsed := time.Since(start)
		a.opts.metrics.RecordSave(size, elapsed, err)
		logger.LogSave(ctx, name, size, elapsed, err)
	}()

	if err := a.validate(name); err != nil {
		return err
	}
	if bm == nil {
		return ErrNilBitmap
	}
	logger = logger.WithBits(bm.Len())

	if err := a.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer a.rc.ReleaseWorker()

	data, err := snapshot.Marshal(bm, snapshot.WithCompression(a.opts.compression))
	if err != nil {
		return fmt.Errorf("archive: encode %s: %w", name, err)
	}
	size = len(data)

	if err := a.rc.AcquireIO(ctx, size); err != nil {
		return err
	}
	if err := a.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("archive: save %s: %w", name, err)
	}
	return nil
}

// Load reads and decodes the bitmap stored under name. A missing bitmap
// yields an error matching blobstore.ErrNotFound.
func (a *Archive) Load(ctx context.Context, name string) (bm *bitview.Bitmap, err error) {
	start := time.Now()
	size := 0
	logger := a.opts.logger
	defer func() {
		elapsed := time.Since(start)
		a.opts.metrics.RecordLoad(size, elapsed, err)
		logger.LogLoad(ctx, name, size, elapsed, err)
	}()

	if err := a.validate(name); err != nil {
		return nil, err
	}

	data, err := a.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("archive: load %s: %w", name, err)
	}
	size = len(data)

	if err := a.rc.AcquireIO(ctx, size); err != nil {
		return nil, err
	}

	bm, _, err = snapshot.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", name, err)
	}
	logger = logger.WithBits(bm.Len())
	return bm, nil
}

// Header reads only the snapshot metadata of name. The store has no ranged
// reads, so the whole blob is fetched and counted as a load.
func (a *Archive) Header(ctx context.Context, name string) (h snapshot.Header, err error) {
	start := time.Now()
	size := 0
	logger := a.opts.logger
	defer func() {
		elapsed := time.Since(start)
		a.opts.metrics.RecordLoad(size, elapsed, err)
		logger.LogLoad(ctx, name, size, elapsed, err)
	}()

	if err := a.validate(name); err != nil {
		return snapshot.Header{}, err
	}
	data, err := a.store.Get(ctx, name)
	if err != nil {
		return snapshot.Header{}, fmt.Errorf("archive: load %s: %w", name, err)
	}
	size = len(data)

	if err := a.rc.AcquireIO(ctx, size); err != nil {
		return snapshot.Header{}, err
	}

	h, err = snapshot.ParseHeader(data)
	if err != nil {
		return snapshot.Header{}, fmt.Errorf("archive: decode %s: %w", name, err)
	}
	logger = logger.WithBits(h.Bits)
	return h, nil
}

// Delete removes the bitmap stored under name.
func (a *Archive) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() {
		a.opts.metrics.RecordDelete(time.Since(start), err)
		a.opts.logger.LogDelete(ctx, name, err)
	}()

	if err := a.validate(name); err != nil {
		return err
	}
	if err := a.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("archive: delete %s: %w", name, err)
	}
	return nil
}

// List returns the sorted names of stored bitmaps starting with prefix.
func (a *Archive) List(ctx context.Context, prefix string) ([]string, error) {
	if a.opts.namespace != "" && !strutil.HasPrefix(prefix, a.opts.namespace) {
		// Narrow to the namespace when prefix is broader.
		if !strutil.HasPrefix(a.opts.namespace, prefix) {
			return []string{}, nil
		}
		prefix = a.opts.namespace
	}
	return a.store.List(ctx, prefix)
}

// SaveAll saves every bitmap in parallel. The first error cancels the
// remaining saves and is returned.
func (a *Archive) SaveAll(ctx context.Context, bitmaps map[string]*bitview.Bitmap) error {
	start := time.Now()

	names := make([]string, 0, len(bitmaps))
	for name := range bitmaps {
		names = append(names, name)
	}
	slices.Sort(names)

	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.concurrency)

	for _, name := range names {
		g.Go(func() error {
			if err := a.Save(gctx, name, bitmaps[name]); err != nil {
				failed.Add(1)
				return err
			}
			return nil
		})
	}
	err := g.Wait()

	count, nfailed := len(names), int(failed.Load())
	a.opts.metrics.RecordBatchSave(count, nfailed, time.Since(start))
	a.opts.logger.LogBatchSave(ctx, count, nfailed)
	return err
}
