// Package archive persists named bitmaps in a blobstore.Store.
//
// Each bitmap is encoded with the snapshot format and stored under its
// name. Saves and loads are throttled by an optional IO rate limit, and
// SaveAll fans out over a bounded worker pool.
//
//	arc := archive.New(blobstore.NewLocalStore("/var/lib/bitmaps"),
//	    archive.WithCompression(snapshot.ZSTD),
//	    archive.WithConcurrency(8),
//	    archive.WithIOLimit(64<<20),
//	)
//	if err := arc.Save(ctx, "users/active", bm); err != nil { ... }
//	bm, err := arc.Load(ctx, "users/active")
package archive
