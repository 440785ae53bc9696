// Package blobstore provides storage backends for encoded bitmap snapshots.
//
// Store is the interface every backend implements. Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic writes, mmap reads
//   - MemoryStore: in-process map, mostly for tests
//   - CachingStore: read-through LRU in front of any Store
//   - minio.Store: MinIO and other S3-compatible endpoints
//   - s3.Store: Amazon S3 with multipart uploads for large blobs
//   - dynamodb.Store: DynamoDB items for small blobs
//
// # Custom Implementations
//
//	type Store interface {
//	    Put(ctx, name, data) error
//	    Get(ctx, name) ([]byte, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Get must return an error satisfying errors.Is(err, ErrNotFound) for a
// missing blob. Delete of a missing blob is not an error.
package blobstore
