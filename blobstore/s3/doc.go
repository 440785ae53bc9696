// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("bitmaps/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	arc := archive.New(store)
//
// # Features
//
//   - Single PutObject for small blobs, multipart uploads above the part size
//   - CRC32C checksums on upload, validated on download
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
