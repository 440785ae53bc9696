// Package resource bounds the memory, worker slots and IO bandwidth used by
// bitmap persistence.
//
//	rc := resource.NewController(resource.Config{
//	    MaxWorkers:         4,
//	    IOLimitBytesPerSec: 32 << 20,
//	})
//	if err := rc.AcquireWorker(ctx); err != nil { ... }
//	defer rc.ReleaseWorker()
//	_ = rc.AcquireIO(ctx, len(data))
package resource
