// Package cache provides a byte-bounded LRU for encoded snapshots.
//
// Entries are accounted by len(value). When a resource.Controller is
// attached, every cached byte is also reserved against its memory limit and
// released on eviction; a denied reservation simply skips caching.
package cache
