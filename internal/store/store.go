package store

import "context"

// Store is a durable hierarchical key-value store. Set overwrites the whole
// value at a path (last-write-wins); Get reports found=false for paths that
// were never written instead of returning an error.
type Store interface {
	Set(ctx context.Context, path string, value []byte) error
	Get(ctx context.Context, path string) (value []byte, found bool, err error)
	Close() error
}
