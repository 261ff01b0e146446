package store

import "context"

// Medium is the persistent key-value backend the store writes collection blobs to.
// Implementations live in the kvstore package.
type Medium interface {
	// Get returns the blob stored under key. ok is false when nothing was ever stored.
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	// Set replaces the blob stored under key in a single write.
	Set(ctx context.Context, key string, blob []byte) error
	// Clear removes every key the medium holds.
	Clear(ctx context.Context) error
}
