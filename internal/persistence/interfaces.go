package persistence

import "context"

// StorageInterface is a key/value backend holding one serialized document
// per key.
type StorageInterface interface {
	// Read returns the stored bytes, or found=false when the key was never
	// written.
	Read(ctx context.Context, key string) (data []byte, found bool, err error)
	Write(ctx context.Context, key string, data []byte) error
	Close() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// PersisterInterface loads documents at start-up and saves snapshots after
// each mutation.
type PersisterInterface interface {
	Load(ctx context.Context, key string, state any) (bool, error)
	Save(key string, state any) *Ack
	FlushPending(ctx context.Context) error
	Close(ctx context.Context) error
}

type SchedulerInterface interface {
	Init()
	Stop()
	Persist() error
}
