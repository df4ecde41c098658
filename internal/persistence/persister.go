package persistence

import (
	"context"
	"errors"
	"fmt"
	"petcare/internal/models"
	"petcare/internal/providers"
	"petcare/internal/structures"
	"sort"
	"sync"
)

// Persister owns the storage backend and one KeyWriter per document key.
type Persister struct {
	conf    *structures.Config
	storage StorageInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu      sync.Mutex
	writers map[string]*KeyWriter
	closed  bool
}

func NewPersister(conf *structures.Config, storage StorageInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Persister {
	return &Persister{
		conf:    conf,
		storage: storage,
		logger:  logger,
		metrics: metrics,
		writers: make(map[string]*KeyWriter),
	}
}

// Load decodes the document stored under key into state. It returns false
// when nothing was stored yet.
func (p *Persister) Load(ctx context.Context, key string, state any) (bool, error) {
	data, found, err := p.storage.Read(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	migrated, err := Decode(data, state)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if migrated {
		p.logger.Warnf(providers.TypeStorage, "Document %s uses an older format, it will be rewritten on the next change", key)
	}
	return true, nil
}

// Save snapshots state now and queues it for writing.
func (p *Persister) Save(key string, state any) *Ack {
	data, err := Encode(state)
	if err != nil {
		p.logger.Errorf(providers.TypeStorage, "Cannot encode %s: %s", key, err)
		return Resolved(fmt.Errorf("%w: %w", models.ErrPersistence, err))
	}
	w, err := p.Writer(key)
	if err != nil {
		return Resolved(err)
	}
	return w.Enqueue(data)
}

// Writer returns the writer for key, creating it on first use.
func (p *Persister) Writer(key string) (*KeyWriter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, fmt.Errorf("%w: persister is closed", models.ErrPersistence)
	}
	w, ok := p.writers[key]
	if !ok {
		w = newKeyWriter(key, p.storage, int(p.conf.Persistence.Retries), p.conf.Persistence.RetryDelay, p.logger, p.metrics)
		p.writers[key] = w
	}
	return w, nil
}

func (p *Persister) Writers() []*KeyWriter {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*KeyWriter, 0, len(p.writers))
	for _, w := range p.writers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// FlushPending waits for every queue and retries snapshots whose last write
// failed.
func (p *Persister) FlushPending(ctx context.Context) error {
	var errs []error
	for _, w := range p.Writers() {
		if err := w.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes what it can, stops all writers and releases the backend.
func (p *Persister) Close(ctx context.Context) error {
	var errs []error
	if err := p.FlushPending(ctx); err != nil {
		errs = append(errs, err)
	}

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	for _, w := range p.Writers() {
		if err := w.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := p.storage.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
