package persistence

import (
	"context"
	"fmt"
	"petcare/internal/models"
	"petcare/internal/providers"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const writeTimeout = 10 * time.Second

type writeJob struct {
	data []byte
	ack  *Ack
}

// KeyWriter serializes all writes of one storage key. Jobs are written in the
// order they were enqueued by a single goroutine, so a later snapshot can
// never be overwritten by an earlier one.
type KeyWriter struct {
	key     string
	storage StorageInterface
	retries int
	delay   time.Duration
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu     sync.Mutex
	queue  []writeJob
	busy   bool
	tail   *Ack
	failed []byte

	pending *atomic.Bool
	closed  *atomic.Bool
	written *atomic.Int64
	notify  chan struct{}
	stopped chan struct{}
}

func newKeyWriter(key string, storage StorageInterface, retries int, delay time.Duration, logger providers.Logger, metrics providers.MetricsProviderInterface) *KeyWriter {
	if retries < 0 {
		retries = 0
	}
	w := &KeyWriter{
		key:     key,
		storage: storage,
		retries: retries,
		delay:   delay,
		logger:  logger,
		metrics: metrics,
		pending: atomic.NewBool(false),
		closed:  atomic.NewBool(false),
		written: atomic.NewInt64(0),
		notify:  make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *KeyWriter) Key() string {
	return w.key
}

// HasPending reports whether the latest snapshot failed to persist and is
// waiting for a retry.
func (w *KeyWriter) HasPending() bool {
	return w.pending.Load()
}

// Written is the number of successful writes since start.
func (w *KeyWriter) Written() int64 {
	return w.written.Load()
}

// Enqueue schedules data to be written and returns its ack.
func (w *KeyWriter) Enqueue(data []byte) *Ack {
	w.mu.Lock()
	if w.closed.Load() {
		w.mu.Unlock()
		return Resolved(fmt.Errorf("%w: writer for %s is closed", models.ErrPersistence, w.key))
	}
	ack := w.enqueueLocked(data)
	w.mu.Unlock()
	w.wake()
	return ack
}

func (w *KeyWriter) enqueueLocked(data []byte) *Ack {
	ack := newAck()
	w.queue = append(w.queue, writeJob{data: data, ack: ack})
	w.tail = ack
	return ack
}

func (w *KeyWriter) wake() {
	select {
	case w.notify <- struct{}{}:
	default:
	}
}

// Flush waits for queued writes and retries the failed snapshot, if any.
func (w *KeyWriter) Flush(ctx context.Context) error {
	w.mu.Lock()
	var ack *Ack
	switch {
	case len(w.queue) > 0 || w.busy:
		ack = w.tail
	case w.failed != nil && !w.closed.Load():
		ack = w.enqueueLocked(w.failed)
	}
	w.mu.Unlock()

	if ack == nil {
		return nil
	}
	w.wake()
	return ack.Wait(ctx)
}

// Close stops accepting writes and waits until the queue is drained.
func (w *KeyWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed.Store(true)
	w.mu.Unlock()
	w.wake()

	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("close writer %s: %w", w.key, ctx.Err())
	}
}

func (w *KeyWriter) next() (writeJob, bool, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queue) == 0 {
		w.busy = false
		return writeJob{}, false, w.closed.Load()
	}
	job := w.queue[0]
	w.queue[0] = writeJob{}
	w.queue = w.queue[1:]
	w.busy = true
	return job, true, false
}

func (w *KeyWriter) run() {
	defer close(w.stopped)
	for {
		job, ok, closed := w.next()
		if !ok {
			if closed {
				return
			}
			<-w.notify
			continue
		}
		job.ack.resolve(w.write(job.data))
	}
}

func (w *KeyWriter) write(data []byte) error {
	start := time.Now()
	var err error
	for attempt := 0; attempt <= w.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(w.delay)
		}
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err = w.storage.Write(ctx, w.key, data)
		cancel()
		if err == nil {
			break
		}
		w.logger.Warnf(providers.TypeStorage, "Write of %s failed (attempt %d of %d): %s", w.key, attempt+1, w.retries+1, err)
	}
	w.metrics.ObservePersistenceDuration(w.key, time.Since(start))

	w.mu.Lock()
	if err != nil {
		w.failed = data
	} else {
		w.failed = nil
	}
	w.mu.Unlock()
	w.pending.Store(err != nil)

	if err != nil {
		w.metrics.IncPersistenceFailures(w.key)
		w.logger.Errorf(providers.TypeStorage, "Giving up on %s, keeping it for the next flush: %s", w.key, err)
		return fmt.Errorf("%w: write %s: %w", models.ErrPersistence, w.key, err)
	}
	w.written.Inc()
	w.logger.Debugf(providers.TypeStorage, "Persisted %s (%d bytes)", w.key, len(data))
	return nil
}
