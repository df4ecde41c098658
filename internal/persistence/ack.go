package persistence

import (
	"context"
	"sync"
)

// Ack resolves once a queued write has reached storage, or has failed for
// good. The in-memory change it belongs to is already visible either way.
type Ack struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newAck() *Ack {
	return &Ack{done: make(chan struct{})}
}

// Resolved returns an ack that is already complete with err.
func Resolved(err error) *Ack {
	a := newAck()
	a.resolve(err)
	return a
}

func (a *Ack) resolve(err error) {
	a.once.Do(func() {
		a.err = err
		close(a.done)
	})
}

func (a *Ack) Done() <-chan struct{} {
	return a.done
}

// Err is nil until the ack is resolved.
func (a *Ack) Err() error {
	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}

// Wait blocks until the write completes or ctx ends.
func (a *Ack) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
