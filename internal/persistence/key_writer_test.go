package persistence

import (
	"context"
	"fmt"
	"petcare/internal/models"
	"petcare/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, storage StorageInterface, retries int) (*KeyWriter, *testutil.MockLogger, *testutil.MockMetrics) {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	w := newKeyWriter("pet-storage", storage, retries, time.Millisecond, logger, metrics)
	t.Cleanup(func() { _ = w.Close(context.Background()) })
	return w, logger, metrics
}

func TestKeyWriter_WritesInOrder(t *testing.T) {
	storage := testutil.NewMockStorage()
	w, _, _ := newTestWriter(t, storage, 1)

	var acks []*Ack
	for i := 0; i < 50; i++ {
		acks = append(acks, w.Enqueue([]byte(fmt.Sprintf("v%d", i))))
	}
	for _, ack := range acks {
		require.NoError(t, ack.Wait(context.Background()))
	}

	data, ok := storage.Get("pet-storage")
	require.True(t, ok)
	assert.Equal(t, "v49", string(data))
	assert.Equal(t, 50, storage.Versions("pet-storage"))
	for i, v := range storage.History["pet-storage"] {
		assert.Equal(t, fmt.Sprintf("v%d", i), string(v))
	}
	assert.EqualValues(t, 50, w.Written())
}

func TestKeyWriter_RetriesOnce(t *testing.T) {
	storage := testutil.NewMockStorage()
	storage.SetFailWrites(1)
	w, logger, metrics := newTestWriter(t, storage, 1)

	require.NoError(t, w.Enqueue([]byte("v1")).Wait(context.Background()))
	assert.Equal(t, 2, storage.WriteCount())
	assert.False(t, w.HasPending())
	assert.Equal(t, 1, logger.Count("warn"))
	assert.Zero(t, metrics.Failures("pet-storage"))
}

func TestKeyWriter_FailureKeepsSnapshotForFlush(t *testing.T) {
	storage := testutil.NewMockStorage()
	storage.SetFailWrites(2)
	w, logger, metrics := newTestWriter(t, storage, 1)

	err := w.Enqueue([]byte("v1")).Wait(context.Background())
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.ErrorIs(t, err, testutil.ErrInjected)
	assert.True(t, w.HasPending())
	assert.Equal(t, 1, metrics.Failures("pet-storage"))
	assert.True(t, logger.Contains("error", "pet-storage"))

	require.NoError(t, w.Flush(context.Background()))
	assert.False(t, w.HasPending())
	data, ok := storage.Get("pet-storage")
	require.True(t, ok)
	assert.Equal(t, "v1", string(data))
}

func TestKeyWriter_NewerWriteSupersedesFailed(t *testing.T) {
	storage := testutil.NewMockStorage()
	storage.SetFailWrites(1)
	w, _, _ := newTestWriter(t, storage, 0)

	assert.Error(t, w.Enqueue([]byte("v1")).Wait(context.Background()))
	require.NoError(t, w.Enqueue([]byte("v2")).Wait(context.Background()))
	assert.False(t, w.HasPending())

	require.NoError(t, w.Flush(context.Background()))
	data, _ := storage.Get("pet-storage")
	assert.Equal(t, "v2", string(data))
	assert.Equal(t, 1, storage.Versions("pet-storage"))
}

func TestKeyWriter_FlushWaitsForQueue(t *testing.T) {
	release := make(chan struct{})
	storage := testutil.NewMockStorage()
	var once sync.Once
	storage.WriteFn = func(string, []byte) error {
		once.Do(func() { <-release })
		return nil
	}
	w, _, _ := newTestWriter(t, storage, 0)

	w.Enqueue([]byte("v1"))
	last := w.Enqueue([]byte("v2"))

	flushed := make(chan error, 1)
	go func() { flushed <- w.Flush(context.Background()) }()

	select {
	case <-flushed:
		t.Fatal("flush returned before the queue drained")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	require.NoError(t, <-flushed)
	assert.NoError(t, last.Err())
}

func TestKeyWriter_FlushNothingPending(t *testing.T) {
	w, _, _ := newTestWriter(t, testutil.NewMockStorage(), 0)
	assert.NoError(t, w.Flush(context.Background()))
}

func TestKeyWriter_CloseDrainsAndRejects(t *testing.T) {
	storage := testutil.NewMockStorage()
	w := newKeyWriter("k", storage, 0, 0, &testutil.MockLogger{}, &testutil.MockMetrics{})

	acks := []*Ack{w.Enqueue([]byte("a")), w.Enqueue([]byte("b"))}
	require.NoError(t, w.Close(context.Background()))
	for _, ack := range acks {
		select {
		case <-ack.Done():
		default:
			t.Fatal("queued write not completed on close")
		}
		assert.NoError(t, ack.Err())
	}

	err := w.Enqueue([]byte("c")).Err()
	assert.ErrorIs(t, err, models.ErrPersistence)
}

func TestAck_WaitRespectsContext(t *testing.T) {
	ack := newAck()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ack.Wait(ctx), context.Canceled)
	assert.NoError(t, ack.Err())

	ack.resolve(assert.AnError)
	ack.resolve(nil)
	assert.ErrorIs(t, ack.Wait(context.Background()), assert.AnError)
	assert.NoError(t, Resolved(nil).Wait(context.Background()))
}
