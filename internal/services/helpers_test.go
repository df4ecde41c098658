package services

import (
	"context"
	"petcare/internal/models"
	"petcare/internal/persistence"
	"petcare/internal/structures"
	"petcare/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			Retries:       1,
			RetryDelay:    time.Millisecond,
			FlushInterval: time.Second,
		},
		User: structures.UserConfig{FreeScans: 3},
		Seed: structures.SeedConfig{Enabled: true},
	}
}

type testEnv struct {
	conf      *structures.Config
	storage   *testutil.MockStorage
	persister *persistence.Persister
	clock     *testutil.FixedClock
	ids       *testutil.SequentialIDs
	logger    *testutil.MockLogger
	metrics   *testutil.MockMetrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, testConfig(), testutil.NewMockStorage())
}

func newTestEnvWith(t *testing.T, conf *structures.Config, storage *testutil.MockStorage) *testEnv {
	t.Helper()
	env := &testEnv{
		conf:    conf,
		storage: storage,
		clock:   testutil.NewFixedClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		ids:     &testutil.SequentialIDs{},
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
	}
	env.persister = persistence.NewPersister(conf, storage, env.logger, env.metrics)
	t.Cleanup(func() { _ = env.persister.Close(context.Background()) })
	return env
}

func (e *testEnv) petStore(t *testing.T) PetStoreInterface {
	t.Helper()
	s, err := NewPetStore(context.Background(), e.persister, e.ids, e.logger, e.metrics)
	require.NoError(t, err)
	return s
}

func (e *testEnv) taskStore(t *testing.T, pets PetStoreInterface) TaskStoreInterface {
	t.Helper()
	s, err := NewTaskStore(context.Background(), e.conf, e.persister, pets, e.clock, e.ids, e.logger, e.metrics)
	require.NoError(t, err)
	return s
}

func (e *testEnv) userStore(t *testing.T) UserStoreInterface {
	t.Helper()
	s, err := NewUserStore(context.Background(), e.conf, e.persister, e.clock, e.logger)
	require.NoError(t, err)
	return s
}

// reopen builds a fresh environment over the same stored documents.
func (e *testEnv) reopen(t *testing.T) *testEnv {
	t.Helper()
	require.NoError(t, e.persister.FlushPending(context.Background()))
	next := newTestEnvWith(t, e.conf, e.storage)
	next.clock = e.clock
	return next
}

// settled returns a check for a mutation result: no error and a write that
// reached storage.
func settled(t *testing.T) func(*persistence.Ack, error) {
	t.Helper()
	return func(ack *persistence.Ack, err error) {
		t.Helper()
		require.NoError(t, err)
		require.NotNil(t, ack)
		require.NoError(t, ack.Wait(context.Background()))
	}
}

func pet(id, name string) models.Pet {
	return models.Pet{ID: id, Name: name, Species: models.SpeciesDog}
}

func task(id, petID string, date models.Date) models.Task {
	return models.Task{
		ID: id, PetID: petID, Title: "Task " + id,
		Category: models.CategoryFeeding, Date: date, Frequency: models.FrequencyDaily,
	}
}

func ptr[T any](v T) *T { return &v }
