package services

import (
	"context"
	"petcare/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedService_SeedsEmptyInstallation(t *testing.T) {
	env := newTestEnv(t)
	pets := env.petStore(t)
	tasks := env.taskStore(t, pets)

	require.NoError(t, NewSeedService(env.conf, pets, tasks, env.logger).Seed(context.Background()))

	list := pets.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Buddy", list[0].Name)
	assert.Equal(t, "Whiskers", list[1].Name)
	assert.Len(t, list[0].Vaccinations, 2)
	assert.NotEmpty(t, list[0].Vaccinations[0].ID)

	assert.Equal(t, 9, tasks.Len())
	assert.Len(t, tasks.ForPet(list[0].ID), 5)
	assert.Len(t, tasks.ForPet(list[1].ID), 4)

	today := tasks.Today()
	assert.Len(t, tasks.ForToday(), 7)
	assert.Len(t, tasks.ForDate(today.AddDays(3)), 1)
	assert.Len(t, tasks.ForDate(today.AddDays(1)), 1)
}

func TestSeedService_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	pets := env.petStore(t)
	tasks := env.taskStore(t, pets)
	seed := NewSeedService(env.conf, pets, tasks, env.logger)

	require.NoError(t, seed.Seed(context.Background()))
	require.NoError(t, seed.Seed(context.Background()))
	assert.Equal(t, 2, pets.Len())
	assert.Equal(t, 9, tasks.Len())
}

func TestSeedService_CompletesInterruptedSeed(t *testing.T) {
	env := newTestEnv(t)
	pets := env.petStore(t)
	tasks := env.taskStore(t, pets)
	settled(t)(pets.Add(pet("mine", "Rex")))

	require.NoError(t, NewSeedService(env.conf, pets, tasks, env.logger).Seed(context.Background()))
	assert.Equal(t, 1, pets.Len(), "existing pets are kept")
	assert.Len(t, tasks.ForPet("mine"), 9)
}

func TestSeedService_KeepsExistingTasks(t *testing.T) {
	env := newTestEnv(t)
	pets := env.petStore(t)
	tasks := env.taskStore(t, pets)
	settled(t)(tasks.Add(task("t1", "p9", models.MustParseDate("2024-03-01"))))

	require.NoError(t, NewSeedService(env.conf, pets, tasks, env.logger).Seed(context.Background()))
	assert.Equal(t, 2, pets.Len())
	assert.Equal(t, 1, tasks.Len())
}

func TestSeedService_Disabled(t *testing.T) {
	env := newTestEnv(t)
	env.conf.Seed.Enabled = false
	pets := env.petStore(t)
	tasks := env.taskStore(t, pets)

	require.NoError(t, NewSeedService(env.conf, pets, tasks, env.logger).Seed(context.Background()))
	assert.Zero(t, pets.Len())
	assert.Zero(t, tasks.Len())
}
