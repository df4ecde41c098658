package services

import (
	"context"
	"petcare/internal/models"
	"petcare/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestTaskStore_AddAndValidate(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, env.petStore(t))
	d := models.MustParseDate("2024-03-01")

	settled(t)(s.Add(task("t1", "p1", d)))
	_, err := s.Add(task("t1", "p1", d))
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	bad := task("t2", "p1", d)
	bad.Time = "8am"
	_, err = s.Add(bad)
	assert.ErrorIs(t, err, models.ErrValidation)

	generated := task("", "p1", d)
	settled(t)(s.Add(generated))
	assert.Equal(t, []string{"t1", "id-1"}, taskIDs(s.List()))
}

func TestTaskStore_ToggleIsInvolutive(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	settled(t)(s.Add(task("t1", "p1", models.MustParseDate("2024-03-01"))))

	settled(t)(s.ToggleCompletion("t1"))
	got, _ := s.Get("t1")
	assert.True(t, got.Completed)

	settled(t)(s.ToggleCompletion("t1"))
	got, _ = s.Get("t1")
	assert.False(t, got.Completed)

	ack, err := s.ToggleCompletion("missing")
	require.NoError(t, err)
	assert.NoError(t, ack.Err())
}

func TestTaskStore_UpdateMergesFields(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	orig := task("t1", "p1", models.MustParseDate("2024-03-01"))
	orig.Time = "08:00"
	settled(t)(s.Add(orig))
	settled(t)(s.Add(task("t2", "p1", models.MustParseDate("2024-03-02"))))
	other, _ := s.Get("t2")

	settled(t)(s.Update("t1", models.TaskPatch{Title: ptr("Breakfast")}))
	got, _ := s.Get("t1")
	orig.Title = "Breakfast"
	assert.Equal(t, orig, got)
	again, _ := s.Get("t2")
	assert.Equal(t, other, again)

	_, err := s.Update("t1", models.TaskPatch{RepeatMonthDay: ptr(40)})
	assert.ErrorIs(t, err, models.ErrValidation)

	ack, err := s.Update("missing", models.TaskPatch{Title: ptr("x")})
	require.NoError(t, err)
	assert.NoError(t, ack.Err())
}

func TestTaskStore_RemoveIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	d := models.MustParseDate("2024-03-01")
	settled(t)(s.Add(task("t1", "p1", d)))
	settled(t)(s.Add(task("t2", "p1", d)))

	settled(t)(s.Remove("t1"))
	first := s.List()
	settled(t)(s.Remove("t1"))
	assert.Equal(t, first, s.List())
	assert.Equal(t, []string{"t2"}, taskIDs(first))
}

func TestTaskStore_ForDateIsZoneStable(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	settled(t)(s.Add(task("t1", "p1", models.MustParseDate("2024-03-01"))))
	settled(t)(s.Add(task("t2", "p1", models.MustParseDate("2024-03-02"))))

	for _, offset := range []int{-12, -8, -5, 0, 5, 9, 14} {
		zone := time.FixedZone("test", offset*3600)
		local := time.Date(2024, 3, 1, 23, 30, 0, 0, zone)
		got := s.ForDate(models.DateOf(local))
		assert.Equal(t, []string{"t1"}, taskIDs(got), "offset %d", offset)
	}
}

func TestTaskStore_ForTodayUsesLocalDate(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	settled(t)(s.Add(task("t1", "p1", models.MustParseDate("2024-03-01"))))

	// 2024-03-01 23:30 in UTC-8 is already March 2nd in UTC.
	env.clock.Set(time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("PST", -8*3600)))
	assert.Equal(t, []string{"t1"}, taskIDs(s.ForToday()))
	assert.Equal(t, models.MustParseDate("2024-03-01"), s.Today())

	env.clock.Set(time.Date(2024, 3, 2, 0, 30, 0, 0, time.FixedZone("PST", -8*3600)))
	assert.Empty(t, s.ForToday())
}

func TestTaskStore_SeedThenQueryScenario(t *testing.T) {
	env := newTestEnv(t)
	pets := env.petStore(t)
	s := env.taskStore(t, pets)
	settled(t)(pets.Add(pet("p1", "A")))
	settled(t)(pets.Add(pet("p2", "B")))

	today := s.Today()
	settled(t)(s.Add(task("t1", "p1", today)))

	got := s.ForToday()
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
	assert.False(t, got[0].Completed)

	settled(t)(s.ToggleCompletion("t1"))
	got = s.ForToday()
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
	assert.True(t, got[0].Completed)
}

func TestTaskStore_DanglingReference(t *testing.T) {
	env := newTestEnv(t)
	pets := env.petStore(t)
	s := env.taskStore(t, pets)

	settled(t)(s.Add(task("t1", "p9", models.MustParseDate("2024-03-01"))))
	assert.Equal(t, []string{"t1"}, taskIDs(s.ForPet("p9")))
}

func TestTaskStore_ForPetKeepsInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	settled(t)(s.Add(task("t1", "p1", models.MustParseDate("2024-03-05"))))
	settled(t)(s.Add(task("t2", "p2", models.MustParseDate("2024-03-01"))))
	settled(t)(s.Add(task("t3", "p1", models.MustParseDate("2024-03-01"))))

	assert.Equal(t, []string{"t1", "t3"}, taskIDs(s.ForPet("p1")))
	assert.Empty(t, s.ForPet("p3"))
}

func TestTaskStore_StrictPetReference(t *testing.T) {
	conf := testConfig()
	conf.Tasks.StrictPetReference = true
	env := newTestEnvWith(t, conf, testutil.NewMockStorage())
	pets := env.petStore(t)
	s := env.taskStore(t, pets)
	settled(t)(pets.Add(pet("p1", "Buddy")))

	_, err := s.Add(task("t1", "p9", models.MustParseDate("2024-03-01")))
	assert.ErrorIs(t, err, models.ErrValidation)

	settled(t)(s.Add(task("t1", "p1", models.MustParseDate("2024-03-01"))))
	_, err = s.Update("t1", models.TaskPatch{PetID: ptr("p9")})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTaskStore_CascadeOnPetRemove(t *testing.T) {
	conf := testConfig()
	conf.Tasks.CascadeOnPetRemove = true
	env := newTestEnvWith(t, conf, testutil.NewMockStorage())
	pets := env.petStore(t)
	s := env.taskStore(t, pets)
	d := models.MustParseDate("2024-03-01")

	settled(t)(pets.Add(pet("p1", "Buddy")))
	settled(t)(pets.Add(pet("p2", "Whiskers")))
	settled(t)(s.Add(task("t1", "p1", d)))
	settled(t)(s.Add(task("t2", "p2", d)))
	settled(t)(s.Add(task("t3", "p1", d)))

	settled(t)(pets.Remove("p1"))
	assert.Equal(t, []string{"t2"}, taskIDs(s.List()))
}

func TestTaskStore_NoCascadeByDefault(t *testing.T) {
	env := newTestEnv(t)
	pets := env.petStore(t)
	s := env.taskStore(t, pets)
	settled(t)(pets.Add(pet("p1", "Buddy")))
	settled(t)(s.Add(task("t1", "p1", models.MustParseDate("2024-03-01"))))

	settled(t)(pets.Remove("p1"))
	assert.Equal(t, []string{"t1"}, taskIDs(s.ForPet("p1")))
}

func TestTaskStore_RemoveByPet(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	d := models.MustParseDate("2024-03-01")
	settled(t)(s.Add(task("t1", "p1", d)))
	settled(t)(s.Add(task("t2", "p2", d)))

	settled(t)(s.RemoveByPet("p1"))
	assert.Equal(t, []string{"t2"}, taskIDs(s.List()))

	writes := env.storage.WriteCount()
	settled(t)(s.RemoveByPet("p1"))
	assert.Equal(t, writes, env.storage.WriteCount())
}

func TestTaskStore_Reload(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	tk := task("t1", "p1", models.MustParseDate("2024-03-01"))
	tk.RepeatDays = []int{2, 5}
	tk.CustomInterval = &models.CustomInterval{Value: 2, Unit: models.UnitWeek}
	settled(t)(s.Add(tk))

	reopened := env.reopen(t).taskStore(t, nil)
	got, ok := reopened.Get("t1")
	require.True(t, ok)
	assert.Equal(t, tk, got)
}

func TestTaskStore_ConcurrentMutations(t *testing.T) {
	env := newTestEnv(t)
	s := env.taskStore(t, nil)
	d := models.MustParseDate("2024-03-01")

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 10; j++ {
				_, err := s.Add(task("", "p1", d))
				assert.NoError(t, err)
				_ = s.ForToday()
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	require.NoError(t, env.persister.FlushPending(context.Background()))
	assert.Equal(t, 80, s.Len())

	reopened := env.reopen(t).taskStore(t, nil)
	assert.Equal(t, 80, reopened.Len())
}
