package services

import (
	"context"
	"petcare/internal/models"
	"petcare/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore_CreatesAndPersistsDefault(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	require.NoError(t, s.InitAck().Wait(context.Background()))

	u, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, models.DefaultUser(3), u)

	raw, ok := env.storage.Get(models.UserStorageKey)
	require.True(t, ok)
	var doc struct {
		State models.UserDocument `json:"state"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.NotNil(t, doc.State.User)
	assert.Equal(t, "pet.owner@example.com", doc.State.User.Email)
}

func TestUserStore_DefaultUsesConfiguredScans(t *testing.T) {
	conf := testConfig()
	conf.User.FreeScans = 10
	s := newTestEnvWith(t, conf, testutil.NewMockStorage()).userStore(t)
	u, _ := s.Current()
	assert.Equal(t, 10, u.AIScansRemaining)
}

func TestUserStore_LoadsExistingWithoutRewrite(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	settled(t)(s.Update(models.UserPatch{Name: ptr("Alex")}))

	next := env.reopen(t)
	writes := next.storage.WriteCount()
	reopened := next.userStore(t)
	u, _ := reopened.Current()
	assert.Equal(t, "Alex", u.Name)
	assert.Equal(t, writes, next.storage.WriteCount())
}

func TestUserStore_PremiumDerivation(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	now := env.clock.Now()

	assert.False(t, s.IsPremiumActive())

	settled(t)(s.Upgrade(now.Add(-time.Hour)))
	u, _ := s.Current()
	assert.True(t, u.IsPremium)
	assert.False(t, s.IsPremiumActive(), "stale flag with past expiry")

	settled(t)(s.Upgrade(now.Add(time.Hour)))
	assert.True(t, s.IsPremiumActive())

	env.clock.Advance(2 * time.Hour)
	assert.False(t, s.IsPremiumActive(), "expires with the clock")

	settled(t)(s.Upgrade(env.clock.Now().Add(time.Hour)))
	settled(t)(s.Update(models.UserPatch{IsPremium: ptr(false)}))
	assert.False(t, s.IsPremiumActive(), "flag off regardless of expiry")
}

func TestUserStore_ConsumeScanFloorsAtZero(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	settled(t)(s.Update(models.UserPatch{AIScansRemaining: ptr(1)}))

	settled(t)(s.ConsumeScan())
	u, _ := s.Current()
	assert.Equal(t, 0, u.AIScansRemaining)

	settled(t)(s.ConsumeScan())
	u, _ = s.Current()
	assert.Equal(t, 0, u.AIScansRemaining)
}

func TestUserStore_ConsumeScanPremiumUnchanged(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	settled(t)(s.Upgrade(env.clock.Now().Add(24 * time.Hour)))

	for _, scans := range []int{0, 2} {
		settled(t)(s.Update(models.UserPatch{AIScansRemaining: ptr(scans)}))
		settled(t)(s.ConsumeScan())
		u, _ := s.Current()
		assert.Equal(t, scans, u.AIScansRemaining)
	}
}

func TestUserStore_ReserveAndReleaseScan(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	settled(t)(s.Update(models.UserPatch{AIScansRemaining: ptr(1)}))

	charged, ack, err := s.ReserveScan()
	require.NoError(t, err)
	assert.True(t, charged)
	require.NoError(t, ack.Wait(context.Background()))
	u, _ := s.Current()
	assert.Equal(t, 0, u.AIScansRemaining)

	_, _, err = s.ReserveScan()
	assert.ErrorIs(t, err, models.ErrScanQuotaExhausted)

	require.NoError(t, s.ReleaseScan().Wait(context.Background()))
	u, _ = s.Current()
	assert.Equal(t, 1, u.AIScansRemaining)
}

func TestUserStore_ReserveScanPremiumNotCharged(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	settled(t)(s.Update(models.UserPatch{AIScansRemaining: ptr(0)}))
	settled(t)(s.Upgrade(env.clock.Now().Add(time.Hour)))

	charged, _, err := s.ReserveScan()
	require.NoError(t, err)
	assert.False(t, charged)
	u, _ := s.Current()
	assert.Equal(t, 0, u.AIScansRemaining)
}

func TestUserStore_UpgradePlan(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)

	settled(t)(s.UpgradePlan(models.PlanYearly))
	u, _ := s.Current()
	require.NotNil(t, u.PremiumUntil)
	assert.Equal(t, env.clock.Now().AddDate(1, 0, 0), *u.PremiumUntil)
	assert.True(t, s.IsPremiumActive())
}

func TestUserStore_UpdateValidates(t *testing.T) {
	s := newTestEnv(t).userStore(t)
	_, err := s.Update(models.UserPatch{Email: ptr("nope")})
	assert.ErrorIs(t, err, models.ErrValidation)

	theme := models.ThemeDark
	settled(t)(s.Update(models.UserPatch{Preferences: &models.PreferencesPatch{Theme: &theme}}))
	u, _ := s.Current()
	assert.Equal(t, models.ThemeDark, u.Preferences.Theme)
	assert.True(t, u.Preferences.Notifications)
}

func TestUserStore_SetUser(t *testing.T) {
	s := newTestEnv(t).userStore(t)
	u := models.DefaultUser(1)
	u.ID = "42"
	u.Name = "Sam"
	settled(t)(s.SetUser(u))

	got, _ := s.Current()
	assert.Equal(t, u, got)

	_, err := s.SetUser(models.User{})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUserStore_ClearThenReloadRecreatesDefault(t *testing.T) {
	env := newTestEnv(t)
	s := env.userStore(t)
	settled(t)(s.Update(models.UserPatch{Name: ptr("Alex")}))
	settled(t)(s.Clear())

	_, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.IsPremiumActive())
	ack, err := s.ConsumeScan()
	require.NoError(t, err)
	assert.NoError(t, ack.Err())

	reopened := env.reopen(t).userStore(t)
	u, ok := reopened.Current()
	require.True(t, ok)
	assert.Equal(t, "Pet Owner", u.Name)
}
