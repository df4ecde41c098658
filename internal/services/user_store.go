package services

import (
	"context"
	"fmt"
	"petcare/internal/models"
	"petcare/internal/persistence"
	"petcare/internal/providers"
	"petcare/internal/structures"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type UserStoreInterface interface {
	SetUser(user models.User) (*persistence.Ack, error)
	Update(patch models.UserPatch) (*persistence.Ack, error)
	Clear() (*persistence.Ack, error)
	Current() (models.User, bool)
	IsPremiumActive() bool
	ConsumeScan() (*persistence.Ack, error)
	ReserveScan() (bool, *persistence.Ack, error)
	ReleaseScan() *persistence.Ack
	Upgrade(expiry time.Time) (*persistence.Ack, error)
	UpgradePlan(plan models.PremiumPlan) (*persistence.Ack, error)
	// InitAck resolves when the default user synthesized at start-up is stored.
	InitAck() *persistence.Ack
	Revision() uint64
}

type UserStore struct {
	mu   sync.RWMutex
	user *models.User

	conf      *structures.Config
	persister persistence.PersisterInterface
	clock     providers.Clock
	logger    providers.Logger
	initAck   *persistence.Ack
	revision  *atomic.Uint64
}

// NewUserStore loads the user document, creating and persisting the default
// profile when none is stored.
func NewUserStore(ctx context.Context, conf *structures.Config, persister persistence.PersisterInterface, clock providers.Clock, logger providers.Logger) (UserStoreInterface, error) {
	var doc models.UserDocument
	if _, err := persister.Load(ctx, models.UserStorageKey, &doc); err != nil {
		return nil, fmt.Errorf("user store: %w", err)
	}
	s := &UserStore{
		user:      doc.User,
		conf:      conf,
		persister: persister,
		clock:     clock,
		logger:    logger,
		initAck:   persistence.Resolved(nil),
		revision:  atomic.NewUint64(0),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		u := models.DefaultUser(conf.User.FreeScans)
		s.user = &u
		s.initAck = s.saveLocked()
		logger.Infof(providers.TypeUser, "Created default user profile")
	}
	return s, nil
}

func (s *UserStore) saveLocked() *persistence.Ack {
	s.revision.Inc()
	var doc models.UserDocument
	if s.user != nil {
		u := s.user.Clone()
		doc.User = &u
	}
	return s.persister.Save(models.UserStorageKey, doc)
}

func (s *UserStore) Revision() uint64 {
	return s.revision.Load()
}

func (s *UserStore) InitAck() *persistence.Ack {
	return s.initAck
}

func (s *UserStore) SetUser(user models.User) (*persistence.Ack, error) {
	if err := models.ValidateUser(user); err != nil {
		return nil, err
	}
	u := user.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
	s.logger.Debugf(providers.TypeUser, "User %s set", u.ID)
	return s.saveLocked(), nil
}

// Update merges patch into the current user; a no-op when there is none.
func (s *UserStore) Update(patch models.UserPatch) (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return persistence.Resolved(nil), nil
	}
	updated := patch.Apply(*s.user)
	if err := models.ValidateUser(updated); err != nil {
		return nil, err
	}
	s.user = &updated
	return s.saveLocked(), nil
}

// Clear removes the profile. The next start synthesizes the default again.
func (s *UserStore) Clear() (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return persistence.Resolved(nil), nil
	}
	s.user = nil
	s.logger.Infof(providers.TypeUser, "User profile cleared")
	return s.saveLocked(), nil
}

func (s *UserStore) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return s.user.Clone(), true
}

// IsPremiumActive is the only entitlement check: the flag must be set and
// the expiry must lie strictly in the future.
func (s *UserStore) IsPremiumActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.premiumActiveLocked()
}

func (s *UserStore) premiumActiveLocked() bool {
	return s.user != nil && s.user.PremiumActiveAt(s.clock.Now())
}

// ConsumeScan uses up one free scan. The count never drops below zero and
// premium users are not charged.
func (s *UserStore) ConsumeScan() (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.premiumActiveLocked() || s.user.AIScansRemaining <= 0 {
		return persistence.Resolved(nil), nil
	}
	s.user.AIScansRemaining--
	s.logger.Debugf(providers.TypeScan, "Free scans remaining: %d", s.user.AIScansRemaining)
	return s.saveLocked(), nil
}

// ReserveScan takes one free scan before the analysis starts, so concurrent
// scans cannot share the last one. Premium users pass without a charge; the
// returned flag tells whether ReleaseScan must undo the charge on abort.
func (s *UserStore) ReserveScan() (bool, *persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.premiumActiveLocked() {
		return false, persistence.Resolved(nil), nil
	}
	if s.user == nil || s.user.AIScansRemaining <= 0 {
		return false, nil, models.ErrScanQuotaExhausted
	}
	s.user.AIScansRemaining--
	s.logger.Debugf(providers.TypeScan, "Scan reserved, free scans remaining: %d", s.user.AIScansRemaining)
	return true, s.saveLocked(), nil
}

// ReleaseScan returns a scan taken by ReserveScan.
func (s *UserStore) ReleaseScan() *persistence.Ack {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return persistence.Resolved(nil)
	}
	s.user.AIScansRemaining++
	s.logger.Debugf(providers.TypeScan, "Scan released, free scans remaining: %d", s.user.AIScansRemaining)
	return s.saveLocked()
}

// Upgrade marks the user premium until expiry. The expiry is not checked
// against the clock.
func (s *UserStore) Upgrade(expiry time.Time) (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return persistence.Resolved(nil), nil
	}
	s.user.IsPremium = true
	s.user.PremiumUntil = &expiry
	s.logger.Infof(providers.TypeUser, "User %s upgraded until %s", s.user.ID, expiry.Format(time.RFC3339))
	return s.saveLocked(), nil
}

func (s *UserStore) UpgradePlan(plan models.PremiumPlan) (*persistence.Ack, error) {
	return s.Upgrade(plan.ExpiryFrom(s.clock.Now()))
}
