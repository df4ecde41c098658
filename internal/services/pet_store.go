package services

import (
	"context"
	"fmt"
	"petcare/internal/models"
	"petcare/internal/persistence"
	"petcare/internal/providers"
	"sync"

	"go.uber.org/atomic"
)

type PetStoreInterface interface {
	Add(pet models.Pet) (*persistence.Ack, error)
	Update(id string, patch models.PetPatch) (*persistence.Ack, error)
	Remove(id string) (*persistence.Ack, error)
	Select(id string) (*persistence.Ack, error)
	ClearSelection() (*persistence.Ack, error)
	Get(id string) (models.Pet, bool)
	List() []models.Pet
	Selected() (models.Pet, bool)
	Len() int
	OnRemove(fn func(petID string))
	// Revision changes on every mutation.
	Revision() uint64
}

type PetStore struct {
	mu       sync.RWMutex
	pets     []models.Pet
	selected *string
	hooks    []func(petID string)
	revision *atomic.Uint64

	persister persistence.PersisterInterface
	ids       providers.IDGenerator
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

// NewPetStore loads the pet document and returns a store bound to it.
func NewPetStore(ctx context.Context, persister persistence.PersisterInterface, ids providers.IDGenerator, logger providers.Logger, metrics providers.MetricsProviderInterface) (PetStoreInterface, error) {
	var doc models.PetDocument
	if _, err := persister.Load(ctx, models.PetStorageKey, &doc); err != nil {
		return nil, fmt.Errorf("pet store: %w", err)
	}
	if doc.Pets == nil {
		doc.Pets = make([]models.Pet, 0)
	}
	s := &PetStore{
		pets:      doc.Pets,
		selected:  doc.SelectedPetID,
		persister: persister,
		ids:       ids,
		logger:    logger,
		metrics:   metrics,
		revision:  atomic.NewUint64(0),
	}
	if s.selected != nil && s.indexOf(*s.selected) < 0 {
		s.selected = nil
	}
	metrics.SetRecordsTotal("pets", len(s.pets))
	logger.Infof(providers.TypePet, "Loaded %d pets", len(s.pets))
	return s, nil
}

func (s *PetStore) indexOf(id string) int {
	for i := range s.pets {
		if s.pets[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *PetStore) Revision() uint64 {
	return s.revision.Load()
}

// saveLocked snapshots the collection; callers hold the write lock so
// snapshots are queued in mutation order.
func (s *PetStore) saveLocked() *persistence.Ack {
	s.revision.Inc()
	s.metrics.SetRecordsTotal("pets", len(s.pets))
	return s.persister.Save(models.PetStorageKey, models.PetDocument{
		Pets:          s.pets,
		SelectedPetID: s.selected,
	})
}

// fillNestedIDs gives an id to every nested record that arrived without one.
func (s *PetStore) fillNestedIDs(p *models.Pet) {
	for i := range p.Vaccinations {
		if p.Vaccinations[i].ID == "" {
			p.Vaccinations[i].ID = s.ids.NewID()
		}
	}
	for i := range p.MedicalRecords {
		if p.MedicalRecords[i].ID == "" {
			p.MedicalRecords[i].ID = s.ids.NewID()
		}
	}
	for i := range p.FeedingSchedules {
		if p.FeedingSchedules[i].ID == "" {
			p.FeedingSchedules[i].ID = s.ids.NewID()
		}
	}
	for i := range p.Contacts {
		if p.Contacts[i].ID == "" {
			p.Contacts[i].ID = s.ids.NewID()
		}
	}
}

// Add appends pet. A missing id is generated; a duplicate id is rejected.
func (s *PetStore) Add(pet models.Pet) (*persistence.Ack, error) {
	pet = pet.Clone()
	if pet.ID == "" {
		pet.ID = s.ids.NewID()
	}
	s.fillNestedIDs(&pet)
	if err := models.ValidatePet(pet); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(pet.ID) >= 0 {
		return nil, fmt.Errorf("pet %s: %w", pet.ID, models.ErrAlreadyExists)
	}
	s.pets = append(s.pets, pet)
	s.logger.Debugf(providers.TypePet, "Added pet %s (%s)", pet.ID, pet.Name)
	return s.saveLocked(), nil
}

// Update merges patch into the pet with the given id. Unknown ids are a no-op.
func (s *PetStore) Update(id string, patch models.PetPatch) (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return persistence.Resolved(nil), nil
	}
	updated := patch.Apply(s.pets[i])
	updated.ID = id
	s.fillNestedIDs(&updated)
	if err := models.ValidatePet(updated); err != nil {
		return nil, err
	}
	s.pets[i] = updated
	s.logger.Debugf(providers.TypePet, "Updated pet %s", id)
	return s.saveLocked(), nil
}

// Remove deletes the pet and clears the selection if it pointed at it.
// Remove hooks run after the store lock is released.
func (s *PetStore) Remove(id string) (*persistence.Ack, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return persistence.Resolved(nil), nil
	}
	s.pets = append(s.pets[:i], s.pets[i+1:]...)
	if s.selected != nil && *s.selected == id {
		s.selected = nil
	}
	ack := s.saveLocked()
	hooks := append([]func(string){}, s.hooks...)
	s.mu.Unlock()

	s.logger.Debugf(providers.TypePet, "Removed pet %s", id)
	for _, fn := range hooks {
		fn(id)
	}
	return ack, nil
}

// Select points the selection at id; unknown ids are ignored.
func (s *PetStore) Select(id string) (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return persistence.Resolved(nil), nil
	}
	if s.selected != nil && *s.selected == id {
		return persistence.Resolved(nil), nil
	}
	s.selected = &id
	return s.saveLocked(), nil
}

func (s *PetStore) ClearSelection() (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return persistence.Resolved(nil), nil
	}
	s.selected = nil
	return s.saveLocked(), nil
}

func (s *PetStore) Get(id string) (models.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.pets[i].Clone(), true
	}
	return models.Pet{}, false
}

// List returns all pets in insertion order.
func (s *PetStore) List() []models.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Pet, len(s.pets))
	for i, p := range s.pets {
		out[i] = p.Clone()
	}
	return out
}

func (s *PetStore) Selected() (models.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return models.Pet{}, false
	}
	if i := s.indexOf(*s.selected); i >= 0 {
		return s.pets[i].Clone(), true
	}
	return models.Pet{}, false
}

func (s *PetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pets)
}

// OnRemove registers fn to be called with the id of every removed pet.
func (s *PetStore) OnRemove(fn func(petID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}
