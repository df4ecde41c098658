package services

import (
	"context"
	"fmt"
	"petcare/internal/models"
	"petcare/internal/persistence"
	"petcare/internal/providers"
	"petcare/internal/structures"
	"sync"

	"go.uber.org/atomic"
)

type TaskStoreInterface interface {
	Add(task models.Task) (*persistence.Ack, error)
	Update(id string, patch models.TaskPatch) (*persistence.Ack, error)
	Remove(id string) (*persistence.Ack, error)
	ToggleCompletion(id string) (*persistence.Ack, error)
	RemoveByPet(petID string) (*persistence.Ack, error)
	Get(id string) (models.Task, bool)
	List() []models.Task
	ForPet(petID string) []models.Task
	ForDate(date models.Date) []models.Task
	ForToday() []models.Task
	Today() models.Date
	Len() int
	Revision() uint64
}

type TaskStore struct {
	mu       sync.RWMutex
	tasks    []models.Task
	revision *atomic.Uint64

	conf      *structures.Config
	pets      PetStoreInterface
	persister persistence.PersisterInterface
	clock     providers.Clock
	ids       providers.IDGenerator
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

// NewTaskStore loads the task document. When tasks.cascadeOnPetRemove is
// set, removing a pet also removes its tasks.
func NewTaskStore(ctx context.Context, conf *structures.Config, persister persistence.PersisterInterface, pets PetStoreInterface, clock providers.Clock, ids providers.IDGenerator, logger providers.Logger, metrics providers.MetricsProviderInterface) (TaskStoreInterface, error) {
	var doc models.TaskDocument
	if _, err := persister.Load(ctx, models.TaskStorageKey, &doc); err != nil {
		return nil, fmt.Errorf("task store: %w", err)
	}
	if doc.Tasks == nil {
		doc.Tasks = make([]models.Task, 0)
	}
	s := &TaskStore{
		tasks:     doc.Tasks,
		conf:      conf,
		pets:      pets,
		persister: persister,
		clock:     clock,
		ids:       ids,
		logger:    logger,
		metrics:   metrics,
		revision:  atomic.NewUint64(0),
	}
	if conf.Tasks.CascadeOnPetRemove && pets != nil {
		pets.OnRemove(func(petID string) {
			if _, err := s.RemoveByPet(petID); err != nil {
				logger.Errorf(providers.TypeTask, "Cascade for pet %s failed: %s", petID, err)
			}
		})
	}
	metrics.SetRecordsTotal("tasks", len(s.tasks))
	logger.Infof(providers.TypeTask, "Loaded %d tasks", len(s.tasks))
	return s, nil
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) Revision() uint64 {
	return s.revision.Load()
}

func (s *TaskStore) saveLocked() *persistence.Ack {
	s.revision.Inc()
	s.metrics.SetRecordsTotal("tasks", len(s.tasks))
	return s.persister.Save(models.TaskStorageKey, models.TaskDocument{Tasks: s.tasks})
}

func (s *TaskStore) checkPet(petID string) error {
	if !s.conf.Tasks.StrictPetReference || s.pets == nil {
		return nil
	}
	if _, ok := s.pets.Get(petID); !ok {
		return models.NewValidationError("petId", fmt.Sprintf("unknown pet %q", petID))
	}
	return nil
}

// Add appends task. A missing id is generated; a duplicate id is rejected.
func (s *TaskStore) Add(task models.Task) (*persistence.Ack, error) {
	task = task.Clone()
	if task.ID == "" {
		task.ID = s.ids.NewID()
	}
	if err := models.ValidateTask(task); err != nil {
		return nil, err
	}
	if err := s.checkPet(task.PetID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(task.ID) >= 0 {
		return nil, fmt.Errorf("task %s: %w", task.ID, models.ErrAlreadyExists)
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debugf(providers.TypeTask, "Added task %s for pet %s", task.ID, task.PetID)
	return s.saveLocked(), nil
}

// Update merges patch into the task with the given id. Unknown ids are a no-op.
func (s *TaskStore) Update(id string, patch models.TaskPatch) (*persistence.Ack, error) {
	if patch.PetID != nil {
		if err := s.checkPet(*patch.PetID); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return persistence.Resolved(nil), nil
	}
	updated := patch.Apply(s.tasks[i])
	updated.ID = id
	if err := models.ValidateTask(updated); err != nil {
		return nil, err
	}
	s.tasks[i] = updated
	s.logger.Debugf(providers.TypeTask, "Updated task %s", id)
	return s.saveLocked(), nil
}

func (s *TaskStore) Remove(id string) (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return persistence.Resolved(nil), nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.logger.Debugf(providers.TypeTask, "Removed task %s", id)
	return s.saveLocked(), nil
}

// ToggleCompletion flips the completed flag. Unknown ids are a no-op.
func (s *TaskStore) ToggleCompletion(id string) (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return persistence.Resolved(nil), nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.logger.Debugf(providers.TypeTask, "Task %s completed=%t", id, s.tasks[i].Completed)
	return s.saveLocked(), nil
}

// RemoveByPet deletes every task of petID.
func (s *TaskStore) RemoveByPet(petID string) (*persistence.Ack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.PetID != petID {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = models.Task{}
	}
	s.tasks = kept
	if removed == 0 {
		return persistence.Resolved(nil), nil
	}
	s.logger.Infof(providers.TypeTask, "Removed %d tasks of pet %s", removed, petID)
	return s.saveLocked(), nil
}

func (s *TaskStore) Get(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return models.Task{}, false
}

func (s *TaskStore) List() []models.Task {
	return s.filter(func(models.Task) bool { return true })
}

// ForPet returns the tasks of petID in insertion order, whether or not the
// pet still exists.
func (s *TaskStore) ForPet(petID string) []models.Task {
	return s.filter(func(t models.Task) bool { return t.PetID == petID })
}

// ForDate compares calendar dates only, so the result does not depend on
// the caller's zone.
func (s *TaskStore) ForDate(date models.Date) []models.Task {
	return s.filter(func(t models.Task) bool { return t.Date == date })
}

func (s *TaskStore) ForToday() []models.Task {
	return s.ForDate(s.Today())
}

// Today is the calendar date of the clock in its own location.
func (s *TaskStore) Today() models.Date {
	return models.DateOf(s.clock.Now())
}

func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func (s *TaskStore) filter(keep func(models.Task) bool) []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, 0)
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}
