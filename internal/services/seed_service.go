package services

import (
	"context"
	"errors"
	"petcare/internal/models"
	"petcare/internal/persistence"
	"petcare/internal/providers"
	"petcare/internal/structures"
)

// SeedService fills an empty installation with demo pets and tasks.
type SeedService struct {
	conf   *structures.Config
	pets   PetStoreInterface
	tasks  TaskStoreInterface
	logger providers.Logger
}

func NewSeedService(conf *structures.Config, pets PetStoreInterface, tasks TaskStoreInterface, logger providers.Logger) *SeedService {
	return &SeedService{conf: conf, pets: pets, tasks: tasks, logger: logger}
}

// Seed adds the demo pets when there are none, then the demo tasks when
// there are pets but no tasks. Each step looks at the current state, so an
// interrupted seed is completed on the next start.
func (s *SeedService) Seed(ctx context.Context) error {
	if !s.conf.Seed.Enabled {
		return nil
	}

	var acks []*persistence.Ack
	if s.pets.Len() == 0 {
		for _, p := range DemoPets() {
			ack, err := s.pets.Add(p)
			if err != nil && !errors.Is(err, models.ErrAlreadyExists) {
				return err
			}
			if ack != nil {
				acks = append(acks, ack)
			}
		}
		s.logger.Infof(providers.TypeApp, "Seeded %d demo pets", s.pets.Len())
	}

	if s.pets.Len() > 0 && s.tasks.Len() == 0 {
		pets := s.pets.List()
		first := pets[0].ID
		second := first
		if len(pets) > 1 {
			second = pets[1].ID
		}
		for _, t := range DemoTasks(first, second, s.tasks.Today()) {
			ack, err := s.tasks.Add(t)
			if err != nil && !errors.Is(err, models.ErrAlreadyExists) {
				return err
			}
			if ack != nil {
				acks = append(acks, ack)
			}
		}
		s.logger.Infof(providers.TypeApp, "Seeded %d demo tasks", s.tasks.Len())
	}

	var errs []error
	for _, ack := range acks {
		if err := ack.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
