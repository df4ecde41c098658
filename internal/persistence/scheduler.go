package persistence

import (
	"context"
	"petcare/internal/providers"
	"petcare/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

const flushTimeout = 30 * time.Second

// Scheduler periodically retries documents whose last write failed.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	persister PersisterInterface
	cron      *gron.Cron
	opsMu     sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.FlushInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if err := s.persister.FlushPending(ctx); err != nil {
			s.logger.Errorf(providers.TypeStorage, "Error while flushing pending documents: %s", err)
		}
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Persist flushes everything; used on shutdown.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStorage, "Flushing documents to storage...")
	if err := s.persister.FlushPending(context.Background()); err != nil {
		s.logger.Errorf(providers.TypeStorage, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, persister PersisterInterface) SchedulerInterface {
	return &Scheduler{
		config:    config,
		logger:    logger,
		persister: persister,
	}
}
