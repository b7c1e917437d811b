package backup

import (
	"context"
	"scorekeeper/internal/backup/interfaces"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

// Scheduler takes periodic backups. Its runs never overlap each other but
// may overlap backups requested over HTTP.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	coordinator CoordinatorInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	interval := s.config.Backup.Interval
	if interval <= 0 {
		s.logger.Infof(providers.TypeBackup, "Periodic backups are disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(interval), func() {
		_ = s.Persist()
	})
	s.cron.Start()
	s.logger.Infof(providers.TypeBackup, "Periodic backups every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeBackup, "Running scheduled backup...")
	name, err := s.coordinator.CreateBackup(context.Background())
	if err != nil {
		s.logger.Errorf(providers.TypeBackup, "Scheduled backup failed: %s", err)
		return err
	}
	s.logger.Infof(providers.TypeBackup, "Scheduled backup written to %s", name)
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, coordinator CoordinatorInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		coordinator: coordinator,
	}
}
