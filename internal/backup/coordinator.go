package backup

import (
	"context"
	"scorekeeper/internal/apperr"
	"scorekeeper/internal/models"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/repository"
	"scorekeeper/internal/services"
	"scorekeeper/internal/structures"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CoordinatorInterface interface {
	CreateBackup(ctx context.Context) (string, error)
	// Restore replaces every student with the ones in the snapshot and
	// returns how many were written.
	Restore(ctx context.Context, filename string) (int, error)
	List() ([]models.SnapshotInfo, error)
	Get(filename string) (*models.Snapshot, error)
}

type Coordinator struct {
	config   *structures.Config
	repo     repository.RecordRepositoryInterface
	files    SnapshotStoreInterface
	activity services.ActivityLoggerInterface
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger
	now      func() time.Time
}

func (c *Coordinator) CreateBackup(ctx context.Context) (string, error) {
	start := time.Now()
	name, err := c.createBackup(ctx)
	c.metrics.ObserveBackupDuration(time.Since(start))
	if err != nil {
		c.metrics.IncBackupsTotal("error")
		c.logger.Errorf(providers.TypeBackup, "Error creating backup: %s", err)
		return "", &apperr.BackupError{Err: err}
	}
	c.metrics.IncBackupsTotal("success")
	return name, nil
}

func (c *Coordinator) createBackup(ctx context.Context) (string, error) {
	snapshot := &models.Snapshot{Timestamp: c.now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(coll *repository.Collection, dst *[]models.Document) {
		g.Go(func() error {
			docs, err := coll.GetAll(gctx)
			if err != nil {
				return err
			}
			*dst = docs
			return nil
		})
	}
	fetch(c.repo.Students(), &snapshot.Students)
	fetch(c.repo.Winners(), &snapshot.Winners)
	fetch(c.repo.ActivityLog(), &snapshot.ActivityLog)
	fetch(c.repo.GuestLinks(), &snapshot.GuestLinks)
	if err := g.Wait(); err != nil {
		return "", err
	}

	name, err := c.files.Write(snapshot)
	if err != nil {
		return "", err
	}
	c.logger.Infof(providers.TypeBackup, "Backup created: %s", name)

	if _, err := c.files.EnforceRetention(c.config.Backup.MaxBackups); err != nil {
		c.logger.Errorf(providers.TypeBackup, "Unable to enforce backup limit: %s", err)
	}
	if infos, err := c.files.List(); err == nil {
		c.metrics.SetSnapshotsTotal(len(infos))
	}

	return name, nil
}

func (c *Coordinator) Restore(ctx context.Context, filename string) (int, error) {
	snapshot, err := c.files.Read(filename)
	if err != nil {
		c.metrics.IncRestoresTotal("error")
		return 0, err
	}

	// a repeated id keeps its first position and its last content, so the
	// count matches what the store ends up holding
	docs := make([]models.Document, 0, len(snapshot.Students))
	seen := make(map[string]int, len(snapshot.Students))
	for _, d := range snapshot.Students {
		d = models.NormalizeStudentDocument(d)
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if i, ok := seen[d.ID]; ok {
			docs[i] = d
			continue
		}
		seen[d.ID] = len(docs)
		docs = append(docs, d)
	}

	deleted, err := c.repo.ReplaceStudents(ctx, docs)
	if err != nil {
		c.metrics.IncRestoresTotal("error")
		c.logger.Errorf(providers.TypeBackup, "Error restoring from %s: %s", filename, err)
		return 0, err
	}
	c.metrics.IncRestoresTotal("success")
	c.logger.Infof(providers.TypeBackup, "Restored %d items from %s, %d removed", len(docs), filename, deleted)

	c.activity.Log(ctx, models.ActionRestoredBackup, map[string]any{
		"filename":      filename,
		"restoredCount": len(docs),
	})

	return len(docs), nil
}

func (c *Coordinator) List() ([]models.SnapshotInfo, error) {
	return c.files.List()
}

func (c *Coordinator) Get(filename string) (*models.Snapshot, error) {
	return c.files.Read(filename)
}

func NewCoordinator(config *structures.Config, repo repository.RecordRepositoryInterface, files SnapshotStoreInterface, activity services.ActivityLoggerInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) CoordinatorInterface {
	return &Coordinator{
		config:   config,
		repo:     repo,
		files:    files,
		activity: activity,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}
