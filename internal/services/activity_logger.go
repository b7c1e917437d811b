package services

import (
	"context"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/repository"
)

type ActivityLoggerInterface interface {
	Log(ctx context.Context, action string, details map[string]any)
}

// ActivityLogger writes audit entries. A failed write is logged and dropped,
// it never fails the operation being audited.
type ActivityLogger struct {
	repo   repository.RecordRepositoryInterface
	logger providers.Logger
}

func (a *ActivityLogger) Log(ctx context.Context, action string, details map[string]any) {
	a.logger.Debugf(providers.TypeApp, "Logging activity: %s", action)
	if _, err := a.repo.AppendActivity(ctx, action, details); err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to write activity log %q: %s", action, err)
	}
}

func NewActivityLogger(repo repository.RecordRepositoryInterface, logger providers.Logger) ActivityLoggerInterface {
	return &ActivityLogger{
		repo:   repo,
		logger: logger,
	}
}
