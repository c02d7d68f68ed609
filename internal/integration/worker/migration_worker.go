// Package worker provides scheduled background jobs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finance-tracker/lucapp/internal/application/adapter"
	"github.com/finance-tracker/lucapp/internal/application/usecase/transaction"
)

// DefaultMigrationSchedule runs the sweep every night at 03:00.
const DefaultMigrationSchedule = "0 3 * * *"

// Migrator classifies one user's legacy transactions.
type Migrator interface {
	Execute(ctx context.Context, input transaction.MigrateLegacyInput) (*transaction.MigrateLegacyOutput, error)
}

// MigrationWorker periodically writes an explicit type onto legacy
// transactions of every registered user.
type MigrationWorker struct {
	users    adapter.UserRepository
	migrator Migrator
	schedule string
	location *time.Location
	// timeout bounds the migration of a single user.
	timeout time.Duration

	// running guards against overlapping sweeps.
	running sync.Mutex
}

// WorkerConfig holds configuration for the migration worker.
type WorkerConfig struct {
	Schedule string
	Location *time.Location
	Timeout  time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Schedule: DefaultMigrationSchedule,
		Location: time.UTC,
		Timeout:  5 * time.Minute,
	}
}

// NewMigrationWorker creates a new migration worker.
func NewMigrationWorker(users adapter.UserRepository, migrator Migrator, config WorkerConfig) *MigrationWorker {
	if config.Schedule == "" {
		config.Schedule = DefaultMigrationSchedule
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultWorkerConfig().Timeout
	}
	return &MigrationWorker{
		users:    users,
		migrator: migrator,
		schedule: config.Schedule,
		location: config.Location,
		timeout:  config.Timeout,
	}
}

// Start schedules the sweep and blocks until the context is cancelled.
func (w *MigrationWorker) Start(ctx context.Context) error {
	scheduler := cron.New(cron.WithLocation(w.location))
	if _, err := scheduler.AddFunc(w.schedule, func() { w.runScheduled(ctx) }); err != nil {
		return fmt.Errorf("invalid migration schedule %q: %w", w.schedule, err)
	}

	slog.Info("Migration worker started", "schedule", w.schedule, "timezone", w.location.String())
	scheduler.Start()

	<-ctx.Done()
	slog.Info("Migration worker shutting down")
	<-scheduler.Stop().Done()
	return nil
}

func (w *MigrationWorker) runScheduled(parent context.Context) {
	if !w.running.TryLock() {
		slog.Warn("Previous migration sweep still running, skipping")
		return
	}
	defer w.running.Unlock()

	if _, err := w.RunOnce(parent); err != nil {
		slog.Error("Migration sweep failed", "error", err)
	}
}

// SweepResult summarizes one sweep.
type SweepResult struct {
	Users    int
	Migrated int
	Failed   int
}

// RunOnce migrates every user's legacy transactions. Each user gets its own
// timeout; a failure for one user is logged and does not stop the sweep.
func (w *MigrationWorker) RunOnce(ctx context.Context) (*SweepResult, error) {
	users, err := w.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := &SweepResult{Users: len(users)}
	for _, user := range users {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		output, err := w.migrateUser(ctx, user.ID)
		if err != nil {
			result.Failed++
			slog.Error("Failed to migrate legacy transactions", "user_id", user.ID, "error", err)
			continue
		}
		result.Migrated += output.Migrated
	}

	slog.Info("Migration sweep completed",
		"users", result.Users,
		"migrated", result.Migrated,
		"failed", result.Failed,
	)
	return result, nil
}

func (w *MigrationWorker) migrateUser(ctx context.Context, userID string) (*transaction.MigrateLegacyOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	return w.migrator.Execute(ctx, transaction.MigrateLegacyInput{UserID: userID})
}
