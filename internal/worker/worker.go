// Package worker drains the queue of themes stored in the database into zip bundles on disk.
package worker

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/basel-ax/cursorsmith/internal/archive"
	"github.com/basel-ax/cursorsmith/internal/domain"
	"github.com/basel-ax/cursorsmith/internal/repository"
)

// CursorGenerator produces a cursor set for a theme
type CursorGenerator interface {
	Generate(ctx context.Context, theme string) (domain.CursorSet, error)
}

// Worker exports queued themes one at a time
type Worker struct {
	repo      repository.ThemeRepository
	generator CursorGenerator
	outputDir string
	logger    *log.Logger

	// serializes scheduled drains so runs never overlap
	mu sync.Mutex
}

// New creates a worker writing bundles to outputDir
func New(repo repository.ThemeRepository, generator CursorGenerator, outputDir string, logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.Default()
	}
	return &Worker{
		repo:      repo,
		generator: generator,
		outputDir: outputDir,
		logger:    logger,
	}
}

// ProcessNext exports the oldest queued theme. It reports false when the queue is empty.
// A theme that fails to generate is marked Failed and does not produce an error.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	job, err := w.repo.GetReadyToGenerate(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get queued theme: %w", err)
	}
	if job == nil {
		return false, nil
	}

	w.logger.Printf("[worker] processing theme ID %d: %q", job.ID, job.Theme)

	set, err := w.generator.Generate(ctx, job.Theme)
	if err != nil {
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		w.logger.Printf("[worker] error generating theme ID %d: %v", job.ID, err)
		return true, w.markFailed(ctx, job.ID)
	}

	name := fmt.Sprintf("theme-%d-%s.zip", job.ID, uuid.NewString())
	path, err := archive.SaveZip(w.outputDir, name, set)
	if err != nil {
		w.logger.Printf("[worker] error saving archive for theme ID %d: %v", job.ID, err)
		return true, w.markFailed(ctx, job.ID)
	}

	if err := w.repo.UpdateArchivePath(ctx, job.ID, path); err != nil {
		return true, fmt.Errorf("failed to update archive path for theme ID %d: %w", job.ID, err)
	}
	if err := w.repo.UpdateStatus(ctx, job.ID, domain.ThemeStatusDone); err != nil {
		return true, fmt.Errorf("failed to update status for theme ID %d: %w", job.ID, err)
	}

	w.logger.Printf("[worker] theme ID %d exported %d cursors to %s", job.ID, set.Count(), path)
	return true, nil
}

// Drain processes queued themes until the queue is empty or ctx is done
func (w *Worker) Drain(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		processed, err := w.ProcessNext(ctx)
		if err != nil {
			return err
		}
		if !processed {
			return nil
		}
	}
}

// Schedule drains the queue on the given cron spec (seconds field enabled) until ctx is done
func (w *Worker) Schedule(ctx context.Context, spec string) error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		w.logger.Println("[worker] running scheduled drain...")
		if err := w.Drain(ctx); err != nil {
			w.logger.Printf("[worker] scheduled drain stopped: %v", err)
			return
		}
		w.logger.Println("[worker] finished scheduled drain.")
	})
	if err != nil {
		return fmt.Errorf("error scheduling worker: %w", err)
	}

	c.Start()
	w.logger.Println("[worker] cron scheduler started successfully")

	<-ctx.Done()
	<-c.Stop().Done()
	w.logger.Println("[worker] cron scheduler stopped")
	return nil
}

func (w *Worker) markFailed(ctx context.Context, id int) error {
	if err := w.repo.UpdateStatus(ctx, id, domain.ThemeStatusFailed); err != nil {
		return fmt.Errorf("failed to update status for theme ID %d: %w", id, err)
	}
	return nil
}
