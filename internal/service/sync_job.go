// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
)

// DefaultSyncInterval is used when Start is given a non-positive interval.
const DefaultSyncInterval = 5 * time.Minute

type syncJob struct {
	orchestrator SyncOrchestrator

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a job that calls orchestrator.PerformFullSync on a
// ticker. The job is idle until Start is called.
func NewSyncJob(orchestrator SyncOrchestrator, log *logger.Logger) SyncJob {
	if log == nil {
		log = logger.Nop()
	}
	return &syncJob{orchestrator: orchestrator, logger: log}
}

// Start implements SyncJob. It stops any previously running job, then
// launches a background goroutine that syncs every interval. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Info().Dur("interval", interval).Msg("sync job started")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *syncJob) tick(ctx context.Context) {
	_, err := j.orchestrator.PerformFullSync(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncInProgress):
		j.logger.Debug().Msg("previous sync still running, tick skipped")
	case ctx.Err() != nil:
	default:
		j.logger.Error().Err(err).Msg("scheduled sync failed")
	}
}

// Stop implements SyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
		j.logger.Info().Msg("sync job stopped")
	}
	j.wg.Wait()
}
