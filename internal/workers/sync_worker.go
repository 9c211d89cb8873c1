// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/service"
)

type syncWorker struct {
	orchestrator service.SyncOrchestrator
	job          service.SyncJob
	interval     time.Duration

	logger *logger.Logger
}

// NewSyncWorker returns a Worker that syncs once right away and then hands
// over to job, which repeats the sync every interval until the worker's
// context is cancelled.
func NewSyncWorker(orchestrator service.SyncOrchestrator, job service.SyncJob, interval time.Duration, log *logger.Logger) Worker {
	return &syncWorker{
		orchestrator: orchestrator,
		job:          job,
		interval:     interval,
		logger:       log,
	}
}

func (w *syncWorker) Run(ctx context.Context) error {
	result, err := w.orchestrator.PerformFullSync(ctx)
	switch {
	case err == nil:
		w.logger.Info().
			Int("uploaded", result.Uploaded).
			Int("downloaded", result.Downloaded).
			Int("failed", result.Failed).
			Msg("startup sync finished")
	case errors.Is(err, service.ErrSyncInProgress), ctx.Err() != nil:
	default:
		// the periodic job retries, the daemon keeps running
		w.logger.Err(err).Msg("startup sync failed")
	}

	w.job.Start(ctx, w.interval)
	<-ctx.Done()
	w.job.Stop()

	return nil
}
