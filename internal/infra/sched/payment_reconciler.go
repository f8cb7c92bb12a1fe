package sched

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
	"property-marketplace/internal/infra/metrics"
	"property-marketplace/internal/usecase"
)

// PaymentReconciler periodically re-verifies parked checkout attempts whose
// confirmation never arrived (mobile-money authorizations, crashed settles)
// and drives them to a terminal state through the payment use case.
type PaymentReconciler struct {
	interval   time.Duration
	staleAfter time.Duration
	batchSize  int
	pending    repository.PendingAttemptRepository
	payUC      usecase.PaymentUseCase
	log        *zerolog.Logger
}

func NewPaymentReconciler(interval, staleAfter time.Duration, batchSize int, pending repository.PendingAttemptRepository, payUC usecase.PaymentUseCase, logger *zerolog.Logger) *PaymentReconciler {
	recLog := logger.With().Str("component", "PaymentReconciler").Logger()
	return &PaymentReconciler{
		interval:   interval,
		staleAfter: staleAfter,
		batchSize:  batchSize,
		pending:    pending,
		payUC:      payUC,
		log:        &recLog,
	}
}

func (w *PaymentReconciler) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting payment reconciler")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping payment reconciler")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *PaymentReconciler) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.staleAfter)
	attempts, err := w.pending.ListOlderThan(ctx, cutoff, w.batchSize)
	if err != nil {
		metrics.IncReconcilerSweep("error")
		w.log.Error().Err(err).Msg("list pending attempts failed")
		return
	}
	if len(attempts) == 0 {
		metrics.IncReconcilerSweep("empty")
		return
	}

	var settled, stillPending, failed int
	for _, a := range attempts {
		res, err := w.payUC.FinalizePending(ctx, a)
		if err != nil && errors.Is(err, domain.ErrRecordingFailed) {
			// Attempt stays parked; next sweep retries.
			w.log.Error().Err(err).Str("reference", a.Reference).Msg("recording failed during sweep")
			failed++
			continue
		}
		switch res.Status {
		case model.ResultSucceeded:
			settled++
		case model.ResultPending:
			stillPending++
		default:
			failed++
			if err := w.pending.Delete(ctx, a.Reference); err != nil && !errors.Is(err, domain.ErrNotFound) {
				w.log.Warn().Err(err).Str("reference", a.Reference).Msg("drop terminal attempt failed")
			}
		}
	}

	metrics.IncReconcilerSweep("ok")
	w.log.Info().
		Int("settled", settled).
		Int("pending", stillPending).
		Int("failed", failed).
		Msg("reconciler sweep finished")
}
