package worker

import (
	"context"
	"errors"
	"time"

	"github.com/riskident-lab/rrit/pkg/usecase"
	"github.com/riskident-lab/rrit/pkg/utils/errutil"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
)

// AutosaveWorker periodically flushes the in-progress session to the
// scenario store so a crashed or closed session can be resumed.
//
// Architecture assumptions:
// - Single server instance, single session (no distributed locking)
// - A failed save is retried on the next interval; it never stops the
//   worker and never touches the in-memory session
type AutosaveWorker struct {
	assessment *usecase.AssessmentUseCase
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewAutosaveWorker creates a worker that saves the session every interval
// while it has unsaved changes.
func NewAutosaveWorker(assessment *usecase.AssessmentUseCase, interval time.Duration) *AutosaveWorker {
	return &AutosaveWorker{
		assessment: assessment,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the autosave loop in a background goroutine. It does not
// block server startup.
func (w *AutosaveWorker) Start(ctx context.Context) error {
	logging.Default().Info("Autosave worker starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion. A final flush
// runs before the worker exits so the latest answers are not lost.
func (w *AutosaveWorker) Stop() {
	logging.Default().Info("Autosave worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Autosave worker stopped")
}

func (w *AutosaveWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)

		case <-w.stopCh:
			w.flush(ctx)
			return

		case <-ctx.Done():
			logging.Default().Info("Autosave worker context cancelled")
			return
		}
	}
}

// flush saves the session when it has unsaved changes
func (w *AutosaveWorker) flush(ctx context.Context) {
	if !w.assessment.Dirty() {
		return
	}

	scenario, err := w.assessment.Save(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrSaveFailed) {
			logging.From(ctx).Warn("autosave failed (will retry next interval)",
				"error", err.Error())
			return
		}
		errutil.Handle(ctx, err, "autosave failed")
		return
	}

	logging.From(ctx).Debug("autosaved scenario",
		"scenario_id", scenario.ID,
		"answers", len(scenario.Answers))
}
