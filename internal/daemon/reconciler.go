package daemon

import (
	"log/slog"
)

// StackCheck corrects the overlay's stacking position. It reports whether a
// restack was needed.
type StackCheck func() (bool, error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	// Every is the number of idle frames (frames with no pending event)
	// between checks.
	Every int
	Check StackCheck
	// Reassert, when set, runs after each check to re-send the always-on-top
	// state request in case the window manager cleared it.
	Reassert func() error
	Logger   *slog.Logger
}

// Reconciler periodically checks for stacking drift caused by the window
// manager and corrects it. Its cadence is independent of the frame rate.
type Reconciler struct {
	every    int
	idle     int
	check    StackCheck
	reassert func() error
	logger   *slog.Logger

	checks   int
	restacks int
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig) *Reconciler {
	every := cfg.Every
	if every <= 0 {
		every = 30
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		every:    every,
		check:    cfg.Check,
		reassert: cfg.Reassert,
		logger:   logger,
	}
}

// Observe is called once per frame. Frames that had a pending event do not
// advance the counter; every Every-th idle frame triggers a check.
func (r *Reconciler) Observe(eventPending bool) {
	if eventPending {
		return
	}
	r.idle = (r.idle + 1) % r.every
	if r.idle == 0 {
		r.reconcile()
	}
}

// ReconcileNow triggers an immediate check.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}

// Stats returns how many checks ran and how many of them restacked.
func (r *Reconciler) Stats() (checks, restacks int) {
	return r.checks, r.restacks
}

func (r *Reconciler) reconcile() {
	if r.check == nil {
		return
	}
	r.checks++
	raised, err := r.check()
	if err != nil {
		r.logger.Warn("reconciler: stack check failed", "error", err)
	} else if raised {
		r.restacks++
		r.logger.Debug("reconciler: overlay raised back to top")
	}

	if r.reassert != nil {
		if err := r.reassert(); err != nil {
			r.logger.Warn("reconciler: failed to reassert always-on-top", "error", err)
		}
	}
}
