package daemon

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconciler_ChecksEveryNthIdleFrame(t *testing.T) {
	calls := 0
	r := NewReconciler(ReconcilerConfig{
		Every:  30,
		Check:  func() (bool, error) { calls++; return false, nil },
		Logger: quietLogger(),
	})

	for i := 0; i < 29; i++ {
		r.Observe(false)
	}
	assert.Equal(t, 0, calls)

	r.Observe(false)
	assert.Equal(t, 1, calls)

	for i := 0; i < 60; i++ {
		r.Observe(false)
	}
	assert.Equal(t, 3, calls)
}

func TestReconciler_EventFramesDoNotCount(t *testing.T) {
	calls := 0
	r := NewReconciler(ReconcilerConfig{
		Every:  3,
		Check:  func() (bool, error) { calls++; return true, nil },
		Logger: quietLogger(),
	})

	r.Observe(false)
	r.Observe(true)
	r.Observe(true)
	r.Observe(false)
	assert.Equal(t, 0, calls)
	r.Observe(false)
	assert.Equal(t, 1, calls)

	checks, restacks := r.Stats()
	assert.Equal(t, 1, checks)
	assert.Equal(t, 1, restacks)
}

func TestReconciler_ErrorsAreNotFatal(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{
		Every:  1,
		Check:  func() (bool, error) { return false, errors.New("BadWindow") },
		Logger: quietLogger(),
	})
	r.Observe(false)
	r.Observe(false)

	checks, restacks := r.Stats()
	assert.Equal(t, 2, checks)
	assert.Equal(t, 0, restacks)
}

func TestReconciler_Reassert(t *testing.T) {
	reasserts := 0
	r := NewReconciler(ReconcilerConfig{
		Every:    2,
		Check:    func() (bool, error) { return false, nil },
		Reassert: func() error { reasserts++; return nil },
		Logger:   quietLogger(),
	})
	for i := 0; i < 4; i++ {
		r.Observe(false)
	}
	assert.Equal(t, 2, reasserts)
}

func TestReconciler_DefaultInterval(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	assert.Equal(t, 30, r.every)
	r.ReconcileNow()
	checks, _ := r.Stats()
	assert.Equal(t, 0, checks, "nil check is skipped")
}
