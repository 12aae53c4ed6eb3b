// Package notify delivers status messages and progress updates of a sync run
// to whoever is watching (a terminal, a websocket, a log)
package notify

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/evergales/tinkaros/internals/merrors"
)

// Notifier receives human readable status messages and progress percentages (0-100)
type Notifier interface {
	Status(msg string) error
	Progress(percent int) error
}

// Nop discards everything
type Nop struct{}

func (Nop) Status(string) error { return nil }
func (Nop) Progress(int) error  { return nil }

// Log writes every update to a slog logger
type Log struct {
	Logger *slog.Logger
}

func (l Log) Status(msg string) error {
	l.Logger.Info("status", "msg", msg)
	return nil
}

func (l Log) Progress(percent int) error {
	l.Logger.Debug("progress", "percent", percent)
	return nil
}

// Multi fans out every update to all notifiers. All notifiers are called
// even if one of them fails
type Multi []Notifier

func (m Multi) Status(msg string) error {
	var errs []error
	for _, n := range m {
		if err := n.Status(msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Progress(percent int) error {
	var errs []error
	for _, n := range m {
		if err := n.Progress(percent); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Tracker wraps a Notifier for the duration of one run.
// Delivery failures never interrupt the run: the first one is remembered
// and returned by `Err`. Tracker is safe for concurrent use
type Tracker struct {
	n        Notifier
	mu       sync.Mutex
	err      error
	failures int
}

// Track returns a Tracker for n. If n already is a Tracker it is returned as is.
// A nil Notifier is treated as `Nop`
func Track(n Notifier) *Tracker {
	if t, ok := n.(*Tracker); ok {
		return t
	}
	if n == nil {
		n = Nop{}
	}
	return &Tracker{n: n}
}

// Status delivers msg. The returned error is always nil
func (t *Tracker) Status(msg string) error {
	t.record(t.n.Status(msg))
	return nil
}

// Progress delivers percent. The returned error is always nil
func (t *Tracker) Progress(percent int) error {
	t.record(t.n.Progress(percent))
	return nil
}

func (t *Tracker) record(err error) {
	if err == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures++
	if t.err == nil {
		t.err = err
	}
}

// Err returns a `NotificationDeliveryFailed` error if any delivery failed
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		return nil
	}
	return merrors.Errorf(merrors.NotificationDeliveryFailed, "notify", "%d updates were not delivered: %w", t.failures, t.err)
}
