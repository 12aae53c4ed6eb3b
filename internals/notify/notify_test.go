package notify

import (
	"errors"
	"testing"

	"github.com/evergales/tinkaros/internals/merrors"
)

type flaky struct {
	fail     bool
	statuses []string
}

func (f *flaky) Status(msg string) error {
	f.statuses = append(f.statuses, msg)
	if f.fail {
		return errors.New("connection closed")
	}
	return nil
}

func (f *flaky) Progress(int) error {
	if f.fail {
		return errors.New("connection closed")
	}
	return nil
}

func TestTracker(t *testing.T) {
	sink := &flaky{fail: true}
	tracker := Track(sink)

	if err := tracker.Status("updating jei"); err != nil {
		t.Fatalf("tracker should never return errors, got %v", err)
	}
	tracker.Progress(10)

	err := tracker.Err()
	if !errors.Is(err, merrors.NotificationDeliveryFailed) {
		t.Fatalf("expected NotificationDeliveryFailed, got %v", err)
	}
	if len(sink.statuses) != 1 {
		t.Fatalf("expected the status to reach the sink, got %v", sink.statuses)
	}
	if Track(tracker) != tracker {
		t.Fatal("expected Track to reuse an existing tracker")
	}
}

func TestTracker_NoFailures(t *testing.T) {
	tracker := Track(nil)
	tracker.Status("done!")
	tracker.Progress(100)
	if err := tracker.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestMulti(t *testing.T) {
	ok := &flaky{}
	broken := &flaky{fail: true}
	multi := Multi{broken, ok}

	if err := multi.Status("cleaning up"); err == nil {
		t.Fatal("expected error from broken sink")
	}
	if len(ok.statuses) != 1 {
		t.Fatal("expected healthy sink to still receive the status")
	}
}
