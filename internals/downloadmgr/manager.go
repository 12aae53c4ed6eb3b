// Package downloadmgr downloads many files in parallel with a fixed upper bound
package downloadmgr

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/notify"
)

const (
	// DefaultConcurrency is the number of parallel downloads if nothing else is configured
	DefaultConcurrency = 50
	// MaxConcurrency is the highest accepted concurrency
	MaxConcurrency = 256
)

// ClampConcurrency returns c if it is in the accepted range (1-256), `DefaultConcurrency` otherwise
func ClampConcurrency(c int) int {
	if c < 1 || c > MaxConcurrency {
		return DefaultConcurrency
	}
	return c
}

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) (int64, error)
	Name() string
}

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue []Downloader
	// Concurrency is the number of parallel downloads, see `ClampConcurrency`
	Concurrency int
	// Notifier receives a status per download and the overall progress
	Notifier notify.Notifier

	written atomic.Int64
}

// New creates a new downloadmgr
func New(concurrency int, n notify.Notifier) *DownloadManager {
	return &DownloadManager{Concurrency: concurrency, Notifier: n}
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Written returns the number of bytes downloaded so far
func (d *DownloadManager) Written() int64 {
	return d.written.Load()
}

// Start downloads all queued items. The first failed download fails the run:
// no further downloads are started, the running ones are waited for and the
// error is returned as `DownloadFailed`. Progress ends at `ProgressMilestone`
// on success
func (d *DownloadManager) Start(ctx context.Context) error {
	tracker := notify.Track(d.Notifier)
	progress := NewProgress(tracker, len(d.queue))
	sem := make(chan int, ClampConcurrency(d.Concurrency))

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
		failed   = make(chan struct{})
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			close(failed)
		})
	}

schedule:
	for _, item := range d.queue {
		select {
		case sem <- 1:
		case <-failed:
			break schedule
		case <-ctx.Done():
			fail(merrors.E(merrors.DownloadFailed, "download", ctx.Err()))
			break schedule
		}
		select {
		case <-failed:
			<-sem
			break schedule
		default:
		}

		wg.Add(1)
		go func(item Downloader) {
			defer wg.Done()
			defer func() { <-sem }()

			tracker.Status("updating " + strings.TrimSuffix(item.Name(), ".jar"))
			n, err := item.Download(ctx)
			if err != nil {
				fail(merrors.E(merrors.DownloadFailed, "download "+item.Name(), err))
				return
			}
			d.written.Add(n)
			progress.Step()
		}(item)
	}

	wg.Wait()
	if firstErr != nil {
		return firstErr
	}

	progress.Finish()
	return nil
}

// Cleanup removes all given files. Files that are already gone are ignored.
// All files are tried, failures are returned as one `FilesystemError`
func Cleanup(paths []string) error {
	var errs []error
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if len(errs) != 0 {
		return merrors.E(merrors.FilesystemError, "remove outdated mods", errors.Join(errs...))
	}
	return nil
}
