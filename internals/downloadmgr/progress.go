package downloadmgr

import (
	"math"
	"sync"

	"github.com/evergales/tinkaros/internals/notify"
)

const (
	// ProgressBaseline is the progress a run starts at
	ProgressBaseline = 5
	// ProgressSpan is shared by all downloads of a run
	ProgressSpan = 80
	// ProgressMilestone is reported once all downloads finished
	ProgressMilestone = ProgressBaseline + ProgressSpan
)

// Progress tracks the progress of one download run. Every finished download
// adds `ProgressSpan / total`. Reported values never decrease
type Progress struct {
	mu      sync.Mutex
	n       notify.Notifier
	current float64
	step    float64
}

// NewProgress returns a new Progress for `total` downloads
func NewProgress(n notify.Notifier, total int) *Progress {
	step := 0.0
	if total > 0 {
		step = float64(ProgressSpan) / float64(total)
	}
	return &Progress{n: n, current: ProgressBaseline, step: step}
}

// Step marks one download as finished and reports the new value
func (p *Progress) Step() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += p.step
	// float error should never push us over the milestone
	value := int(math.Min(math.Round(p.current), ProgressMilestone))
	p.n.Progress(value)
	return value
}

// Finish reports the milestone
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ProgressMilestone
	p.n.Progress(ProgressMilestone)
}
