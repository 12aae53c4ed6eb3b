package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/evergales/tinkaros/internals/cmdlog"
)

// maybeSpinner is a spinner that can also just log text
type maybeSpinner struct {
	spin    bool
	spinner *spinner.Spinner
}

func newMaybeSpinner(spin bool) *maybeSpinner {
	s := &maybeSpinner{
		spin:    spin,
		spinner: spinner.New(spinner.CharSets[9], 150*time.Millisecond),
	}
	s.spinner.Prefix = " "
	return s
}

// Start starts the spinner or prints msg
func (m *maybeSpinner) Start(msg string) {
	m.spinner.Suffix = " " + msg
	if m.spin {
		m.spinner.Start()
	} else {
		fmt.Println(msg)
	}
}

// Update updates the spinner text
func (m *maybeSpinner) Update(msg string) {
	if m.spin {
		m.spinner.Lock()
		m.spinner.Suffix = " " + msg
		m.spinner.Unlock()
	} else {
		fmt.Println(msg)
	}
}

// Stop stops the spinner
func (m *maybeSpinner) Stop() {
	if m.spin {
		m.spinner.Stop()
	}
}

// plainNotifier prints one line per status and every 10% of progress.
// Used when stdout is not a terminal
type plainNotifier struct {
	logger *cmdlog.Logger

	mu   sync.Mutex
	last int
}

func newPlainNotifier(logger *cmdlog.Logger) *plainNotifier {
	return &plainNotifier{logger: logger, last: -1}
}

func (p *plainNotifier) Status(msg string) error {
	p.logger.Log(msg)
	return nil
}

func (p *plainNotifier) Progress(percent int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last >= 0 && percent/10 == p.last/10 && percent != 100 {
		return nil
	}
	p.last = percent
	p.logger.Log(fmt.Sprintf("progress %d%%", percent))
	return nil
}
