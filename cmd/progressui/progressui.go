// Package progressui renders the status and progress updates of a sync run as
// a spinner with a progress bar
package progressui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type statusMsg string
type progressMsg int
type doneMsg struct{}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
)

type model struct {
	spinner  spinner.Model
	progress progress.Model
	status   string
	percent  int
	width    int
	done     bool
	// cancel is called when the user quits
	cancel context.CancelFunc
}

func newModel(cancel context.CancelFunc) model {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return model{
		spinner:  s,
		progress: p,
		status:   "starting",
		cancel:   cancel,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.cancel != nil {
				m.cancel()
			}
			m.status = "aborting"
			return m, tea.Quit
		}
	case statusMsg:
		m.status = string(msg)
	case progressMsg:
		m.percent = int(msg)
		return m, m.progress.SetPercent(float64(msg) / 100)
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		newModel, cmd := m.progress.Update(msg)
		if newModel, ok := newModel.(progress.Model); ok {
			m.progress = newModel
		}
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}

	spin := m.spinner.View() + " "
	status := statusStyle.Render(m.status)
	prog := m.progress.View()
	percent := subtleStyle.Render(fmt.Sprintf(" %3d%%", m.percent))

	cellsRemaining := max(1, m.width-lipgloss.Width(spin+status+prog+percent))
	gap := strings.Repeat(" ", cellsRemaining)

	return spin + status + gap + prog + percent
}

// UI is a notifier that draws to the terminal. Stop has to be called before
// anything else is printed
type UI struct {
	program  *tea.Program
	finished chan struct{}
	err      error
}

// Start starts rendering. cancel is called if the user presses ctrl+c
func Start(cancel context.CancelFunc) *UI {
	ui := &UI{
		program:  tea.NewProgram(newModel(cancel)),
		finished: make(chan struct{}),
	}
	go func() {
		defer close(ui.finished)
		_, ui.err = ui.program.Run()
	}()
	return ui
}

// Status implements notify.Notifier
func (u *UI) Status(msg string) error {
	u.program.Send(statusMsg(msg))
	return nil
}

// Progress implements notify.Notifier
func (u *UI) Progress(percent int) error {
	u.program.Send(progressMsg(percent))
	return nil
}

// Stop removes the progress bar and waits until the terminal is restored
func (u *UI) Stop() error {
	u.program.Send(doneMsg{})
	<-u.finished
	return u.err
}
