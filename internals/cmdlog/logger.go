// Package cmdlog prints pretty, human facing lines to the terminal.
// Machine readable logs go through ctxlog instead
package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	chalk     *gchalk.Builder
	emojis    bool
	indention int
}

// New returns a new Logger writing to stdout
func New() *Logger {
	l := &Logger{out: os.Stdout, chalk: gchalk.New(), emojis: runtime.GOOS != "windows"}
	// disable color for CI
	if os.Getenv("CI") != "" {
		l.DisableColor()
	}
	return l
}

// NewWithWriter returns a Logger without colors and emojis writing to w
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{out: w, chalk: gchalk.New(gchalk.ForceLevel(gchalk.LevelNone))}
}

// DisableColor turns off all styling
func (l *Logger) DisableColor() {
	l.chalk = gchalk.New(gchalk.ForceLevel(gchalk.LevelNone))
	l.emojis = false
}

func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) emoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a cyan bold line
func (l *Logger) Headline(s string) {
	l.println(l.chalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Infof is Info with formatting
func (l *Logger) Infof(format string, a ...interface{}) {
	l.println(fmt.Sprintf(format, a...))
}

// Log prints a dimmed line
func (l *Logger) Log(s string) {
	l.println(l.chalk.Gray(s))
}

// Success prints a green line
func (l *Logger) Success(s string) {
	l.println(l.emoji("✅") + l.chalk.Green(s))
}

// Warn prints a warning
func (l *Logger) Warn(s string) {
	l.println(l.emoji("⚠️ ") + l.chalk.WithYellow().Bold(s))
}

// Key returns s styled as a key of a key value pair
func (l *Logger) Key(s string) string {
	return l.chalk.Bold(s)
}

// Strikethrough returns s struck through
func (l *Logger) Strikethrough(s string) string {
	return l.chalk.Strikethrough(s)
}

// NewTask returns a new Task logger with `end` steps
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	logger.indention = 2
	return &Task{Logger: &logger, end: end}
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints a step headline like "[1 / 3] 🔎 Resolving mods"
func (t *Task) Step(e string, s string) {
	t.current++
	text := t.chalk.Cyan(fmt.Sprintf("[%d / %d] %s%s", t.current, t.end, t.emoji(e), s))
	// step headlines have no indentation
	fmt.Fprintln(t.out, text)
}
