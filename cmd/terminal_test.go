package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evergales/tinkaros/internals/cmdlog"
)

func TestPlainNotifier(t *testing.T) {
	buf := &bytes.Buffer{}
	n := newPlainNotifier(cmdlog.NewWithWriter(buf))

	n.Status("updating jei-1.20.1")
	for _, p := range []int{5, 6, 12, 18, 85, 90, 95, 100} {
		n.Progress(p)
	}

	want := []string{
		"updating jei-1.20.1",
		"progress 5%",
		"progress 12%",
		"progress 85%",
		"progress 90%",
		"progress 100%",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}
