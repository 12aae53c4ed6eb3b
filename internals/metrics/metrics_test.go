package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tinkaros.prom")

	err := WriteTextfile(path, Run{
		Modpack:   "ahms",
		Version:   "1.4.0",
		Success:   true,
		Installed: 3,
		Deleted:   1,
		Kept:      40,
		Bytes:     2048,
		Duration:  1500 * time.Millisecond,
		Finished:  time.Unix(1690000000, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)
	for _, want := range []string{
		`tinkaros_sync_success{modpack="ahms"} 1`,
		`tinkaros_mods{action="installed",modpack="ahms"} 3`,
		`tinkaros_sync_duration_seconds{modpack="ahms"} 1.5`,
		`tinkaros_modpack_info{modpack="ahms",version="1.4.0"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}
