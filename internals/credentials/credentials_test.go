package credentials

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func TestStore_Keyring(t *testing.T) {
	keyring.MockInit()

	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if store.CurseForgeKey != "" {
		t.Fatal("expected no key")
	}
	if got := store.ResolveCurseForgeKey(""); got != DefaultCurseForgeKey {
		t.Fatalf("expected default key, got %q", got)
	}

	if err := store.SetCurseForgeKey("my-key"); err != nil {
		t.Fatal(err)
	}

	again, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if again.CurseForgeKey != "my-key" {
		t.Fatalf("expected stored key, got %q", again.CurseForgeKey)
	}
	if got := again.ResolveCurseForgeKey("from-flag"); got != "from-flag" {
		t.Fatalf("expected configured key to win, got %q", got)
	}

	if err := again.DeleteCurseForgeKey(); err != nil {
		t.Fatal(err)
	}
	if err := again.DeleteCurseForgeKey(); err != nil {
		t.Fatalf("deleting twice should be fine, got %v", err)
	}
}

func TestStore_FileFallback(t *testing.T) {
	dir := t.TempDir()
	store := &Store{globalDir: dir, NoKeyRingMode: true}

	if err := store.SetCurseForgeKey("file-key\n"); err != nil {
		t.Fatal(err)
	}

	other := &Store{globalDir: dir, NoKeyRingMode: true}
	if err := other.findFromFile(); err != nil {
		t.Fatal(err)
	}
	if other.CurseForgeKey != "file-key" {
		t.Fatalf("expected key from file, got %q", other.CurseForgeKey)
	}
}
