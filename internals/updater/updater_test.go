package updater

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/evergales/tinkaros/internals/curse"
	"github.com/evergales/tinkaros/internals/launchers"
	"github.com/evergales/tinkaros/internals/ledger"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/modrinth"
	"github.com/evergales/tinkaros/internals/resolver"
	"github.com/evergales/tinkaros/pkg/modpack"
)

type staticManifest struct {
	man *modpack.Manifest
	err error
}

func (s staticManifest) Get(context.Context) (*modpack.Manifest, error) {
	return s.man, s.err
}

type fakeModrinth struct {
	baseURL string
}

func (f fakeModrinth) VersionsFromHashes(_ context.Context, hashes []string) (map[string]modrinth.Version, error) {
	out := make(map[string]modrinth.Version)
	for _, h := range hashes {
		out[h] = modrinth.Version{
			ID:    "v-" + h,
			Files: []modrinth.File{{URL: f.baseURL + "/mods/" + h + ".jar", Filename: h + ".jar", Primary: true}},
		}
	}
	return out, nil
}

func (f fakeModrinth) LatestVersionsFromHashes(ctx context.Context, hashes []string, _ modrinth.UpdateQuery) (map[string]modrinth.Version, error) {
	return f.VersionsFromHashes(ctx, hashes)
}

type fakeCurse struct {
	baseURL string
}

func (f fakeCurse) GetFiles(_ context.Context, ids []int) ([]curse.File, error) {
	files := make([]curse.File, 0, len(ids))
	for _, id := range ids {
		files = append(files, curse.File{ID: id, FileName: "cf.jar", DownloadURL: f.baseURL + "/mods/cf.jar"})
	}
	return files, nil
}

func (f fakeCurse) GetModFiles(context.Context, int, string) ([]curse.File, error) {
	return nil, nil
}

type recorder struct {
	mu       sync.Mutex
	statuses []string
	progress []int
	fail     bool
}

func (r *recorder) Status(msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, msg)
	if r.fail {
		return errors.New("connection reset")
	}
	return nil
}

func (r *recorder) Progress(p int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, p)
	return nil
}

func modServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if filepath.Dir(r.URL.Path) != "/mods" || r.URL.Path == "/mods/missing.jar" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		hits.Add(1)
		w.Write([]byte("jar " + r.URL.Path))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func testManifest() *modpack.Manifest {
	return &modpack.Manifest{
		Name:          "ahms",
		Version:       "1.2.0",
		Loader:        "forge",
		LoaderVersion: "1.20.1-forge-47.2.0",
		GameVersion:   "1.20.1",
		Mods: []modpack.ModEntry{
			{Name: "JEI", Identifier: modpack.ModrinthProject("u6dRKJwZ"), Version: modpack.ModrinthVersionHash("jei")},
			{Name: "Create", Identifier: modpack.ModrinthProject("LNytGWDc"), Version: modpack.ModrinthVersionHash("create")},
			{Name: "Mekanism", Identifier: modpack.CurseForgeProject(268560), Version: modpack.CurseForgeVersionID(4749198)},
		},
	}
}

func newUpdater(t *testing.T, srv *httptest.Server, man *modpack.Manifest, n *recorder) *Updater {
	return &Updater{
		Manifests:   staticManifest{man: man},
		Resolver:    resolver.New(fakeModrinth{srv.URL}, fakeCurse{srv.URL}, resolver.Pinned),
		Root:        filepath.Join(t.TempDir(), "ahms"),
		Launcher:    launchers.Default,
		Concurrency: 4,
		Client:      srv.Client(),
		Notifier:    n,
		Now:         func() time.Time { return time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestSync(t *testing.T) {
	srv, hits := modServer(t)
	n := &recorder{}
	u := newUpdater(t, srv, testManifest(), n)

	modsDir := filepath.Join(u.Root, ModsDir)
	os.MkdirAll(modsDir, os.ModePerm)
	os.WriteFile(filepath.Join(modsDir, "jei.jar"), []byte("old"), 0644)
	os.WriteFile(filepath.Join(modsDir, "outdated.jar"), []byte("old"), 0644)
	os.WriteFile(filepath.Join(modsDir, "notes.txt"), []byte("keep me"), 0644)

	result, err := u.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Plan.ToInstall) != 2 || hits.Load() != 2 {
		t.Errorf("expected 2 downloads, got plan %v and %d requests", result.Plan.ToInstall, hits.Load())
	}
	for _, name := range []string{"jei.jar", "create.jar", "cf.jar", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(modsDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(modsDir, "outdated.jar")); !os.IsNotExist(err) {
		t.Error("expected outdated.jar to be removed")
	}
	if result.Written == 0 {
		t.Error("expected written bytes to be counted")
	}

	entry := ledger.Read(u.Root)
	if entry.Version != "1.2.0" {
		t.Errorf("ledger version = %q, want 1.2.0", entry.Version)
	}
	if entry.LastUpdated != u.Now().Unix() {
		t.Errorf("ledger timestamp = %d, want %d", entry.LastUpdated, u.Now().Unix())
	}

	if last := n.statuses[len(n.statuses)-1]; last != "done!" {
		t.Errorf("last status = %q, want done!", last)
	}
	if last := n.progress[len(n.progress)-1]; last != 100 {
		t.Errorf("last progress = %d, want 100", last)
	}
	for i := 1; i < len(n.progress); i++ {
		if n.progress[i] < n.progress[i-1] {
			t.Fatalf("progress is not monotonic: %v", n.progress)
		}
	}
}

func TestSync_Idempotent(t *testing.T) {
	srv, hits := modServer(t)
	u := newUpdater(t, srv, testManifest(), &recorder{})

	if _, err := u.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := hits.Load()

	result, err := u.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Plan.Empty() {
		t.Errorf("expected nothing to do on the second run, got %+v", result.Plan)
	}
	if hits.Load() != first {
		t.Errorf("expected no downloads on the second run, got %d", hits.Load()-first)
	}
	if result.PreviousVersion != "1.2.0" {
		t.Errorf("PreviousVersion = %q, want 1.2.0", result.PreviousVersion)
	}
}

func TestSync_DownloadFailure(t *testing.T) {
	srv, _ := modServer(t)
	man := testManifest()
	man.Mods = append(man.Mods, modpack.ModEntry{
		Name: "Missing", Identifier: modpack.ModrinthProject("xxxx"), Version: modpack.ModrinthVersionHash("missing"),
	})
	u := newUpdater(t, srv, man, &recorder{})

	_, err := u.Sync(context.Background())
	if !errors.Is(err, merrors.DownloadFailed) {
		t.Fatalf("expected DownloadFailed, got %v", err)
	}
	if entry := ledger.Read(u.Root); entry.Installed() {
		t.Error("expected no ledger entry after a failed run")
	}
}

func TestSync_ManifestFailure(t *testing.T) {
	srv, hits := modServer(t)
	u := newUpdater(t, srv, nil, &recorder{})
	u.Manifests = staticManifest{err: merrors.Errorf(merrors.ManifestInvalid, "fetch manifest", "unexpected status 500")}

	_, err := u.Sync(context.Background())
	if !errors.Is(err, merrors.ManifestInvalid) {
		t.Fatalf("expected ManifestInvalid, got %v", err)
	}
	if hits.Load() != 0 {
		t.Error("expected no downloads")
	}
}

func TestSync_NotificationFailure(t *testing.T) {
	srv, _ := modServer(t)
	u := newUpdater(t, srv, testManifest(), &recorder{fail: true})

	_, err := u.Sync(context.Background())
	if !errors.Is(err, merrors.NotificationDeliveryFailed) {
		t.Fatalf("expected NotificationDeliveryFailed, got %v", err)
	}
	// the run itself still completed
	if entry := ledger.Read(u.Root); entry.Version != "1.2.0" {
		t.Errorf("ledger version = %q, want 1.2.0", entry.Version)
	}
}

func TestPlan_NoDownloads(t *testing.T) {
	srv, hits := modServer(t)
	u := newUpdater(t, srv, testManifest(), &recorder{})

	_, resolved, plan, err := u.Plan(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved.Files) != 3 || len(plan.ToInstall) != 3 {
		t.Errorf("expected 3 files to install, got %v", plan.ToInstall)
	}
	if hits.Load() != 0 {
		t.Error("Plan must not download anything")
	}
}
