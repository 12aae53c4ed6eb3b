// Package profiles installs the modpack into the configured launcher: it applies
// the overrides archive and writes or merges the launcher specific files
package profiles

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mholt/archiver/v3"
	"github.com/tidwall/gjson"

	"github.com/evergales/tinkaros/internals/ctxlog"
	"github.com/evergales/tinkaros/internals/downloadmgr"
	"github.com/evergales/tinkaros/internals/launchers"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/notify"
	"github.com/evergales/tinkaros/pkg/modpack"
)

const (
	overridesArchive = "conf.zip"
	versionsDir      = "versions"

	// ProgressVersions is reported after the loader versions were moved into the launcher
	ProgressVersions = 90
	// ProgressProfiles is reported after launcher_profiles.json was handled
	ProgressProfiles = 95
)

// Merger applies the launcher specific part of an update
type Merger struct {
	Kind launchers.Kind
	// Root is the install root of the modpack
	Root string
	// DotMinecraft is the data directory of the official launcher. Only used by `launchers.Default`
	DotMinecraft string
	Client       *http.Client
	Notifier     notify.Notifier
	Now          func() time.Time
}

// New returns a new Merger
func New(kind launchers.Kind, root string, dotMinecraft string, n notify.Notifier) *Merger {
	return &Merger{
		Kind:         kind,
		Root:         root,
		DotMinecraft: dotMinecraft,
		Client:       http.DefaultClient,
		Notifier:     n,
		Now:          time.Now,
	}
}

// Apply installs overrides and launcher files for man. Nothing but the final
// cleanup happens if installedVersion equals the manifest version
func (m *Merger) Apply(ctx context.Context, man *modpack.Manifest, installedVersion string) error {
	logger := ctxlog.FromContext(ctx)
	tracker := notify.Track(m.Notifier)

	if installedVersion == man.Version {
		logger.Debug("launcher files are up to date", "version", installedVersion)
	} else if err := m.apply(ctx, man, tracker); err != nil {
		return err
	}

	tracker.Status("cleaning up")
	m.cleanup()
	return nil
}

func (m *Merger) apply(ctx context.Context, man *modpack.Manifest, tracker *notify.Tracker) error {
	if err := m.applyOverrides(ctx, man.OverridesURL); err != nil {
		return err
	}

	switch m.Kind {
	case launchers.Default:
		return m.applyDefault(ctx, man, tracker)
	case launchers.CurseForge:
		return m.applyCurseForge(ctx, man)
	case launchers.Prism:
		return m.applyPrism(ctx, man)
	default:
		return merrors.Errorf(merrors.LauncherConfigInvalid, "apply launcher config", "unsupported launcher %q", m.Kind)
	}
}

// applyOverrides downloads the overrides archive into the root and extracts it there
func (m *Merger) applyOverrides(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	archive := filepath.Join(m.Root, overridesArchive)
	item, err := downloadmgr.NewHTTPItem(m.Client, url, archive)
	if err != nil {
		return merrors.E(merrors.DownloadFailed, "download overrides", err)
	}
	if _, err := item.Download(ctx); err != nil {
		return merrors.E(merrors.DownloadFailed, "download overrides", err)
	}

	z := archiver.NewZip()
	z.OverwriteExisting = true
	z.MkdirAll = true
	if err := z.Unarchive(archive, m.Root); err != nil {
		return merrors.E(merrors.FilesystemError, "extract overrides", err)
	}
	return nil
}

// cleanup removes leftovers of the update. Errors are ignored
func (m *Merger) cleanup() {
	os.RemoveAll(filepath.Join(m.Root, versionsDir))
	os.Remove(filepath.Join(m.Root, overridesArchive))
}

// fetchConfig fetches a server provided launcher file and checks that it is valid json
func (m *Merger) fetchConfig(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, merrors.Errorf(merrors.LauncherConfigInvalid, "fetch launcher config", "modpack has no config for %s", m.Kind)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, merrors.E(merrors.DownloadFailed, "fetch launcher config", err)
	}
	res, err := m.Client.Do(req)
	if err != nil {
		return nil, merrors.E(merrors.DownloadFailed, "fetch launcher config", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, merrors.Errorf(merrors.DownloadFailed, "fetch launcher config", "unexpected status code: %d", res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, merrors.E(merrors.DownloadFailed, "fetch launcher config", err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, merrors.Errorf(merrors.LauncherConfigInvalid, "fetch launcher config", "%s is not valid json", url)
	}
	return raw, nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return merrors.E(merrors.FilesystemError, "write "+filepath.Base(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return merrors.E(merrors.FilesystemError, "write "+filepath.Base(path), err)
	}
	return nil
}

func (m *Merger) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
