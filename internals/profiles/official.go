package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/evergales/tinkaros/internals/ctxlog"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/notify"
	"github.com/evergales/tinkaros/pkg/modpack"
)

// LauncherProfilesFile is the profile list of the official launcher
const LauncherProfilesFile = "launcher_profiles.json"

// applyDefault moves the loader versions into the official launcher and
// creates or updates the launcher profile
func (m *Merger) applyDefault(ctx context.Context, man *modpack.Manifest, tracker *notify.Tracker) error {
	logger := ctxlog.FromContext(ctx)

	if m.DotMinecraft == "" || !dirExists(m.DotMinecraft) {
		logger.Warn("official launcher data directory not found, skipping profile", "path", m.DotMinecraft)
		return nil
	}

	tracker.Status("installing required versions")
	src := filepath.Join(m.Root, versionsDir)
	if dirExists(src) {
		if err := moveTree(src, filepath.Join(m.DotMinecraft, versionsDir)); err != nil {
			return merrors.E(merrors.FilesystemError, "install versions", err)
		}
	}
	tracker.Progress(ProgressVersions)

	profilesPath := filepath.Join(m.DotMinecraft, LauncherProfilesFile)
	raw, err := os.ReadFile(profilesPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return merrors.E(merrors.FilesystemError, "read "+LauncherProfilesFile, err)
	}

	if len(bytes.TrimSpace(raw)) != 0 {
		profile := Profile{
			Name:          man.Name,
			LastVersionID: man.LoaderVersion,
			GameDir:       m.Root,
			Created:       m.now(),
		}
		updated, changed, err := MergeProfile(raw, profile)
		if err != nil {
			return err
		}
		if changed {
			tracker.Status("installing " + man.Name + " in mc launcher")
			if err := writeFile(profilesPath, updated); err != nil {
				return err
			}
		}
	}

	tracker.Progress(ProgressProfiles)
	return nil
}

// Profile is the profile tinkaros manages in launcher_profiles.json
type Profile struct {
	Name          string
	LastVersionID string
	GameDir       string
	Created       time.Time
}

// MergeProfile adds profile to the launcher_profiles.json document raw if it
// is missing (keyed by its name). An existing profile only gets its
// lastVersionId updated. All other fields are kept as they are.
// Returns the new document and whether anything changed
func MergeProfile(raw []byte, profile Profile) ([]byte, bool, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, merrors.E(merrors.LauncherConfigInvalid, "parse "+LauncherProfilesFile, err)
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}

	var profiles map[string]map[string]json.RawMessage
	if rawProfiles, ok := doc["profiles"]; ok {
		if err := json.Unmarshal(rawProfiles, &profiles); err != nil {
			return nil, false, merrors.E(merrors.LauncherConfigInvalid, "parse "+LauncherProfilesFile, err)
		}
	}
	// "profiles": null
	if profiles == nil {
		profiles = map[string]map[string]json.RawMessage{}
	}

	versionID := mustEncode(profile.LastVersionID)

	existing, ok := profiles[profile.Name]
	switch {
	case !ok || existing == nil:
		profiles[profile.Name] = map[string]json.RawMessage{
			"name":          mustEncode(profile.Name),
			"type":          mustEncode("custom"),
			"created":       mustEncode(profile.Created.UTC()),
			"lastVersionId": versionID,
			"icon":          mustEncode("Furnace"),
			"gameDir":       mustEncode(profile.GameDir),
		}
	default:
		var current string
		json.Unmarshal(existing["lastVersionId"], &current)
		if current == profile.LastVersionID {
			return raw, false, nil
		}
		existing["lastVersionId"] = versionID
	}

	rawProfiles, err := encodeJSON(profiles, "")
	if err != nil {
		return nil, false, merrors.E(merrors.LauncherConfigInvalid, "write "+LauncherProfilesFile, err)
	}
	doc["profiles"] = rawProfiles

	out, err := encodeJSON(doc, "  ")
	if err != nil {
		return nil, false, merrors.E(merrors.LauncherConfigInvalid, "write "+LauncherProfilesFile, err)
	}
	return out, true, nil
}

// encodeJSON is json.Marshal without HTML escaping, so values like
// "C:/Games & <Mods>" are written back the way the launcher wrote them
func encodeJSON(v interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func mustEncode(v interface{}) json.RawMessage {
	raw, err := encodeJSON(v, "")
	if err != nil {
		panic(err)
	}
	return raw
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// moveTree moves all files from src into dst. Files that already exist in dst
// are left untouched (and stay in src)
func moveTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, os.ModePerm)
		}
		if _, err := os.Lstat(target); err == nil {
			return nil
		}
		return moveFile(path, target)
	})
}

// moveFile renames src to dst and falls back to copying (eg. across devices)
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
