/*
Package modpack defines the remote document that describes a modpack.

The document is a single JSON file served from a well known URL. It names the
modpack, its loader and game version, the URLs of additional assets and the list
of mods. Each mod is identified on exactly one of the two supported registries
(Modrinth or CurseForge) together with a pinned version on the same registry.
*/
package modpack

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Document is the root of the remote JSON document
type Document struct {
	Modpack Manifest `json:"modpack"`
}

// Manifest describes the desired state of a modpack installation
type Manifest struct {
	// Name is the display name of the modpack. It is also used as the launcher profile name.
	Name string `json:"name"`
	// Version is the modpack version. It is compared against the local version ledger
	Version string `json:"version"`
	// Loader is the mod loader name like "forge" or "fabric"
	Loader string `json:"mod_loader"`
	// LoaderVersion is the launcher version id of the loader (eg. "1.20.1-forge-47.2.0")
	LoaderVersion string `json:"mod_loader_version"`
	// GameVersion is the exact Minecraft version like "1.20.1"
	GameVersion string `json:"game_version"`
	// OverridesURL points to a zip archive that is extracted over the install root
	OverridesURL string `json:"overrides_url,omitempty"`
	// ChangelogURL points to a human readable changelog
	ChangelogURL    string          `json:"changelog_url,omitempty"`
	LauncherConfigs LauncherConfigs `json:"launcher_configs"`
	Mods            []ModEntry      `json:"mods"`
}

// LauncherConfigs are server provided files for third party launchers
type LauncherConfigs struct {
	CurseForgeURL string `json:"curseforge_url,omitempty"`
	PrismURL      string `json:"prism_url,omitempty"`
}

// Decode reads a `Document` from r and returns the contained manifest
func Decode(r io.Reader) (*Manifest, error) {
	doc := Document{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc.Modpack, nil
}

// Validate checks the required fields and the integrity of every mod entry.
// The first problem found is returned
func (m *Manifest) Validate() error {
	switch {
	case m.Name == "":
		return ErrNameEmpty
	case m.Version == "":
		return ErrVersionEmpty
	case m.Loader == "":
		return ErrLoaderEmpty
	case m.GameVersion == "":
		return ErrGameVersionEmpty
	}

	for i := range m.Mods {
		if err := m.Mods[i].Validate(); err != nil {
			return fmt.Errorf("mods[%d]: %w", i, err)
		}
	}
	return nil
}

// ResolvedFile is a single downloadable file that should end up in the mods directory
type ResolvedFile struct {
	Filename    string `json:"filename" yaml:"filename"`
	DownloadURL string `json:"downloadUrl" yaml:"downloadUrl"`
	// Published is the publish date of the file. Only set by the bleeding-edge policy
	Published time.Time `json:"published,omitempty" yaml:"published,omitempty"`
	// Source is the registry this file was resolved from
	Source Registry `json:"source" yaml:"source"`
}
