// Package ledger reads and writes the version.toml file in the install root.
// It records which modpack version was installed last and when
package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"

	"github.com/evergales/tinkaros/internals/merrors"
)

// Filename is the name of the ledger inside the install root
const Filename = "version.toml"

const header = "#needed for version checking DO NOT TOUCH\n"

// Entry is the content of the ledger
type Entry struct {
	Version string `toml:"version"`
	// LastUpdated is a unix timestamp in seconds
	LastUpdated int64 `toml:"last_updated"`
}

// Installed returns false for the zero Entry
func (e Entry) Installed() bool {
	return e.Version != ""
}

// Time returns LastUpdated as time
func (e Entry) Time() time.Time {
	return time.Unix(e.LastUpdated, 0)
}

// Path returns the ledger path for the install root
func Path(root string) string {
	return filepath.Join(root, Filename)
}

// Read reads the ledger of root. A missing or unparsable ledger returns the zero Entry
func Read(root string) Entry {
	raw, err := os.ReadFile(Path(root))
	if err != nil {
		return Entry{}
	}

	entry := Entry{}
	if err := toml.Unmarshal(raw, &entry); err != nil {
		return Entry{}
	}
	return entry
}

// Record writes version and now into the ledger of root
func Record(root string, version string, now time.Time) error {
	raw, err := toml.Marshal(Entry{Version: version, LastUpdated: now.Unix()})
	if err != nil {
		return merrors.E(merrors.FilesystemError, "write "+Filename, err)
	}

	raw = append([]byte(header), raw...)
	if err := os.WriteFile(Path(root), raw, 0o644); err != nil {
		return merrors.E(merrors.FilesystemError, "write "+Filename, err)
	}
	return nil
}

// Outcome of comparing the installed with the available version
type Outcome int

const (
	NotInstalled Outcome = iota
	UpToDate
	Outdated
	// Ahead means the installed version is newer than the available one
	Ahead
)

func (o Outcome) String() string {
	switch o {
	case NotInstalled:
		return "not installed"
	case UpToDate:
		return "up to date"
	case Outdated:
		return "outdated"
	case Ahead:
		return "ahead"
	default:
		return "unknown"
	}
}

// ErrNotSemver is wrapped if a version could not be parsed and the versions differ
var ErrNotSemver = errors.New("version is not a valid semantic version")

// Compare compares the installed entry with the available version.
// Equal strings are always `UpToDate`. Differing versions that can not be
// parsed as semver are `Outdated` together with an error wrapping ErrNotSemver
func Compare(installed Entry, available string) (Outcome, error) {
	if !installed.Installed() {
		return NotInstalled, nil
	}
	if installed.Version == available {
		return UpToDate, nil
	}

	have, err := semver.NewVersion(installed.Version)
	if err != nil {
		return Outdated, errors.Join(ErrNotSemver, err)
	}
	want, err := semver.NewVersion(available)
	if err != nil {
		return Outdated, errors.Join(ErrNotSemver, err)
	}

	switch have.Compare(want) {
	case -1:
		return Outdated, nil
	case 1:
		return Ahead, nil
	default:
		return UpToDate, nil
	}
}
