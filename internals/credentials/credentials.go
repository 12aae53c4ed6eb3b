// Package credentials stores the CurseForge api key in the OS keyring
// (or in a plain file if no keyring is available)
package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

var (
	keyringService = "tinkaros"
	curseForgeUser = "curseforge_api_key"
	// fallback file name inside the global dir
	curseForgeFile = "curseforge-api-key"
)

// DefaultCurseForgeKey is the public key tinkaros ships with
const DefaultCurseForgeKey = "$2a$10$Grlqtes/CrLoTgnvg174H.BKRX8caplGh0o1dOwxhhMWAgv.2J9cC"

// Store stores the CurseForge api key
type Store struct {
	globalDir     string
	NoKeyRingMode bool
	CurseForgeKey string
}

// New creates a new Store and loads an existing key
func New(globalDir string) (*Store, error) {
	store := &Store{globalDir: globalDir}
	if err := store.Find(); err != nil {
		return nil, err
	}
	return store, nil
}

// Find tries to find an existing key
func (s *Store) Find() error {
	key, err := keyring.Get(keyringService, curseForgeUser)
	switch {
	case err == nil:
		s.CurseForgeKey = key
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		// no key (yet) is fine
		return nil
	default:
		s.NoKeyRingMode = true
		return s.findFromFile()
	}
}

// findFromFile is the same as Find but reads from a plain file instead
func (s *Store) findFromFile() error {
	raw, err := os.ReadFile(filepath.Join(s.globalDir, curseForgeFile))
	switch {
	case err == nil:
		s.CurseForgeKey = strings.TrimSpace(string(raw))
		return nil
	case os.IsNotExist(err):
		return nil
	default:
		return err
	}
}

// SetCurseForgeKey sets `CurseForgeKey` and persists it
func (s *Store) SetCurseForgeKey(key string) error {
	s.CurseForgeKey = key
	if s.NoKeyRingMode {
		return s.writeFile(curseForgeFile, []byte(key))
	}
	return keyring.Set(keyringService, curseForgeUser, key)
}

// DeleteCurseForgeKey removes a stored key. Removing a missing key is not an error
func (s *Store) DeleteCurseForgeKey() error {
	s.CurseForgeKey = ""
	if s.NoKeyRingMode {
		err := os.Remove(filepath.Join(s.globalDir, curseForgeFile))
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	err := keyring.Delete(keyringService, curseForgeUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// ResolveCurseForgeKey returns the first non empty key of: configured, the stored key
// and `DefaultCurseForgeKey`
func (s *Store) ResolveCurseForgeKey(configured string) string {
	switch {
	case configured != "":
		return configured
	case s != nil && s.CurseForgeKey != "":
		return s.CurseForgeKey
	default:
		return DefaultCurseForgeKey
	}
}

// writeFile is a helper that writes a file to the global dir
func (s *Store) writeFile(location string, content []byte) error {
	if err := os.MkdirAll(s.globalDir, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.globalDir, location), content, 0600)
}
