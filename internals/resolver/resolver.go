// Package resolver turns the mod entries of a manifest into concrete downloadable files
package resolver

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/evergales/tinkaros/internals/ctxlog"
	"github.com/evergales/tinkaros/internals/curse"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/modrinth"
	"github.com/evergales/tinkaros/pkg/modpack"
)

// DefaultConcurrency limits the parallel per project requests of the bleeding-edge policy
const DefaultConcurrency = 8

// ModrinthRegistry is the part of the Modrinth api the resolver needs
type ModrinthRegistry interface {
	VersionsFromHashes(ctx context.Context, hashes []string) (map[string]modrinth.Version, error)
	LatestVersionsFromHashes(ctx context.Context, hashes []string, query modrinth.UpdateQuery) (map[string]modrinth.Version, error)
}

// CurseForgeRegistry is the part of the CurseForge api the resolver needs
type CurseForgeRegistry interface {
	GetFiles(ctx context.Context, fileIDs []int) ([]curse.File, error)
	GetModFiles(ctx context.Context, modID int, gameVersion string) ([]curse.File, error)
}

// Resolver resolves manifests
type Resolver struct {
	Modrinth   ModrinthRegistry
	CurseForge CurseForgeRegistry
	Policy     Policy
	// Concurrency limits the parallel CurseForge requests of the bleeding-edge policy
	Concurrency int
}

// New returns a new Resolver
func New(mr ModrinthRegistry, cf CurseForgeRegistry, policy Policy) *Resolver {
	return &Resolver{
		Modrinth:    mr,
		CurseForge:  cf,
		Policy:      policy,
		Concurrency: DefaultConcurrency,
	}
}

// Resolved is the desired content of the mods directory keyed by file name
type Resolved struct {
	Files map[string]modpack.ResolvedFile
}

func newResolved() *Resolved {
	return &Resolved{Files: make(map[string]modpack.ResolvedFile)}
}

// add inserts f, replacing a file with the same name
func (r *Resolved) add(f modpack.ResolvedFile) {
	r.Files[f.Filename] = f
}

// Filenames returns all file names sorted
func (r *Resolved) Filenames() []string {
	names := maps.Keys(r.Files)
	slices.Sort(names)
	return names
}

// Sorted returns all files sorted by file name
func (r *Resolved) Sorted() []modpack.ResolvedFile {
	files := make([]modpack.ResolvedFile, 0, len(r.Files))
	for _, name := range r.Filenames() {
		files = append(files, r.Files[name])
	}
	return files
}

// Resolve resolves every mod of man with the configured policy.
// CurseForge files are inserted before Modrinth files, so Modrinth wins if
// both registries deliver a file with the same name
func (r *Resolver) Resolve(ctx context.Context, man *modpack.Manifest) (*Resolved, error) {
	logger := ctxlog.FromContext(ctx)

	for i := range man.Mods {
		if err := man.Mods[i].Validate(); err != nil {
			return nil, merrors.E(merrors.ManifestInvalid, "resolve", err)
		}
	}

	var (
		resolved *Resolved
		err      error
	)
	switch r.Policy {
	case Pinned:
		resolved, err = r.resolvePinned(ctx, man)
	case BleedingEdge:
		resolved, err = r.resolveBleedingEdge(ctx, man)
	default:
		return nil, fmt.Errorf("unknown policy %d", r.Policy)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("resolved mods", "policy", r.Policy.String(), "mods", len(man.Mods), "files", len(resolved.Files))
	return resolved, nil
}

// split sorts the mods by registry. Entries are expected to be validated
func split(mods []modpack.ModEntry) (mr []modpack.ModEntry, cf []modpack.ModEntry, err error) {
	for _, mod := range mods {
		switch mod.Version.(type) {
		case modpack.ModrinthVersionHash:
			mr = append(mr, mod)
		case modpack.CurseForgeVersionID:
			cf = append(cf, mod)
		default:
			return nil, nil, merrors.Errorf(merrors.ManifestInvalid, "resolve", "%s: unsupported version %T", mod.Name, mod.Version)
		}
	}
	return mr, cf, nil
}

func modrinthFile(mod modpack.ModEntry, version modrinth.Version) (modpack.ResolvedFile, error) {
	file := version.RelevantFile()
	if file == nil {
		return modpack.ResolvedFile{}, merrors.Errorf(merrors.VersionResolutionFailed, "resolve "+mod.Name, "version %s has no primary file", version.ID)
	}
	return modpack.ResolvedFile{
		Filename:    file.Filename,
		DownloadURL: file.URL,
		Published:   version.DatePublished,
		Source:      modpack.Modrinth,
	}, nil
}

func curseFile(mod modpack.ModEntry, file curse.File) (modpack.ResolvedFile, error) {
	if file.DownloadURL == "" {
		return modpack.ResolvedFile{}, merrors.Errorf(merrors.VersionResolutionFailed, "resolve "+mod.Name, "file %d can not be downloaded from third party apps", file.ID)
	}
	return modpack.ResolvedFile{
		Filename:    file.FileName,
		DownloadURL: file.DownloadURL,
		Published:   file.FileDate,
		Source:      modpack.CurseForge,
	}, nil
}

// Capitalize uppercases the first letter of s and keeps the rest as is
// ("forge" -> "Forge", "neoForge" -> "NeoForge")
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
