package resolver

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/evergales/tinkaros/internals/curse"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/modrinth"
	"github.com/evergales/tinkaros/pkg/modpack"
)

// resolveBleedingEdge resolves the newest compatible version of every mod.
// Modrinth is asked in one batch, CurseForge per project
func (r *Resolver) resolveBleedingEdge(ctx context.Context, man *modpack.Manifest) (*Resolved, error) {
	mrMods, cfMods, err := split(man.Mods)
	if err != nil {
		return nil, err
	}
	resolved := newResolved()

	cfFiles, err := r.latestCurseFiles(ctx, cfMods, man.Loader, man.GameVersion)
	if err != nil {
		return nil, err
	}
	for _, f := range cfFiles {
		resolved.add(f)
	}

	hashes := make([]string, len(mrMods))
	for i, mod := range mrMods {
		hashes[i] = string(mod.Version.(modpack.ModrinthVersionHash))
	}
	query := modrinth.UpdateQuery{
		Loaders:      []string{strings.ToLower(man.Loader)},
		GameVersions: []string{man.GameVersion},
	}
	versions, err := r.Modrinth.LatestVersionsFromHashes(ctx, hashes, query)
	if err != nil {
		return nil, merrors.E(merrors.RegistryFetchFailed, "fetch latest modrinth versions", err)
	}
	for i, mod := range mrMods {
		version, ok := lookupHash(versions, hashes[i])
		if !ok {
			return nil, merrors.Errorf(merrors.VersionResolutionFailed, "resolve "+mod.Name, "no version for %s %s", man.Loader, man.GameVersion)
		}
		f, err := modrinthFile(mod, version)
		if err != nil {
			return nil, err
		}
		resolved.add(f)
	}

	return resolved, nil
}

// latestCurseFiles fetches the files of every project in parallel and picks the
// newest compatible one. The result has the same order as mods
func (r *Resolver) latestCurseFiles(ctx context.Context, mods []modpack.ModEntry, loader, gameVersion string) ([]modpack.ResolvedFile, error) {
	results := make([]modpack.ResolvedFile, len(mods))
	if len(mods) == 0 {
		return results, nil
	}

	projects := make([]int, len(mods))
	for i, mod := range mods {
		project, ok := mod.Identifier.(modpack.CurseForgeProject)
		if !ok {
			return nil, merrors.Errorf(merrors.ManifestInvalid, "resolve "+mod.Name, "unsupported identifier %T", mod.Identifier)
		}
		projects[i] = int(project)
	}

	limit := r.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	loaderTag := Capitalize(loader)
	for i, mod := range mods {
		i, mod := i, mod
		g.Go(func() error {
			files, err := r.CurseForge.GetModFiles(ctx, projects[i], gameVersion)
			if err != nil {
				return merrors.E(merrors.RegistryFetchFailed, "fetch curseforge files of "+mod.Name, err)
			}
			latest := LatestCompatible(files, loaderTag, gameVersion)
			if latest == nil {
				return merrors.Errorf(merrors.VersionResolutionFailed, "resolve "+mod.Name, "no available file for %s %s", loaderTag, gameVersion)
			}
			f, err := curseFile(mod, *latest)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LatestCompatible returns the newest available file tagged with both loaderTag
// and gameVersion. If two files have the same date the later one in files wins.
// Returns nil if no file matches
func LatestCompatible(files []curse.File, loaderTag, gameVersion string) *curse.File {
	var latest *curse.File
	for i := range files {
		f := &files[i]
		if !f.IsAvailable || !f.HasGameVersion(loaderTag) || !f.HasGameVersion(gameVersion) {
			continue
		}
		if latest == nil || !f.FileDate.Before(latest.FileDate) {
			latest = f
		}
	}
	return latest
}

// lookupHash finds the version for hash. Modrinth answers with lowercase keys
func lookupHash(versions map[string]modrinth.Version, hash string) (modrinth.Version, bool) {
	if v, ok := versions[hash]; ok {
		return v, true
	}
	v, ok := versions[strings.ToLower(hash)]
	return v, ok
}
