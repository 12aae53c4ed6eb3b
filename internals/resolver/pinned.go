package resolver

import (
	"context"

	"github.com/evergales/tinkaros/internals/curse"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/pkg/modpack"
)

// resolvePinned resolves the exact versions from the manifest with one
// batch request per registry
func (r *Resolver) resolvePinned(ctx context.Context, man *modpack.Manifest) (*Resolved, error) {
	mrMods, cfMods, err := split(man.Mods)
	if err != nil {
		return nil, err
	}
	resolved := newResolved()

	ids := make([]int, len(cfMods))
	for i, mod := range cfMods {
		ids[i] = int(mod.Version.(modpack.CurseForgeVersionID))
	}
	files, err := r.CurseForge.GetFiles(ctx, ids)
	if err != nil {
		return nil, merrors.E(merrors.RegistryFetchFailed, "fetch curseforge files", err)
	}
	byID := make(map[int]curse.File, len(files))
	for _, file := range files {
		byID[file.ID] = file
	}
	for i, mod := range cfMods {
		file, ok := byID[ids[i]]
		if !ok {
			return nil, merrors.Errorf(merrors.VersionResolutionFailed, "resolve "+mod.Name, "curseforge file %d not found", ids[i])
		}
		f, err := curseFile(mod, file)
		if err != nil {
			return nil, err
		}
		resolved.add(f)
	}

	hashes := make([]string, len(mrMods))
	for i, mod := range mrMods {
		hashes[i] = string(mod.Version.(modpack.ModrinthVersionHash))
	}
	versions, err := r.Modrinth.VersionsFromHashes(ctx, hashes)
	if err != nil {
		return nil, merrors.E(merrors.RegistryFetchFailed, "fetch modrinth versions", err)
	}
	for i, mod := range mrMods {
		version, ok := lookupHash(versions, hashes[i])
		if !ok {
			return nil, merrors.Errorf(merrors.VersionResolutionFailed, "resolve "+mod.Name, "no modrinth version for hash %s", hashes[i])
		}
		f, err := modrinthFile(mod, version)
		if err != nil {
			return nil, err
		}
		resolved.add(f)
	}

	return resolved, nil
}
