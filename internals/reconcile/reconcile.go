// Package reconcile compares the desired mod files with the content of a mods directory
package reconcile

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/evergales/tinkaros/internals/merrors"
)

// Plan is the result of a reconciliation. All lists are sorted
type Plan struct {
	// ToInstall are desired file names that are missing locally
	ToInstall []string `json:"toInstall" yaml:"toInstall"`
	// ToDelete are absolute paths of local .jar files that are not desired
	ToDelete []string `json:"toDelete" yaml:"toDelete"`
	// ToKeep are desired file names that already exist locally
	ToKeep []string `json:"toKeep" yaml:"toKeep"`
}

// Empty returns true if nothing has to be installed or deleted
func (p *Plan) Empty() bool {
	return len(p.ToInstall) == 0 && len(p.ToDelete) == 0
}

// Diff computes the plan for the desired file names and the local file names in dir.
// Only local names ending in ".jar" are ever scheduled for deletion
func Diff(desired []string, local []string, dir string) Plan {
	localSet := make(map[string]struct{}, len(local))
	for _, name := range local {
		localSet[name] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, name := range desired {
		desiredSet[name] = struct{}{}
	}

	plan := Plan{ToInstall: []string{}, ToDelete: []string{}, ToKeep: []string{}}
	for name := range desiredSet {
		if _, ok := localSet[name]; ok {
			plan.ToKeep = append(plan.ToKeep, name)
		} else {
			plan.ToInstall = append(plan.ToInstall, name)
		}
	}
	for name := range localSet {
		if _, ok := desiredSet[name]; ok || !IsJar(name) {
			continue
		}
		plan.ToDelete = append(plan.ToDelete, filepath.Join(dir, name))
	}

	slices.Sort(plan.ToInstall)
	slices.Sort(plan.ToDelete)
	slices.Sort(plan.ToKeep)
	return plan
}

// IsJar returns true for file names with the ".jar" extension
func IsJar(name string) bool {
	return strings.HasSuffix(name, ".jar")
}

// PlanDir lists the regular files of modsDir (creating the directory if missing)
// and diffs them with desired
func PlanDir(desired []string, modsDir string) (Plan, error) {
	if err := os.MkdirAll(modsDir, os.ModePerm); err != nil {
		return Plan{}, merrors.E(merrors.FilesystemError, "create mods directory", err)
	}
	absDir, err := filepath.Abs(modsDir)
	if err != nil {
		return Plan{}, merrors.E(merrors.FilesystemError, "read mods directory", err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return Plan{}, merrors.E(merrors.FilesystemError, "read mods directory", err)
	}

	local := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		local = append(local, entry.Name())
	}

	return Diff(desired, local, absDir), nil
}
