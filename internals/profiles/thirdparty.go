package profiles

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/magiconair/properties"

	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/pkg/modpack"
)

const (
	curseForgeInstanceFile = "minecraftinstance.json"
	prismPackFile          = "mmc-pack.json"
	prismInstanceFile      = "instance.cfg"
)

// applyCurseForge replaces minecraftinstance.json in the root
func (m *Merger) applyCurseForge(ctx context.Context, man *modpack.Manifest) error {
	raw, err := m.fetchConfig(ctx, man.LauncherConfigs.CurseForgeURL)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(m.Root, curseForgeInstanceFile), raw)
}

// applyPrism replaces mmc-pack.json and instance.cfg. Both live in the
// instance folder which is the parent of the root (the .minecraft folder)
func (m *Merger) applyPrism(ctx context.Context, man *modpack.Manifest) error {
	raw, err := m.fetchConfig(ctx, man.LauncherConfigs.PrismURL)
	if err != nil {
		return err
	}

	instanceDir := filepath.Dir(m.Root)
	if err := writeFile(filepath.Join(instanceDir, prismPackFile), raw); err != nil {
		return err
	}

	cfg, err := PrismInstanceConfig(man.Name)
	if err != nil {
		return merrors.E(merrors.LauncherConfigInvalid, "write "+prismInstanceFile, err)
	}
	return writeFile(filepath.Join(instanceDir, prismInstanceFile), cfg)
}

// PrismInstanceConfig returns the instance.cfg for an instance called name
func PrismInstanceConfig(name string) ([]byte, error) {
	p := properties.NewProperties()
	entries := [][2]string{
		{"InstanceType", "OneSix"},
		{"JoinServerOnLaunch", "false"},
		{"OverrideCommands", "false"},
		{"OverrideConsole", "false"},
		{"OverrideGameTime", "false"},
		{"OverrideJavaArgs", "false"},
		{"OverrideJavaLocation", "false"},
		{"OverrideMemory", "false"},
		{"OverrideMiscellaneous", "false"},
		{"OverrideNativeWorkarounds", "false"},
		{"OverridePerformance", "false"},
		{"OverrideWindow", "false"},
		{"iconKey", "default"},
		{"name", name},
		{"notes", ""},
	}
	for _, e := range entries {
		if _, _, err := p.Set(e[0], e[1]); err != nil {
			return nil, err
		}
	}

	buf := bytes.Buffer{}
	if _, err := p.Write(&buf, properties.UTF8); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
