// Package launchers knows where the supported Minecraft launchers live on disk
package launchers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/stoewer/go-strcase"
)

// Kind is a supported launcher
type Kind string

const (
	// Default is the official Minecraft launcher
	Default Kind = "default"
	// CurseForge is the CurseForge app
	CurseForge Kind = "curseforge"
	// Prism is the Prism launcher (or any other MultiMC fork reading mmc-pack.json)
	Prism Kind = "prism"
)

// Kinds are all supported launchers
var Kinds = []Kind{Default, CurseForge, Prism}

// ParseKind returns the Kind for s or an error if s is not a supported launcher
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unsupported launcher %q (valid: default, curseforge, prism)", s)
}

// Launcher is a detected launcher
type Launcher struct {
	Kind Kind `json:"kind"`
	// Executable is the path that was used to detect the launcher
	Executable string `json:"executable"`
	// Root is the suggested install root for the modpack
	Root string `json:"root"`
}

// Env resolves launcher paths for one operating system
type Env struct {
	GOOS   string
	Getenv func(string) string
	// Exists reports whether a path exists
	Exists func(string) bool
	// ConfigDir is the user config directory (see os.UserConfigDir)
	ConfigDir string
}

// System returns the Env of the running system
func System() *Env {
	configDir, _ := os.UserConfigDir()
	return &Env{
		GOOS:      runtime.GOOS,
		Getenv:    os.Getenv,
		Exists:    exists,
		ConfigDir: configDir,
	}
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// InstanceName returns the folder name used for a modpack name ("All Hail Mods" -> "all-hail-mods")
func InstanceName(modpack string) string {
	return strcase.KebabCase(modpack)
}

// firstExisting returns the first existing path, or the last candidate if none exists
func (e *Env) firstExisting(candidates ...string) string {
	for _, c := range candidates {
		if e.Exists(c) {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

func (e *Env) home() string {
	if e.GOOS == "windows" {
		return e.Getenv("USERPROFILE")
	}
	return e.Getenv("HOME")
}

// DotMinecraft returns the data directory of the official launcher.
// Empty on unsupported systems
func (e *Env) DotMinecraft() string {
	switch e.GOOS {
	case "windows":
		appData := e.Getenv("APPDATA")
		return e.firstExisting(
			filepath.Join(appData, ".minecraft"),
			filepath.Join(appData, "Roaming", ".minecraft"),
		)
	case "darwin":
		return filepath.Join(e.home(), "Library", "Application Support", "minecraft")
	case "linux":
		return filepath.Join(e.home(), ".minecraft")
	default:
		return ""
	}
}

// Executable returns the path that indicates kind is installed. Empty on unsupported systems
func (e *Env) Executable(kind Kind) string {
	switch kind {
	case Default:
		switch e.GOOS {
		case "windows":
			return e.firstExisting(
				filepath.Join(e.Getenv("ProgramFiles(x86)"), "Minecraft Launcher", "MinecraftLauncher.exe"),
				filepath.Join(e.Getenv("ProgramFiles"), "WindowsApps", "Microsoft.4297127D64EC6_1.1.28.0_x64__8wekyb3d8bbwe", "Minecraft.exe"),
			)
		case "darwin":
			return "/Applications/Minecraft.app"
		case "linux":
			return e.DotMinecraft()
		}
	case CurseForge:
		switch e.GOOS {
		case "windows":
			return filepath.Join(e.Getenv("ProgramFiles(x86)"), "Overwolf", "OverwolfLauncher.exe")
		case "darwin":
			return "/Applications/CurseForge.app"
		}
	case Prism:
		switch e.GOOS {
		case "windows":
			return filepath.Join(e.Getenv("LOCALAPPDATA"), "Programs", "PrismLauncher", "prismlauncher.exe")
		case "darwin":
			return "/Applications/PrismLauncher.app"
		case "linux":
			return e.firstExisting(
				"/usr/share/applications/org.prismlauncher.PrismLauncher.desktop",
				"/var/lib/flatpak/exports/share/applications/org.prismlauncher.PrismLauncher.desktop",
			)
		}
	}
	return ""
}

// Root returns the suggested install root of the modpack `name` for kind.
// Empty on unsupported systems
func (e *Env) Root(kind Kind, name string) string {
	instance := InstanceName(name)

	switch kind {
	case Default:
		if e.ConfigDir == "" {
			return ""
		}
		return filepath.Join(e.ConfigDir, "tinkaros", instance)
	case CurseForge:
		switch e.GOOS {
		case "windows":
			return filepath.Join(e.home(), "curseforge", "minecraft", "Instances", instance)
		case "darwin":
			return filepath.Join(e.home(), "Documents", "curseforge", "minecraft", "Instances", instance)
		}
	case Prism:
		switch e.GOOS {
		case "windows":
			return filepath.Join(e.Getenv("APPDATA"), "PrismLauncher", "instances", instance, ".minecraft")
		case "darwin":
			return filepath.Join(e.home(), "Library", "Application Support", "PrismLauncher", "instances", instance, ".minecraft")
		case "linux":
			instances := e.firstExisting(
				filepath.Join(e.home(), ".local", "share", "PrismLauncher", "instances"),
				filepath.Join(e.home(), ".var", "app", "org.prismlauncher.PrismLauncher", "data", "PrismLauncher", "instances"),
			)
			return filepath.Join(instances, instance, ".minecraft")
		}
	}
	return ""
}

// Detect returns all installed launchers together with the suggested install
// root for the modpack `name`
func (e *Env) Detect(name string) []Launcher {
	found := []Launcher{}
	for _, kind := range Kinds {
		executable := e.Executable(kind)
		if executable == "" || !e.Exists(executable) {
			continue
		}
		root := e.Root(kind, name)
		if root == "" {
			continue
		}
		found = append(found, Launcher{Kind: kind, Executable: executable, Root: root})
	}
	return found
}

// IsInstalled returns true if root exists and contains at least one entry
func IsInstalled(root string) bool {
	f, err := os.Open(root)
	if err != nil {
		return false
	}
	defer f.Close()

	names, err := f.Readdirnames(1)
	return err == nil && len(names) > 0
}
