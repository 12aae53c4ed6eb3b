// Package config maps the viper configuration onto a typed Config
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/evergales/tinkaros/internals/downloadmgr"
	"github.com/evergales/tinkaros/internals/launchers"
	"github.com/evergales/tinkaros/internals/manifeststore"
	"github.com/evergales/tinkaros/internals/resolver"
)

// EnvPrefix is the prefix of all environment variables (eg. TINKAROS_POLICY)
const EnvPrefix = "TINKAROS"

// config keys. viper keys are case insensitive
const (
	KeyInit             = "init"
	KeyLauncher         = "launcher"
	KeyPath             = "path"
	KeyPolicy           = "policy"
	KeyConcurrency      = "concurrency"
	KeyManifestURL      = "manifesturl"
	KeyCurseForgeAPIKey = "curseforge.apikey"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyNonInteractive   = "noninteractive"
	KeyNotifyWebsocket  = "notify.websocket"
	KeyMetricsTextfile  = "metrics.textfile"
)

const (
	KindString = iota
	KindBool
	KindInt
)

// Entry describes a config key that can be changed with `tinkaros config set`
type Entry struct {
	Kind int
	Help string
}

// Entries are all user settable keys
var Entries = map[string]Entry{
	KeyInit:             {KindBool, "set after the first setup"},
	KeyLauncher:         {KindString, "launcher to install into: default, curseforge or prism"},
	KeyPath:             {KindString, "install root of the modpack"},
	KeyPolicy:           {KindString, "pinned or bleeding-edge"},
	KeyConcurrency:      {KindInt, "parallel downloads (1-256)"},
	KeyManifestURL:      {KindString, "url of the modpack manifest"},
	KeyCurseForgeAPIKey: {KindString, "CurseForge api key (prefer `tinkaros login`)"},
	KeyLogLevel:         {KindString, "debug, info, warn or error"},
	KeyLogFormat:        {KindString, "text or json"},
	KeyNonInteractive:   {KindBool, "never prompt and never show spinners"},
	KeyNotifyWebsocket:  {KindString, "websocket url that receives status and progress events"},
	KeyMetricsTextfile:  {KindString, "write prometheus metrics of every sync to this file"},
}

// Config is the typed configuration
type Config struct {
	Init             bool
	Launcher         launchers.Kind
	Path             string
	Policy           resolver.Policy
	Concurrency      int
	ManifestURL      string
	CurseForgeAPIKey string
	LogLevel         string
	LogFormat        string
	NonInteractive   bool
	NotifyWebsocket  string
	MetricsTextfile  string
}

// Dir returns the global tinkaros directory (<UserConfigDir>/tinkaros)
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tinkaros"), nil
}

// File returns the path of the config file
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SetDefaults registers the default values and the environment binding on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLauncher, string(launchers.Default))
	v.SetDefault(KeyPolicy, resolver.Pinned.String())
	v.SetDefault(KeyConcurrency, downloadmgr.DefaultConcurrency)
	v.SetDefault(KeyManifestURL, manifeststore.DefaultURL)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	// TINKAROS_LOG_LEVEL -> log.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads and validates the configuration from v.
// Out of range concurrency values fall back to the default
func Load(v *viper.Viper) (*Config, error) {
	kind, err := launchers.ParseKind(v.GetString(KeyLauncher))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyLauncher, err)
	}
	policy, err := resolver.ParsePolicy(v.GetString(KeyPolicy))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyPolicy, err)
	}

	switch format := v.GetString(KeyLogFormat); format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("%s: invalid format %q (valid: text, json)", KeyLogFormat, format)
	}

	return &Config{
		Init:             v.GetBool(KeyInit),
		Launcher:         kind,
		Path:             v.GetString(KeyPath),
		Policy:           policy,
		Concurrency:      downloadmgr.ClampConcurrency(v.GetInt(KeyConcurrency)),
		ManifestURL:      v.GetString(KeyManifestURL),
		CurseForgeAPIKey: v.GetString(KeyCurseForgeAPIKey),
		LogLevel:         v.GetString(KeyLogLevel),
		LogFormat:        v.GetString(KeyLogFormat),
		NonInteractive:   v.GetBool(KeyNonInteractive),
		NotifyWebsocket:  v.GetString(KeyNotifyWebsocket),
		MetricsTextfile:  v.GetString(KeyMetricsTextfile),
	}, nil
}
