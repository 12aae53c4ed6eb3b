package cmd

import (
	"github.com/spf13/viper"

	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/config"
	"github.com/evergales/tinkaros/internals/curse"
	"github.com/evergales/tinkaros/internals/globals"
	"github.com/evergales/tinkaros/internals/launchers"
	"github.com/evergales/tinkaros/internals/manifeststore"
	"github.com/evergales/tinkaros/internals/modrinth"
	"github.com/evergales/tinkaros/internals/resolver"
	"github.com/evergales/tinkaros/internals/updater"
)

var errNotInitialized = &commands.CliError{
	Text: "tinkaros is not set up yet",
	Suggestions: []string{
		"Run `tinkaros init` to choose your launcher",
		"Or set the install path with `tinkaros config set path <dir>`",
	},
}

// loadConfig returns the typed config. Commands that write into the install
// root pass requireRoot
func loadConfig(requireRoot bool) (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, &commands.CliError{
			Text: "invalid configuration: " + err.Error(),
			Help: "Change it with `tinkaros config set <key> <value>`",
		}
	}
	if requireRoot && cfg.Path == "" {
		return nil, errNotInitialized
	}
	return cfg, nil
}

// newManifestStore returns the store of the configured manifest
func newManifestStore(cfg *config.Config) *manifeststore.Store {
	return manifeststore.New(globals.HTTPClient, cfg.ManifestURL)
}

// newResolver wires both registry clients
func newResolver(cfg *config.Config) *resolver.Resolver {
	apiKey := globals.Credentials.ResolveCurseForgeKey(cfg.CurseForgeAPIKey)
	return resolver.New(
		modrinth.New(globals.RegistryClient),
		curse.New(globals.RegistryClient, apiKey),
		cfg.Policy,
	)
}

// newUpdater returns an updater for the configured install root
func newUpdater(cfg *config.Config) *updater.Updater {
	return &updater.Updater{
		Manifests:    newManifestStore(cfg),
		Resolver:     newResolver(cfg),
		Root:         cfg.Path,
		Launcher:     cfg.Launcher,
		DotMinecraft: launchers.System().DotMinecraft(),
		Concurrency:  cfg.Concurrency,
		Client:       globals.HTTPClient,
	}
}
