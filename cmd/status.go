package cmd

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/globals"
	"github.com/evergales/tinkaros/internals/launchers"
	"github.com/evergales/tinkaros/internals/ledger"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "status",
		Aliases: []string{"version-check", "outdated"},
		Short:   "Compares the installed with the latest modpack version",
		Args:    cobra.ExactArgs(0),
	}, &statusRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type statusRunner struct{}

func (s *statusRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}

	spinner := newMaybeSpinner(interactive(cfg))
	spinner.Start("fetching modpack manifest")
	man, err := newManifestStore(cfg).Get(cmd.Context())
	spinner.Stop()
	if err != nil {
		return err
	}

	installed := ledger.Read(cfg.Path)
	outcome, err := ledger.Compare(installed, man.Version)
	if err != nil && !errors.Is(err, ledger.ErrNotSemver) {
		return err
	}

	logger := globals.Logger
	logger.Headline(fmt.Sprintf("%s %s", man.Name, man.Version))
	logger.Info(fmt.Sprintf("%s %s (%s)", logger.Key("launcher:"), cfg.Launcher, cfg.Path))

	switch outcome {
	case ledger.NotInstalled:
		if launchers.IsInstalled(cfg.Path) {
			logger.Warn("The install path is not empty but was never synced by tinkaros")
		}
		logger.Info("Not installed yet. Run `tinkaros sync` to install it.")
	case ledger.UpToDate:
		logger.Success(fmt.Sprintf("Up to date (last updated %s)", humanize.Time(installed.Time())))
	case ledger.Outdated:
		logger.Warn(fmt.Sprintf("Installed version %s is outdated (last updated %s)", installed.Version, humanize.Time(installed.Time())))
		logger.Info("Run `tinkaros sync` to update.")
	case ledger.Ahead:
		logger.Warn(fmt.Sprintf("Installed version %s is newer than the published one", installed.Version))
	}
	return nil
}
