package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/evergales/tinkaros/cmd/progressui"
	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/config"
	"github.com/evergales/tinkaros/internals/ctxlog"
	"github.com/evergales/tinkaros/internals/globals"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/metrics"
	"github.com/evergales/tinkaros/internals/notify"
	"github.com/evergales/tinkaros/internals/remote"
	"github.com/evergales/tinkaros/internals/resolver"
	"github.com/evergales/tinkaros/internals/updater"
)

func init() {
	runner := &syncRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "sync",
		Aliases: []string{"update", "install"},
		Short:   "Installs or updates the modpack",
		Long: `Fetches the modpack manifest, downloads missing mods, removes outdated ones
and installs the modpack into the configured launcher.`,
		Args: cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().StringVar(&runner.policy, "policy", "", "overwrite the configured policy (pinned or bleeding-edge)")
	cmd.Flags().StringVar(&runner.websocket, "notify", "", "send status and progress events to this websocket url")

	rootCmd.AddCommand(cmd.Command)
}

type syncRunner struct {
	policy    string
	websocket string
}

func (s *syncRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if s.policy != "" {
		if cfg.Policy, err = resolver.ParsePolicy(s.policy); err != nil {
			return err
		}
	}
	if s.websocket != "" {
		cfg.NotifyWebsocket = s.websocket
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	logger := ctxlog.FromContext(ctx)

	sinks := notify.Multi{notify.Log{Logger: logger}}

	if cfg.NotifyWebsocket != "" {
		conn, err := remote.Dial(ctx, cfg.NotifyWebsocket)
		if err != nil {
			// the sync still works without status updates
			globals.Logger.Warn("Could not connect to " + cfg.NotifyWebsocket + ": " + err.Error())
		} else {
			defer conn.Close()
			sinks = append(sinks, conn)
		}
	}

	var ui *progressui.UI
	if interactive(cfg) {
		ui = progressui.Start(cancel)
		sinks = append(sinks, ui)
	} else {
		sinks = append(sinks, newPlainNotifier(globals.Logger))
	}

	u := newUpdater(cfg)
	u.Notifier = sinks

	result, syncErr := u.Sync(ctx)
	if ui != nil {
		if err := ui.Stop(); err != nil {
			logger.Debug("progress ui failed", "err", err)
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile, metricsRun(result, syncErr)); err != nil {
			globals.Logger.Warn("Could not write metrics: " + err.Error())
		}
	}

	if syncErr != nil && !errors.Is(syncErr, merrors.NotificationDeliveryFailed) {
		return syncErr
	}

	printSummary(cfg, result)
	if syncErr != nil {
		globals.Logger.Warn(syncErr.Error())
	}
	return nil
}

func printSummary(cfg *config.Config, result *updater.Result) {
	logger := globals.Logger
	man := result.Manifest

	if result.PreviousVersion != "" && result.PreviousVersion != man.Version {
		logger.Success(fmt.Sprintf("Updated %s from %s to %s", man.Name, result.PreviousVersion, man.Version))
	} else {
		logger.Success(fmt.Sprintf("%s %s is installed", man.Name, man.Version))
	}

	plan := result.Plan
	logger.Info(fmt.Sprintf(
		"  %d mods installed (%s), %d removed, %d unchanged in %s",
		len(plan.ToInstall),
		humanize.Bytes(uint64(result.Written)),
		len(plan.ToDelete),
		len(plan.ToKeep),
		result.Duration().Round(time.Millisecond),
	))
	logger.Log("  " + cfg.Path)
}

// metricsRun converts the outcome of a sync. result is never nil
func metricsRun(result *updater.Result, err error) metrics.Run {
	run := metrics.Run{
		Success:   err == nil || errors.Is(err, merrors.NotificationDeliveryFailed),
		Installed: len(result.Plan.ToInstall),
		Deleted:   len(result.Plan.ToDelete),
		Kept:      len(result.Plan.ToKeep),
		Bytes:     result.Written,
		Duration:  result.Duration(),
		Finished:  result.Finished,
	}
	if result.Manifest != nil {
		run.Modpack = result.Manifest.Name
		run.Version = result.Manifest.Version
	}
	return run
}
