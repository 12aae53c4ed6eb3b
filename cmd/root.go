package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configCmd "github.com/evergales/tinkaros/cmd/config"
	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/config"
	"github.com/evergales/tinkaros/internals/credentials"
	"github.com/evergales/tinkaros/internals/ctxlog"
	"github.com/evergales/tinkaros/internals/globals"
)

// set by main
var (
	Version = "dev"
	Commit  = "none"
)

var (
	cfgFile       string
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinkaros",
	Short: "Keeps your modpack up to date",
	Long: `tinkaros installs a remote modpack into your launcher and keeps it in sync.

Run "tinkaros init" once, afterwards "tinkaros sync" does everything else.`,
	Example: `
  tinkaros init
  tinkaros sync
  tinkaros plan --output yaml`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/tinkaros/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&commands.Verbose, "verbose", "v", false, "print debug logs and error stacks")

	rootCmd.AddCommand(configCmd.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		globals.Logger.DisableColor()
		commands.EmojiEnabled = false
	}

	config.SetDefaults(viper.GetViper())
	viper.SetConfigType("toml")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		file, err := config.File()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.SetConfigFile(file)
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			globals.Logger.Warn("Could not read config file: " + err.Error())
		}
	}
}

// preRun sets up the structured logger and the credential store for every command
func preRun(cmd *cobra.Command, args []string) error {
	level := viper.GetString(config.KeyLogLevel)
	if commands.Verbose {
		level = "debug"
	}
	logger := ctxlog.New(level, viper.GetString(config.KeyLogFormat))
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	globals.GlobalDir = dir

	store, err := credentials.New(dir)
	if err != nil {
		logger.Warn("could not read stored credentials", "err", err)
		store = &credentials.Store{}
	}
	globals.Credentials = store
	return nil
}

// interactive is true if prompts, spinners and progress bars may be shown
func interactive(cfg *config.Config) bool {
	if cfg.NonInteractive || os.Getenv("CI") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
