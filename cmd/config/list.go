package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/evergales/tinkaros/internals/commands"
	appconfig "github.com/evergales/tinkaros/internals/config"
	"github.com/evergales/tinkaros/internals/globals"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Lists all global config values",
		Args:    cobra.ExactArgs(0),
	}, &listRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type listRunner struct{}

func (l *listRunner) RunE(cmd *cobra.Command, args []string) error {
	keys := maps.Keys(appconfig.Entries)
	slices.Sort(keys)

	logger := globals.Logger
	for _, key := range keys {
		value := viper.Get(key)
		if value == nil {
			value = "(unset)"
		}
		logger.Info(fmt.Sprintf("%s: %v", logger.Key(key), value))
		logger.Log("  " + appconfig.Entries[key].Help)
	}
	return nil
}
