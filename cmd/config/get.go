package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evergales/tinkaros/internals/commands"
	appconfig "github.com/evergales/tinkaros/internals/config"
	"github.com/evergales/tinkaros/internals/globals"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get <key>",
		Short: "Gets a global config value",
		Args:  cobra.ExactArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (g *getRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])

	entry, ok := appconfig.Entries[key]
	if !ok {
		return fmt.Errorf("config key \"%s\" does not exist", key)
	}

	value := viper.Get(key)
	if value == nil {
		value = "(unset)"
	}

	logger := globals.Logger
	logger.Info(fmt.Sprintf("%s: %v", logger.Key(key), value))
	logger.Log("  " + entry.Help)
	logger.Log("  env: " + EnvName(key))
	return nil
}

// EnvName returns the environment variable that overwrites key
func EnvName(key string) string {
	return appconfig.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
