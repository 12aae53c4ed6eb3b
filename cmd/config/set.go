package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/evergales/tinkaros/internals/commands"
	appconfig "github.com/evergales/tinkaros/internals/config"
	"github.com/evergales/tinkaros/internals/globals"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Sets a global config value",
		Args:  cobra.ExactArgs(2),
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	key := strings.ToLower(args[0])

	newValue, err := parseValue(key, args[1])
	if err != nil {
		return err
	}

	previousValue := viper.Get(key)
	previousStringValue := fmt.Sprintf("%v", previousValue)
	if previousValue == nil {
		previousStringValue = "(unset)"
	}
	viper.Set(key, newValue)

	// reject values the next run could not start with
	if _, err := appconfig.Load(viper.GetViper()); err != nil {
		return err
	}

	logger := globals.Logger
	logger.Info(fmt.Sprintf(
		"Changing config entry:\n  %s: %s → %v",
		key,
		logger.Strikethrough(previousStringValue),
		logger.Key(fmt.Sprintf("%v", newValue)),
	))

	return Write(viper.GetViper())
}

// Write persists v to the global config file
func Write(v *viper.Viper) error {
	dir, err := appconfig.Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	file, err := appconfig.File()
	if err != nil {
		return err
	}
	return v.WriteConfigAs(file)
}

// parseValue converts raw into the type of the config entry key
func parseValue(key string, raw string) (interface{}, error) {
	entry, ok := appconfig.Entries[key]
	if !ok {
		return nil, fmt.Errorf("config key \"%s\" does not exist", key)
	}

	switch entry.Kind {
	case appconfig.KindBool:
		b, err := parseBool(raw)
		if err != nil {
			return nil, err
		}
		return b, nil
	case appconfig.KindString:
		return raw, nil
	case appconfig.KindInt:
		num, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number", key)
		}
		return num, nil
	default:
		return nil, fmt.Errorf("what? uncovered config values type")
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}
