package cmd

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/globals"
	"github.com/evergales/tinkaros/internals/utils"
)

func init() {
	runner := &loginRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "login",
		Short: "Stores your own CurseForge api key",
		Long: `Stores a CurseForge api key in the system keyring.
tinkaros ships with a public key, you only need this if that key stopped working.`,
		Args: cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().StringVar(&runner.key, "key", "", "the api key (prompts if not set)")
	cmd.Flags().BoolVar(&runner.remove, "remove", false, "remove the stored key")

	rootCmd.AddCommand(cmd.Command)
}

type loginRunner struct {
	key    string
	remove bool
}

func (l *loginRunner) RunE(cmd *cobra.Command, args []string) error {
	store := globals.Credentials
	logger := globals.Logger

	if l.remove {
		if err := store.DeleteCurseForgeKey(); err != nil {
			return err
		}
		logger.Success("Removed the stored CurseForge api key")
		return nil
	}

	key := strings.TrimSpace(l.key)
	if key == "" {
		prompt := &promptui.Prompt{
			Label: "CurseForge api key",
			Mask:  '■',
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("key can not be empty")
				}
				return nil
			},
		}
		var err error
		if key, err = utils.StringPrompt(prompt); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
	}

	if err := store.SetCurseForgeKey(key); err != nil {
		return err
	}
	if store.NoKeyRingMode {
		logger.Warn("No system keyring available, the key was saved to a file in " + globals.GlobalDir)
	}
	logger.Success("Saved the CurseForge api key")
	return nil
}
