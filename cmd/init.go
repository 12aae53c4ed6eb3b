package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configCmd "github.com/evergales/tinkaros/cmd/config"
	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/config"
	"github.com/evergales/tinkaros/internals/globals"
	"github.com/evergales/tinkaros/internals/launchers"
	"github.com/evergales/tinkaros/internals/utils"
)

func init() {
	runner := &initRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "init",
		Short: "Chooses the launcher and the install path",
		Long: `Chooses the launcher and the install path of the modpack and saves them to the config.
Detected launchers are offered as a choice, use the flags to skip the prompts.`,
		Args: cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().StringVarP(&runner.launcher, "launcher", "l", "", "launcher to install into (default, curseforge or prism)")
	cmd.Flags().StringVarP(&runner.path, "path", "p", "", "install path of the modpack")

	rootCmd.AddCommand(cmd.Command)
}

type initRunner struct {
	launcher string
	path     string
}

func (i *initRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	logger := globals.Logger

	man, err := newManifestStore(cfg).Get(cmd.Context())
	if err != nil {
		return err
	}
	env := launchers.System()

	chosen := launchers.Launcher{Kind: cfg.Launcher}
	switch {
	case i.launcher != "":
		kind, err := launchers.ParseKind(i.launcher)
		if err != nil {
			return err
		}
		chosen = launchers.Launcher{Kind: kind, Root: env.Root(kind, man.Name)}
	case interactive(cfg):
		chosen, err = selectLauncher(env.Detect(man.Name))
		if err != nil {
			return err
		}
	default:
		chosen.Root = env.Root(chosen.Kind, man.Name)
	}

	root := i.path
	if root == "" {
		root = chosen.Root
		if interactive(cfg) {
			prompt := &promptui.Prompt{
				Label:   "Install path",
				Default: root,
				Validate: func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("path can not be empty")
					}
					return nil
				},
				AllowEdit: true,
			}
			if root, err = utils.StringPrompt(prompt); err != nil {
				return err
			}
		}
	}
	if root == "" {
		return &commands.CliError{
			Text:        "could not determine an install path for " + string(chosen.Kind),
			Suggestions: []string{"Pass the path with `tinkaros init --path <dir>`"},
		}
	}

	root, err = filepath.Abs(root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return fmt.Errorf("could not create install path: %w", err)
	}
	if launchers.IsInstalled(root) {
		logger.Warn("The install path is not empty. Unknown .jar files in mods/ will be removed on sync")
		if interactive(cfg) {
			ok, err := utils.BoolPrompt(&promptui.Prompt{Label: "Use " + root + " anyway", IsConfirm: true})
			if err != nil {
				return err
			}
			if !ok {
				return utils.ErrAborted
			}
		}
	}

	viper.Set(config.KeyLauncher, string(chosen.Kind))
	viper.Set(config.KeyPath, root)
	viper.Set(config.KeyInit, true)
	if err := configCmd.Write(viper.GetViper()); err != nil {
		return err
	}

	logger.Success(fmt.Sprintf("%s will be installed into %s", man.Name, root))
	logger.Info("Run `tinkaros sync` to install it now.")
	return nil
}

// selectLauncher lets the user pick one of the detected launchers. The
// official launcher is always offered
func selectLauncher(found []launchers.Launcher) (launchers.Launcher, error) {
	options := found
	hasDefault := false
	for _, l := range found {
		hasDefault = hasDefault || l.Kind == launchers.Default
	}
	if !hasDefault {
		env := launchers.System()
		options = append(options, launchers.Launcher{Kind: launchers.Default, Root: env.Root(launchers.Default, "tinkaros")})
	}

	prompt := &promptui.Select{
		Label: "Which launcher do you use?",
		Items: options,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ .Kind | cyan }} {{ .Root | faint }}",
			Inactive: "  {{ .Kind }} {{ .Root | faint }}",
			Selected: "Launcher: {{ .Kind | cyan }}",
		},
	}
	i, err := utils.SelectPrompt(prompt)
	if err != nil {
		return launchers.Launcher{}, err
	}
	return options[i], nil
}
