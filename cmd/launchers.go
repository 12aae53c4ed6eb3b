package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/text"
	"github.com/spf13/cobra"

	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/launchers"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "launchers",
		Short: "Lists the launchers found on this system",
		Args:  cobra.ExactArgs(0),
	}, &launchersRunner{})

	rootCmd.AddCommand(cmd.Command)
}

type launchersRunner struct{}

func (l *launchersRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	man, err := newManifestStore(cfg).Get(cmd.Context())
	if err != nil {
		return err
	}

	found := launchers.System().Detect(man.Name)
	if len(found) == 0 {
		fmt.Println("No supported launcher found.")
		return nil
	}

	lkind := len("LAUNCHER:")
	for _, launcher := range found {
		lkind = max(lkind, len(launcher.Kind))
	}

	fmt.Fprintln(os.Stdout, text.AlignDefault.Apply("LAUNCHER:", lkind+2)+"INSTALL PATH:")
	for _, launcher := range found {
		fmt.Fprintln(os.Stdout, text.AlignDefault.Apply(text.Bold.Sprint(launcher.Kind), lkind+2)+launcher.Root)
	}
	return nil
}
