package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/globals"
	"github.com/evergales/tinkaros/internals/utils"
)

func init() {
	runner := &changelogRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "changelog",
		Short: "Prints the changelog of the modpack",
		Args:  cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().BoolVar(&runner.open, "open", false, "open the changelog in a browser instead")

	rootCmd.AddCommand(cmd.Command)
}

type changelogRunner struct {
	open bool
}

func (c *changelogRunner) RunE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	man, err := newManifestStore(cfg).Get(ctx)
	if err != nil {
		return err
	}
	if man.ChangelogURL == "" {
		return &commands.CliError{Text: man.Name + " has no changelog"}
	}
	if c.open {
		return utils.OpenBrowser(man.ChangelogURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, man.ChangelogURL, nil)
	if err != nil {
		return err
	}
	res, err := globals.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching changelog failed with status %s", res.Status)
	}

	globals.Logger.Headline(fmt.Sprintf("%s %s", man.Name, man.Version))
	_, err = io.Copy(os.Stdout, res.Body)
	return err
}
