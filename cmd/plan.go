package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evergales/tinkaros/internals/commands"
	"github.com/evergales/tinkaros/internals/reconcile"
	"github.com/evergales/tinkaros/internals/resolver"
	"github.com/evergales/tinkaros/pkg/modpack"
)

func init() {
	runner := &planRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "plan",
		Aliases: []string{"dry-run"},
		Short:   "Shows what sync would change without changing anything",
		Args:    cobra.ExactArgs(0),
	}, runner)

	cmd.Flags().StringVarP(&runner.output, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().StringVar(&runner.policy, "policy", "", "overwrite the configured policy (pinned or bleeding-edge)")

	rootCmd.AddCommand(cmd.Command)
}

type planRunner struct {
	output string
	policy string
}

type planOutput struct {
	Modpack string                 `json:"modpack" yaml:"modpack"`
	Version string                 `json:"version" yaml:"version"`
	Policy  string                 `json:"policy" yaml:"policy"`
	Root    string                 `json:"root" yaml:"root"`
	Plan    reconcile.Plan         `json:"plan" yaml:"plan"`
	Files   []modpack.ResolvedFile `json:"files" yaml:"files"`
}

func (p *planRunner) RunE(cmd *cobra.Command, args []string) error {
	switch p.output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json, yaml)", p.output)
	}

	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	if p.policy != "" {
		if cfg.Policy, err = resolver.ParsePolicy(p.policy); err != nil {
			return err
		}
	}
	u := newUpdater(cfg)

	spinner := newMaybeSpinner(p.output == "table" && interactive(cfg))
	spinner.Start("resolving mods")
	man, resolved, plan, err := u.Plan(cmd.Context())
	spinner.Stop()
	if err != nil {
		return err
	}

	out := planOutput{
		Modpack: man.Name,
		Version: man.Version,
		Policy:  u.Resolver.Policy.String(),
		Root:    cfg.Path,
		Plan:    plan,
		Files:   resolved.Sorted(),
	}
	return renderPlan(os.Stdout, p.output, out)
}

func renderPlan(w io.Writer, format string, out planOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%s %s (%s)\n\n", text.Bold.Sprint(out.Modpack), out.Version, out.Policy)
	if out.Plan.Empty() {
		fmt.Fprintln(w, "Everything is up to date.")
		return nil
	}

	width := len("ACTION:")
	for _, name := range out.Plan.ToInstall {
		width = max(width, len(name))
	}
	for _, path := range out.Plan.ToDelete {
		width = max(width, len(filepath.Base(path)))
	}

	fmt.Fprintln(w, text.AlignDefault.Apply("FILE:", width+2)+"ACTION:")
	for _, name := range out.Plan.ToInstall {
		fmt.Fprintln(w, text.AlignDefault.Apply(name, width+2)+text.FgGreen.Sprint("install"))
	}
	for _, path := range out.Plan.ToDelete {
		fmt.Fprintln(w, text.AlignDefault.Apply(filepath.Base(path), width+2)+text.FgRed.Sprint("remove"))
	}
	fmt.Fprintf(w, "\n%d to install, %d to remove, %d unchanged\n", len(out.Plan.ToInstall), len(out.Plan.ToDelete), len(out.Plan.ToKeep))
	return nil
}
