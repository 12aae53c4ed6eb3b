package config

import (
	"github.com/spf13/cobra"
)

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
	Long: `Manage global config options.
Every option can also be set with an environment variable (eg. TINKAROS_POLICY=bleeding-edge).`,
}
