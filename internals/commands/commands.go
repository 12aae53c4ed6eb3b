package commands

import (
	"errors"
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/evergales/tinkaros/internals/merrors"
)

// Verbose prints the stack of failed commands
var Verbose bool

type Command struct {
	*cobra.Command
	runner Runner
}

type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err == nil {
			return
		}
		err = pkgerrors.WithStack(err)

		var asCliErr *CliError
		if errors.As(err, &asCliErr) {
			fmt.Println(asCliErr.RichError() + "\n")
		} else {
			fmt.Println(ErrorBox(err.Error(), helpFor(err)))
		}

		var st stackTracer
		if Verbose && errors.As(err, &st) {
			fmt.Fprintf(os.Stderr, "%+v\n", st.StackTrace())
		}
		os.Exit(1)
	}

	return build
}

// helpFor returns a hint for classified errors
func helpFor(err error) string {
	switch merrors.KindOf(err) {
	case merrors.ManifestInvalid:
		return "Check the manifest url with `tinkaros config get manifestURL`"
	case merrors.RegistryFetchFailed:
		return "Mod registries might be down, try again later. A invalid CurseForge key can be replaced with `tinkaros login`"
	case merrors.DownloadFailed:
		return "Run `tinkaros sync` again, already downloaded mods are kept"
	case merrors.FilesystemError:
		return "Make sure the install path is writable and no game is running"
	case merrors.NotificationDeliveryFailed:
		return "The modpack was installed, only status updates were lost"
	}
	return ""
}
