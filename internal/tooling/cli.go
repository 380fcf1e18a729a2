// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-18
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// Wuwei · Go CLI Scaffold
//
// Provides the Cobra root command shared by wuwei binaries. The
// binary adds its own sub-commands (`serve`, `check`, ...) and
// calls `tooling.Execute(root)` from `main()`.
//
// Example:
//
//   func main() {
//       root := tooling.NewRoot("wuwei-server", "Environment file server")
//       root.AddCommand(newServeCmd())
//       tooling.Execute(root)
//   }
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is overridden at link time with -ldflags "-X wuwei/internal/tooling.Version=...".
var Version = "0.1.0-dev"

// NewRoot returns a root command carrying the built-in `version` sub-command.
func NewRoot(use, short string) *cobra.Command {
	root := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			PrintVersion(cmd.OutOrStdout(), use)
		},
	})
	return root
}

// PrintVersion writes "<name> <version>" with the name highlighted.
func PrintVersion(w io.Writer, name string) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint(name), Version)
}

// Execute runs root and exits non-zero on error.
func Execute(root *cobra.Command) {
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}
