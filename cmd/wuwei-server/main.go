// CLASSIFICATION: COMMUNITY
// Filename: main.go v0.6
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"os"

	"github.com/spf13/cobra"

	"wuwei/internal/tooling"
)

func main() {
	tooling.Execute(newRootCmd(os.Getenv))
}

// newRootCmd builds the CLI. Running it without a sub-command serves.
func newRootCmd(getenv func(string) string) *cobra.Command {
	root := tooling.NewRoot("wuwei-server", "Serve a wuwei environment directory over HTTP")

	rootOpts := &serveOptions{}
	addServeFlags(root.Flags(), rootOpts)
	root.Args = cobra.NoArgs
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, rootOpts, getenv)
	}

	root.AddCommand(newServeCmd(getenv), newCheckCmd(getenv))
	return root
}
