// CLASSIFICATION: COMMUNITY
// Filename: check.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wuwei/envserver/config"
	"wuwei/envserver/static"
	"wuwei/envserver/watch"
)

var errRootMissing = errors.New("environment root is not a directory")

type checkReport struct {
	Root         string
	RootExists   bool
	IndexPresent bool
	Files        int64
}

func inspectRoot(root string) checkReport {
	rep := checkReport{Root: root}
	if info, err := os.Stat(root); err == nil && info.IsDir() {
		rep.RootExists = true
		rep.Files = watch.CountFiles(root)
	}
	if info, err := os.Stat(filepath.Join(root, static.IndexFile)); err == nil && !info.IsDir() {
		rep.IndexPresent = true
	}
	return rep
}

func (rep checkReport) write(w io.Writer) {
	ok := color.New(color.FgGreen).SprintFunc()
	warn := color.New(color.FgYellow).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	state := bad("missing")
	if rep.RootExists {
		state = ok("ok")
	}
	fmt.Fprintf(w, "root   %s  %s\n", rep.Root, state)

	state = warn("missing")
	if rep.IndexPresent {
		state = ok("present")
	}
	fmt.Fprintf(w, "index  %s  %s\n", static.IndexFile, state)
	fmt.Fprintf(w, "files  %d\n", rep.Files)
}

func newCheckCmd(getenv func(string) string) *cobra.Command {
	var configPath, root string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report on the environment directory without serving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, getenv)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("root") {
				cfg.Root = root
			}
			rep := inspectRoot(cfg.Root)
			rep.write(cmd.OutOrStdout())
			if !rep.RootExists {
				return fmt.Errorf("%w: %s", errRootMissing, cfg.Root)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&root, "root", config.DefaultRoot, "environment directory (env "+config.EnvRoot+")")
	return cmd
}
