// CLASSIFICATION: COMMUNITY
// Filename: serve.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wuwei/envserver"
	"wuwei/envserver/config"
	"wuwei/internal/logging"
)

type serveOptions struct {
	configPath string
	root       string
	bind       string
	port       int
	logLevel   string
	logFormat  string
	healthPort int
	statusPath string
	accessLog  string
	rateLimit  float64
	rateBurst  int
	noWatch    bool
}

func addServeFlags(fs *pflag.FlagSet, o *serveOptions) {
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.root, "root", config.DefaultRoot, "environment directory to serve (env "+config.EnvRoot+")")
	fs.StringVar(&o.bind, "bind", config.DefaultBind, "bind address")
	fs.IntVar(&o.port, "port", config.DefaultPort, "listen port (env "+config.EnvPort+")")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level (env "+config.EnvLogLevel+")")
	fs.StringVar(&o.logFormat, "log-format", "text", "log format: text or json (env "+config.EnvLogFormat+")")
	fs.IntVar(&o.healthPort, "health-port", 0, "gRPC health port, 0 disables (env "+config.EnvHealthPort+")")
	fs.StringVar(&o.statusPath, "status-path", "", "mount the JSON status handler at this path")
	fs.StringVar(&o.accessLog, "access-log", "", "append one line per request to this file")
	fs.Float64Var(&o.rateLimit, "rate-limit", 0, "requests per second across all clients, 0 disables")
	fs.IntVar(&o.rateBurst, "rate-burst", 1, "rate limiter burst size")
	fs.BoolVar(&o.noWatch, "no-watch", false, "do not watch the environment directory")
}

func newServeCmd(getenv func(string) string) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the environment directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, getenv)
		},
	}
	addServeFlags(cmd.Flags(), opts)
	return cmd
}

// buildConfig layers defaults, the config file, the environment and then
// flags the user set explicitly.
func buildConfig(fs *pflag.FlagSet, o *serveOptions, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, getenv)
	if err != nil {
		return nil, err
	}
	if fs.Changed("root") {
		cfg.Root = o.root
	}
	if fs.Changed("bind") {
		cfg.HTTP.Bind = o.bind
	}
	if fs.Changed("port") {
		cfg.HTTP.Port = o.port
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if fs.Changed("health-port") {
		cfg.Health.Port = o.healthPort
	}
	if fs.Changed("status-path") {
		cfg.HTTP.StatusPath = o.statusPath
	}
	if fs.Changed("access-log") {
		cfg.HTTP.LogFile = o.accessLog
	}
	if fs.Changed("rate-limit") {
		cfg.HTTP.RateLimit = o.rateLimit
	}
	if fs.Changed("rate-burst") {
		cfg.HTTP.RateBurst = o.rateBurst
	}
	if o.noWatch {
		cfg.Watch.Enabled = false
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, o *serveOptions, getenv func(string) string) error {
	cfg, err := buildConfig(cmd.Flags(), o, getenv)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	r, err := envserver.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := newSignalContext(context.Background())
	defer cancel()
	log.WithField("root", cfg.Root).Info("Starting wuwei environment server")
	return r.Run(ctx)
}
