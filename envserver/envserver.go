// CLASSIFICATION: COMMUNITY
// Filename: envserver.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package envserver assembles the environment file server: the HTTP file
// routes, the optional tree watcher and the optional gRPC health service.
package envserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"wuwei/envserver/api"
	"wuwei/envserver/config"
	"wuwei/envserver/health"
	envhttp "wuwei/envserver/http"
	"wuwei/envserver/watch"
)

// Runner owns every component started for one configuration.
type Runner struct {
	cfg     *config.Config
	log     logrus.FieldLogger
	http    *envhttp.Server
	watcher *watch.Watcher
	health  *health.Server
}

// New validates cfg and builds the components it enables. A missing root
// directory is reported but does not prevent startup.
func New(cfg *config.Config, log logrus.FieldLogger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{cfg: cfg, log: log}

	rootOK := true
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		rootOK = false
		log.WithField("root", cfg.Root).Warn("Environment root is not a directory, every request will 404")
	}

	var tree api.TreeStats
	if cfg.Watch.Enabled && rootOK {
		w, err := watch.New(cfg.Root, log.WithField("component", "watch"))
		if err != nil {
			log.WithError(err).Warn("Tree watcher disabled")
		} else {
			r.watcher = w
			tree = w
		}
	}

	if cfg.HealthAddr() != "" {
		r.health = health.New(log.WithField("component", "health"))
	}
	r.http = envhttp.New(cfg, log.WithField("component", "http"), tree)
	return r, nil
}

// Router returns the HTTP handler, useful for tests.
func (r *Runner) Router() http.Handler {
	return r.http.Router()
}

// Run binds the configured address and serves until ctx is done. Failing to
// bind is the only fatal startup error.
func (r *Runner) Run(ctx context.Context) error {
	l, err := r.http.Listen()
	if err != nil {
		r.Close()
		return fmt.Errorf("bind %s: %w", r.cfg.Addr(), err)
	}
	return r.Serve(ctx, l)
}

// Serve runs every component with HTTP on l until ctx is done.
func (r *Runner) Serve(ctx context.Context, l net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if r.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.watcher.Run(ctx); err != nil {
				r.log.WithError(err).Warn("Tree watcher stopped")
			}
		}()
	}
	if r.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.health.Start(ctx, r.cfg.HealthAddr()); err != nil {
				r.log.WithError(err).Error("gRPC health stopped")
			}
		}()
		r.health.SetServing(true)
	}

	err := r.http.Serve(ctx, l)
	cancel()
	wg.Wait()
	r.Close()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close releases the watcher and the access log. Run and Serve call it on
// return; it is only needed when neither is called.
func (r *Runner) Close() error {
	var errs []error
	if r.watcher != nil {
		errs = append(errs, r.watcher.Close())
	}
	errs = append(errs, r.http.Close())
	return errors.Join(errs...)
}
