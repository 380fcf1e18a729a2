// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"wuwei/envserver/api"
	"wuwei/envserver/config"
	"wuwei/envserver/static"
)

// Server wraps the HTTP server and router.
type Server struct {
	cfg    *config.Config
	log    logrus.FieldLogger
	start  time.Time
	static *static.Handler
	router *chi.Mux

	requests atomic.Uint64
	limiter  *rate.Limiter

	accessMu  sync.Mutex
	accessLog io.WriteCloser
}

// New returns an initialized server. tree may be nil when the root is not
// being watched.
func New(cfg *config.Config, log logrus.FieldLogger, tree api.TreeStats) *Server {
	s := &Server{
		cfg:    cfg,
		log:    log,
		start:  time.Now(),
		static: static.New(cfg.Root, log),
	}
	if cfg.HTTP.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
	}
	if cfg.HTTP.LogFile != "" {
		f, err := os.OpenFile(cfg.HTTP.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.WithError(err).Warnf("Access log disabled, path=%q", cfg.HTTP.LogFile)
		} else {
			s.accessLog = f
		}
	}
	s.router = s.routes(tree)
	return s
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Requests returns the number of requests seen since start.
func (s *Server) Requests() uint64 {
	return s.requests.Load()
}

// Addr returns the configured listening address.
func (s *Server) Addr() string {
	return s.cfg.Addr()
}

// Listen binds the configured address.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.Addr())
}

// Serve handles connections on l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.HTTP.ReadTimeout,
		WriteTimeout:      s.cfg.HTTP.WriteTimeout,
		IdleTimeout:       s.cfg.HTTP.IdleTimeout,
	}
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		s.log.Info("Stopping HTTP...")
		ctxTo, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxTo); err != nil {
			s.log.WithError(err).Warn("HTTP shutdown incomplete")
		}
	}()
	defer s.Close()

	s.log.WithField("root", s.static.Root()).Infof("HTTP listening on %s", l.Addr())
	return srv.Serve(l)
}

// Start binds and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	l, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Close releases the access log. Serve calls it on return; callers that never
// serve must call it themselves. Requests handled afterwards are not logged
// to the file.
func (s *Server) Close() error {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	if s.accessLog == nil {
		return nil
	}
	err := s.accessLog.Close()
	s.accessLog = nil
	return err
}
