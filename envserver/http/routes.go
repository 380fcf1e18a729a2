// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"github.com/go-chi/chi/v5"

	"wuwei/envserver/api"
	"wuwei/envserver/static"
)

func (s *Server) routes(tree api.TreeStats) *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.requestID, s.countRequests, s.logRequests, s.recoverPanics)
	if s.limiter != nil {
		r.Use(s.rateLimit)
	}

	if p := s.cfg.HTTP.StatusPath; p != "" {
		status := api.Status(api.StatusSource{
			Start:    s.start,
			Root:     s.static.Root(),
			Index:    static.IndexFile,
			Tree:     tree,
			Requests: s.Requests,
			Log:      s.log,
		})
		r.Get(p, status)
		r.Head(p, status)
	}
	s.static.Routes(r)
	return r
}
