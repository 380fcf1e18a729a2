// CLASSIFICATION: COMMUNITY
// Filename: middleware.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wuwei/envserver/api"
)

// RequestIDHeader carries the per-request identifier in both directions.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLen = 128

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the identifier assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID keeps a caller-supplied X-Request-Id or assigns a fresh UUID.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

// logRequests writes one logrus line per request and, when configured, one
// line to the access log file.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.log.WithFields(logrus.Fields{
			"request_id": RequestID(r.Context()),
			"remote":     r.RemoteAddr,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		}).Info("request")

		s.writeAccess(fmt.Sprintf("%s %s %s %d\n", r.RemoteAddr, r.Method, r.URL.Path, status))
	})
}

func (s *Server) writeAccess(line string) {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	if s.accessLog == nil {
		return
	}
	if _, err := s.accessLog.Write([]byte(line)); err != nil {
		s.log.WithError(err).Warn("access log write failed")
	}
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.log.WithFields(logrus.Fields{
				"request_id": RequestID(r.Context()),
				"path":       r.URL.Path,
				"panic":      rec,
			}).Errorf("handler panic\n%s", debug.Stack())
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			api.WriteError(s.log, w, api.NewError(api.ErrorCodeTooManyRequests, "Too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
