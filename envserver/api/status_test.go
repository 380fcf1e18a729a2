// CLASSIFICATION: COMMUNITY
// Filename: status_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fixedTree struct{ files, changes int64 }

func (f fixedTree) Files() int64   { return f.files }
func (f fixedTree) Changes() int64 { return f.changes }

func getStatus(t *testing.T, src StatusSource) StatusResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	Status(src).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %s", ct)
	}
	var resp StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestStatusReportsTree(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	resp := getStatus(t, StatusSource{
		Start:    time.Now().Add(-time.Minute),
		Root:     root,
		Index:    "index.html",
		Tree:     fixedTree{files: 7, changes: 2},
		Requests: func() uint64 { return 42 },
	})
	if resp.Status != "ok" || !resp.RootExists || !resp.IndexPresent {
		t.Fatalf("unexpected status: %+v", resp)
	}
	if resp.Files != 7 || resp.Changes != 2 || resp.RequestsTotal != 42 {
		t.Fatalf("unexpected counters: %+v", resp)
	}
	if resp.Uptime != "1m0s" {
		t.Fatalf("unexpected uptime: %s", resp.Uptime)
	}
}

func TestStatusDegradedWithoutRoot(t *testing.T) {
	resp := getStatus(t, StatusSource{Start: time.Now(), Root: filepath.Join(t.TempDir(), "absent"), Index: "index.html"})
	if resp.Status != "degraded" || resp.RootExists || resp.IndexPresent {
		t.Fatalf("unexpected status: %+v", resp)
	}
	if resp.Files != -1 {
		t.Fatalf("expected unknown file count, got %d", resp.Files)
	}
}

func TestStatusUsesConfiguredIndex(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "start.html"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if resp := getStatus(t, StatusSource{Start: time.Now(), Root: root, Index: "start.html"}); !resp.IndexPresent {
		t.Fatalf("expected index present: %+v", resp)
	}
	if resp := getStatus(t, StatusSource{Start: time.Now(), Root: root, Index: "index.html"}); resp.IndexPresent {
		t.Fatalf("expected index missing: %+v", resp)
	}
}

type failingWriter struct{ header http.Header }

func (f *failingWriter) Header() http.Header       { return f.header }
func (f *failingWriter) WriteHeader(int)           {}
func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStatusLogsWriteFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	w := &failingWriter{header: http.Header{}}
	Status(StatusSource{Start: time.Now(), Root: t.TempDir(), Log: log}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/_status", nil))
	if len(hook.Entries) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatalf("expected one warning, got %v", hook.Entries)
	}
}
