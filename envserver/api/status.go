// CLASSIFICATION: COMMUNITY
// Filename: status.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// StatusResponse describes the environment server.
type StatusResponse struct {
	Status        string `json:"status"`
	Root          string `json:"root"`
	RootExists    bool   `json:"root_exists"`
	IndexPresent  bool   `json:"index_present"`
	Files         int64  `json:"files"`
	Changes       int64  `json:"changes"`
	Uptime        string `json:"uptime"`
	RequestsTotal uint64 `json:"requests_total"`
}

// TreeStats reports on the served tree.
type TreeStats interface {
	Files() int64
	Changes() int64
}

// StatusSource gathers what Status reports. Tree, Requests and Log may be
// nil. Index is the file name served for "/".
type StatusSource struct {
	Start    time.Time
	Root     string
	Index    string
	Tree     TreeStats
	Requests func() uint64
	Log      logrus.FieldLogger
}

// Status writes a JSON snapshot. Status is "ok" when the root directory is
// present and "degraded" otherwise.
func Status(src StatusSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{
			Status: "degraded",
			Root:   src.Root,
			Files:  -1,
			Uptime: time.Since(src.Start).Round(time.Second).String(),
		}
		if info, err := os.Stat(src.Root); err == nil && info.IsDir() {
			resp.Status = "ok"
			resp.RootExists = true
		}
		if src.Index != "" {
			if info, err := os.Stat(filepath.Join(src.Root, src.Index)); err == nil && !info.IsDir() {
				resp.IndexPresent = true
			}
		}
		if src.Tree != nil {
			resp.Files = src.Tree.Files()
			resp.Changes = src.Tree.Changes()
		}
		if src.Requests != nil {
			resp.RequestsTotal = src.Requests()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil && src.Log != nil {
			src.Log.WithError(err).Warn("Failed to write status")
		}
	}
}
