// CLASSIFICATION: COMMUNITY
// Filename: serve.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package static serves the environment root directory over HTTP.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"wuwei/envserver/api"
)

// IndexFile is served for requests to "/".
const IndexFile = "index.html"

// Handler resolves request paths against a fixed root directory.
type Handler struct {
	root string
	log  logrus.FieldLogger
}

// New returns a Handler serving files below root.
func New(root string, log logrus.FieldLogger) *Handler {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Handler{root: root, log: log}
}

// FileHandler returns an http.Handler serving dir with the routes from Routes.
func FileHandler(dir string, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	New(dir, log).Routes(r)
	return r
}

// Root returns the absolute root directory.
func (h *Handler) Root() string {
	return h.root
}

// Routes mounts the read and write paths on r.
func (h *Handler) Routes(r chi.Router) {
	read := api.Handle(h.log, h.ServeFile)
	write := api.Handle(h.log, h.NotImplemented)
	for _, pattern := range []string{"/", "/*"} {
		r.Method(http.MethodGet, pattern, read)
		r.Method(http.MethodHead, pattern, read)
		r.Method(http.MethodPut, pattern, write)
		r.Method(http.MethodPost, pattern, write)
		r.Method(http.MethodPatch, pattern, write)
	}
}

// Resolve maps a URL path to a file below the root. Paths containing ".."
// segments, or resolving through a symlink to somewhere outside the root,
// are rejected as forbidden.
func (h *Handler) Resolve(urlPath string) (string, error) {
	if strings.IndexByte(urlPath, 0) >= 0 {
		return "", api.NewError(api.ErrorCodeInvalid, "invalid path")
	}
	for _, seg := range strings.FieldsFunc(urlPath, isSeparator) {
		if seg == ".." {
			return "", api.NewForbiddenError("path escapes root: %s", urlPath)
		}
	}

	rel := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if rel == "" {
		rel = IndexFile
	}

	root, err := filepath.EvalSymlinks(h.root)
	if err != nil {
		return "", api.NewNotFoundError("root unavailable: %s", urlPath)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return "", api.NewNotFoundError("root is not a directory: %s", urlPath)
	}
	target, err := filepath.EvalSymlinks(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		if isMissing(err) {
			return "", api.NewNotFoundError("not found: %s", urlPath)
		}
		return "", fmt.Errorf("resolve %s: %w", urlPath, err)
	}
	if !within(root, target) {
		return "", api.NewForbiddenError("path escapes root: %s", urlPath)
	}
	return target, nil
}

// ServeFile writes the file named by the request path. Directories are
// reported as not found.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) error {
	name, err := h.Resolve(r.URL.Path)
	if err != nil {
		return err
	}
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.URL.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", r.URL.Path, err)
	}
	if info.IsDir() {
		return api.NewNotFoundError("not found: %s", r.URL.Path)
	}

	// A zero modtime keeps ServeContent from emitting Last-Modified.
	http.ServeContent(w, r, info.Name(), time.Time{}, f)
	return nil
}

// NotImplemented answers write-style requests. It never touches the root.
func (h *Handler) NotImplemented(w http.ResponseWriter, r *http.Request) error {
	return api.NewNotImplementedError("%s is not implemented", r.Method)
}

// isMissing reports lookup failures that mean the name does not exist,
// including a path that continues below a regular file.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ENAMETOOLONG)
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
