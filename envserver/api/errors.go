// CLASSIFICATION: COMMUNITY
// Filename: errors.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package api

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorCode classifies request failures.
type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "not_found"
	ErrorCodeForbidden       ErrorCode = "forbidden"
	ErrorCodeInvalid         ErrorCode = "invalid"
	ErrorCodeNotImplemented  ErrorCode = "not_implemented"
	ErrorCodeTooManyRequests ErrorCode = "too_many_requests"
)

var errorStatus = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeInvalid:         http.StatusBadRequest,
	ErrorCodeNotImplemented:  http.StatusNotImplemented,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
}

var (
	ErrNotFound       = &Error{ErrorCodeNotFound, "Not found"}
	ErrForbidden      = &Error{ErrorCodeForbidden, "Forbidden"}
	ErrNotImplemented = &Error{ErrorCodeNotImplemented, "Not implemented"}
)

// Error is a request failure that maps onto an HTTP status.
type Error struct {
	Code ErrorCode
	Text string
}

func (e *Error) String() string {
	return fmt.Sprintf("%v: %v", e.Code, e.Text)
}

func (e *Error) Error() string {
	return e.Text
}

// Status returns the HTTP status for the error code, 500 for unknown codes.
func (e *Error) Status() int {
	status, ok := errorStatus[e.Code]
	if !ok {
		return http.StatusInternalServerError
	}
	return status
}

func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code: code,
		Text: fmt.Sprintf(format, args...),
	}
}

func NewNotFoundError(format string, args ...any) *Error {
	return NewError(ErrorCodeNotFound, format, args...)
}

func NewForbiddenError(format string, args ...any) *Error {
	return NewError(ErrorCodeForbidden, format, args...)
}

func NewNotImplementedError(format string, args ...any) *Error {
	return NewError(ErrorCodeNotImplemented, format, args...)
}

// FromErr converts err into an *Error when it is one, or when it wraps a
// filesystem condition with a known mapping.
func FromErr(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound, true
	case errors.Is(err, fs.ErrPermission):
		return ErrForbidden, true
	}
	return nil, false
}

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to an http.Handler. Known errors are written with their
// status; anything else is logged and answered with a bare 500.
func Handle(log logrus.FieldLogger, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		WriteError(log.WithField("path", r.URL.Path), w, err)
	})
}

// WriteError writes err to w using the mapping described on Handle.
func WriteError(log logrus.FieldLogger, w http.ResponseWriter, err error) {
	apiErr, ok := FromErr(err)
	if !ok {
		log.WithError(err).Error("Internal server error")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	log.Debugf("%v", apiErr)
	http.Error(w, apiErr.Text, apiErr.Status())
}
