// CLASSIFICATION: COMMUNITY
// Filename: signal_plan9.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

//go:build plan9

package main

import "context"

// newSignalContext has no signal hook on plan9; notes from the host end the
// process directly.
func newSignalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}
