// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Prompter reads answers from the user.
type Prompter interface {
	// Password reads a secret without echoing it when input is a terminal.
	Password(prompt string) (string, error)
	// Line reads one line. It returns io.EOF once input is exhausted.
	Line(prompt string) (string, error)
	// Text reads everything up to the end of input.
	Text(prompt string) (string, error)
}

// Clipboard receives the recovery key when the user asks for a copy.
type Clipboard interface {
	WriteAll(text string) error
}

// VersionSource reports the storage server build version.
type VersionSource interface {
	ServerVersion(ctx context.Context) (string, error)
}
