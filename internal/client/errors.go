// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"

	"github.com/MKhiriev/go-journal-vault/internal/app"
)

var (
	errNoLogin          = errors.New("no login given, use --login")
	errPasswordsDiffer  = errors.New("passwords do not match")
	errEmptyText        = errors.New("nothing to save")
	errUnknownIndexMode = errors.New("unknown index mode, use none, exact or keywords")
)

// serviceError marks a failure reported by a service. It is shown to the
// user through [app.UserMessage]; the details only go to the log.
type serviceError struct {
	err error
}

func (e *serviceError) Error() string { return e.err.Error() }

func (e *serviceError) Unwrap() error { return e.err }

// Message returns the text shown for err.
func Message(err error) string {
	var se *serviceError
	if errors.As(err, &se) {
		return app.UserMessage(se.err)
	}
	return err.Error()
}
