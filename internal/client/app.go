// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/service"
	"github.com/MKhiriev/go-journal-vault/internal/session"
)

// App holds everything the commands need.
type App struct {
	keys         service.KeyService
	reencryption service.ReencryptionService
	entries      service.EntryService
	cache        session.KeyCache

	prompter    Prompter
	clipboard   Clipboard
	server      VersionSource
	out         io.Writer
	idleTimeout time.Duration

	logger *logger.Logger
}

// Option configures an App.
type Option func(*App)

// WithServer enables the server line of the version command.
func WithServer(server VersionSource) Option {
	return func(a *App) {
		a.server = server
	}
}

// WithClipboard lets setup and recovery copy the recovery key.
func WithClipboard(clipboard Clipboard) Option {
	return func(a *App) {
		a.clipboard = clipboard
	}
}

func NewApp(
	services *service.Services,
	cache session.KeyCache,
	prompter Prompter,
	out io.Writer,
	cfg config.Session,
	logger *logger.Logger,
	opts ...Option,
) *App {
	a := &App{
		keys:         services.KeyService,
		reencryption: services.ReencryptionService,
		entries:      services.EntryService,
		cache:        cache,
		prompter:     prompter,
		out:          out,
		idleTimeout:  cfg.IdleTimeout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Factory builds the App once the command line is parsed.
type Factory func(ctx context.Context, configPath string) (*App, error)

// ProgressPrinter reports key change stages on w.
func ProgressPrinter(w io.Writer) service.ProgressFunc {
	return func(stage service.Stage) {
		fmt.Fprintf(w, "  %s\n", stage)
	}
}

// fail logs err and marks it for the user-facing message.
func (a *App) fail(op string, err error) error {
	a.logger.Err(err).Str("op", op).Msg("command failed")
	return &serviceError{err: err}
}

func (a *App) unlock(ctx context.Context, login string) error {
	password, err := a.prompter.Password("Password: ")
	if err != nil {
		return err
	}
	if err = a.keys.Unlock(ctx, login, password); err != nil {
		return a.fail("unlock", err)
	}
	return nil
}

// withSession unlocks login for the duration of fn.
func (a *App) withSession(ctx context.Context, login string, fn func() error) error {
	if err := a.unlock(ctx, login); err != nil {
		return err
	}
	defer a.keys.Lock()

	return fn()
}

// newPassword asks for a password twice.
func (a *App) newPassword(prompt string) (string, error) {
	first, err := a.prompter.Password(prompt)
	if err != nil {
		return "", err
	}
	second, err := a.prompter.Password("Repeat: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errPasswordsDiffer
	}
	return first, nil
}

func (a *App) showRecoverySecret(secret string, copyToClipboard bool) {
	fmt.Fprintln(a.out, "Recovery key (shown once, store it somewhere safe):")
	fmt.Fprintln(a.out, "  "+secret)

	if !copyToClipboard || a.clipboard == nil {
		return
	}
	if err := a.clipboard.WriteAll(secret); err != nil {
		a.logger.Warn().Err(err).Msg("clipboard unavailable")
		fmt.Fprintln(a.out, "Could not copy the recovery key to the clipboard.")
		return
	}
	fmt.Fprintln(a.out, "The recovery key was copied to the clipboard.")
}
