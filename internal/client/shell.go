// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-journal-vault/internal/session"
	"github.com/MKhiriev/go-journal-vault/internal/workers"
	"github.com/MKhiriev/go-journal-vault/models"
)

const shellPrompt = "journal> "

const shellHelp = `Commands:
  put <kind> <text...>   encrypt and save an entry (kind: entry, topic, metadata)
  get <id>               decrypt one entry
  list [kind]            decrypt every entry, optionally of one kind
  search <keyword>       find entries containing keyword
  topic <name...>        find a topic by its exact name
  status                 show whether the session is unlocked
  lock                   forget the key now
  unlock                 enter the password again
  exit                   leave the shell`

var errShellUsage = errors.New("wrong arguments, type help")

type lineResult struct {
	line string
	err  error
}

type shell struct {
	app    *App
	login  string
	asJSON bool
	guard  *session.IdleGuard
}

func (c *cli) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Unlock once and run commands until exit or idle timeout",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, app *App, _ []string) error {
			return app.shell(ctx, c.login, c.asJSON)
		}),
	}
}

// shell keeps the key cached between commands. The idle guard clears it
// after the configured inactivity; the next command then asks to unlock.
func (a *App) shell(ctx context.Context, login string, asJSON bool) error {
	if err := a.unlock(ctx, login); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	guard := session.NewIdleGuard(a.cache, a.idleTimeout, a.logger)
	background := workers.NewWorkers(guard)
	stopped := make(chan struct{})
	go func() {
		background.Run(ctx)
		close(stopped)
	}()
	defer func() {
		cancel()
		<-stopped
		a.keys.Lock()
	}()

	sh := &shell{app: a, login: login, asJSON: asJSON, guard: guard}
	fmt.Fprintln(a.out, "Unlocked. Type help for commands.")

	// At most one read is in flight. Line cannot be interrupted, so when ctx
	// ends first the reader stays blocked on input until the next line or
	// EOF, then drops its result into the buffered channel and exits; that
	// line is never executed.
	lines := make(chan lineResult, 1)
	read := func() {
		go func() {
			line, err := a.prompter.Line(shellPrompt)
			lines <- lineResult{line: line, err: err}
		}()
	}

	read()
	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-lines:
			if r.err != nil {
				if errors.Is(r.err, io.EOF) {
					return nil
				}
				return r.err
			}
			guard.Touch()
			if quit := sh.exec(ctx, r.line); quit {
				return nil
			}
			read()
		}
	}
}

func (s *shell) exec(ctx context.Context, line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := fields[0], fields[1:]
	out := s.app.out

	var err error
	switch name {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(out, shellHelp)
	case "lock":
		s.app.keys.Lock()
		fmt.Fprintln(out, "Locked.")
	case "unlock":
		if err = s.app.unlock(ctx, s.login); err == nil {
			fmt.Fprintln(out, "Unlocked.")
		}
	case "status":
		s.status(ctx)
	case "put", "get", "list", "search", "topic":
		if err = s.app.keys.Resume(ctx, s.login); err != nil {
			err = s.app.fail("resume", err)
			break
		}
		err = s.content(ctx, name, args)
	default:
		err = fmt.Errorf("unknown command %q, type help", name)
	}

	if err != nil {
		fmt.Fprintln(out, "Error:", Message(err))
	}
	return false
}

func (s *shell) status(ctx context.Context) {
	if err := s.app.keys.Resume(ctx, s.login); err != nil {
		fmt.Fprintln(s.app.out, "Locked.")
		return
	}
	fmt.Fprintf(s.app.out, "Unlocked, locks after %s without activity.\n", s.guard.Remaining().Round(time.Second))
}

func (s *shell) content(ctx context.Context, name string, args []string) error {
	entries := s.app.entries

	switch name {
	case "put":
		if len(args) < 2 {
			return errShellUsage
		}
		saved, err := entries.Put(ctx, models.Entry{Kind: args[0], Text: strings.Join(args[1:], " ")})
		if err != nil {
			return s.app.fail("put", err)
		}
		fmt.Fprintln(s.app.out, saved.RecordID)
		return nil

	case "get":
		if len(args) != 1 {
			return errShellUsage
		}
		entry, err := entries.Get(ctx, args[0])
		if err != nil {
			return s.app.fail("get", err)
		}
		return printEntry(s.app.out, entry, s.asJSON)

	case "list":
		if len(args) > 1 {
			return errShellUsage
		}
		kind := ""
		if len(args) == 1 {
			kind = args[0]
		}
		found, err := entries.List(ctx, kind)
		if err != nil {
			return s.app.fail("list", err)
		}
		return printEntries(s.app.out, found, s.asJSON)

	case "search":
		if len(args) != 1 {
			return errShellUsage
		}
		found, err := entries.Search(ctx, args[0])
		if err != nil {
			return s.app.fail("search", err)
		}
		return printEntries(s.app.out, found, s.asJSON)

	default: // topic
		if len(args) == 0 {
			return errShellUsage
		}
		found, err := entries.FindTopic(ctx, strings.Join(args, " "))
		if err != nil {
			return s.app.fail("topic", err)
		}
		return printEntries(s.app.out, found, s.asJSON)
	}
}
