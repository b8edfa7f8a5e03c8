// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-journal-vault/models"
)

type cli struct {
	factory Factory
	build   models.AppBuildInfo

	configPath string
	login      string
	asJSON     bool

	app *App
}

// NewRootCommand returns the command tree of the client. factory runs once,
// on the first command that needs the services.
func NewRootCommand(factory Factory, build models.AppBuildInfo) *cobra.Command {
	c := &cli{factory: factory, build: build}

	root := &cobra.Command{
		Use:           "journal-vault",
		Short:         "Zero-knowledge journal client",
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a JSON configuration file")
	root.PersistentFlags().StringVarP(&c.login, "login", "l", "", "account login")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print entries as JSON")

	root.AddCommand(
		c.setupCommand(),
		c.recoveryCommand(),
		c.recoverCommand(),
		c.changePasswordCommand(),
		c.migrateCommand(),
		c.putCommand(),
		c.getCommand(),
		c.listCommand(),
		c.searchCommand(),
		c.topicCommand(),
		c.shellCommand(),
		c.versionCommand(),
	)
	return root
}

// Execute runs root and prints a failure the way the user should see it.
// It returns the process exit code.
func Execute(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", Message(err))
		return 1
	}
	return 0
}

func (c *cli) load(ctx context.Context) (*App, error) {
	if c.app != nil {
		return c.app, nil
	}
	app, err := c.factory(ctx, c.configPath)
	if err != nil {
		return nil, fmt.Errorf("start client: %w", err)
	}
	c.app = app
	return app, nil
}

// run wraps a command body that needs a login and the App.
func (c *cli) run(body func(ctx context.Context, app *App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(c.login) == "" {
			return errNoLogin
		}
		app, err := c.load(cmd.Context())
		if err != nil {
			return err
		}
		return body(cmd.Context(), app, args)
	}
}

func (c *cli) setupCommand() *cobra.Command {
	var withRecovery, noClipboard bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create an account protected by a new password",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&withRecovery, "recovery", false, "also create a recovery key")
	cmd.Flags().BoolVar(&noClipboard, "no-clipboard", false, "do not copy the recovery key")

	cmd.RunE = c.run(func(ctx context.Context, app *App, _ []string) error {
		password, err := app.newPassword("New password: ")
		if err != nil {
			return err
		}

		result, err := app.keys.Setup(ctx, c.login, password, withRecovery)
		if err != nil {
			return app.fail("setup", err)
		}
		defer app.keys.Lock()

		fmt.Fprintf(app.out, "Account %q created.\n", c.login)
		if result.RecoverySecret != "" {
			app.showRecoverySecret(result.RecoverySecret, !noClipboard)
		}
		return nil
	})
	return cmd
}

func (c *cli) recoveryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Manage the recovery key",
	}

	var noClipboard bool
	enable := &cobra.Command{
		Use:   "enable",
		Short: "Create a recovery key for the account",
		Args:  cobra.NoArgs,
	}
	enable.Flags().BoolVar(&noClipboard, "no-clipboard", false, "do not copy the recovery key")
	enable.RunE = c.run(func(ctx context.Context, app *App, _ []string) error {
		return app.withSession(ctx, c.login, func() error {
			secret, err := app.keys.SetupRecovery(ctx, c.login)
			if err != nil {
				return app.fail("recovery enable", err)
			}
			app.showRecoverySecret(secret, !noClipboard)
			return nil
		})
	})

	revoke := &cobra.Command{
		Use:   "revoke",
		Short: "Remove the recovery key of the account",
		Args:  cobra.NoArgs,
	}
	revoke.RunE = c.run(func(ctx context.Context, app *App, _ []string) error {
		return app.withSession(ctx, c.login, func() error {
			if err := app.keys.RevokeRecovery(ctx, c.login); err != nil {
				return app.fail("recovery revoke", err)
			}
			fmt.Fprintln(app.out, "Recovery key revoked.")
			return nil
		})
	})

	cmd.AddCommand(enable, revoke)
	return cmd
}

func (c *cli) recoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Set a new password using the recovery key",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, app *App, _ []string) error {
		secret, err := app.prompter.Password("Recovery key: ")
		if err != nil {
			return err
		}
		password, err := app.newPassword("New password: ")
		if err != nil {
			return err
		}

		if err = app.keys.Recover(ctx, c.login, strings.TrimSpace(secret), password); err != nil {
			return app.fail("recover", err)
		}
		app.keys.Lock()

		fmt.Fprintln(app.out, "Password replaced. Your entries are unchanged.")
		return nil
	})
	return cmd
}

func (c *cli) changePasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Replace the account password",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, app *App, _ []string) error {
		current, err := app.prompter.Password("Current password: ")
		if err != nil {
			return err
		}
		next, err := app.newPassword("New password: ")
		if err != nil {
			return err
		}

		if err = app.reencryption.ChangePassword(ctx, c.login, current, next); err != nil {
			return app.fail("change password", err)
		}
		app.keys.Lock()

		fmt.Fprintln(app.out, "Password changed.")
		return nil
	})
	return cmd
}

func (c *cli) migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move a legacy account to a wrapped master key",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context, app *App, _ []string) error {
		password, err := app.prompter.Password("Password: ")
		if err != nil {
			return err
		}

		if err = app.reencryption.MigrateToMasterKey(ctx, c.login, password); err != nil {
			return app.fail("migrate", err)
		}
		app.keys.Lock()

		fmt.Fprintln(app.out, "Account migrated. Every entry was re-encrypted.")
		return nil
	})
	return cmd
}

func (c *cli) putCommand() *cobra.Command {
	var (
		kind     string
		index    string
		recordID string
	)

	cmd := &cobra.Command{
		Use:   "put [text...]",
		Short: "Encrypt and save an entry; text is read from input when omitted",
	}
	cmd.Flags().StringVar(&kind, "kind", models.KindEntry, "entry, topic or metadata")
	cmd.Flags().StringVar(&index, "index", "", "none, exact or keywords (default depends on kind)")
	cmd.Flags().StringVar(&recordID, "id", "", "replace the entry with this id")

	cmd.RunE = c.run(func(ctx context.Context, app *App, args []string) error {
		mode := models.IndexMode(index)
		if index != "" && !mode.Valid() {
			return errUnknownIndexMode
		}

		return app.withSession(ctx, c.login, func() error {
			text := strings.Join(args, " ")
			if text == "" {
				var err error
				if text, err = app.prompter.Text("Text (end with Ctrl-D):\n"); err != nil {
					return err
				}
			}
			if strings.TrimSpace(text) == "" {
				return errEmptyText
			}

			saved, err := app.entries.Put(ctx, models.Entry{
				RecordID:  recordID,
				Kind:      kind,
				IndexMode: mode,
				Text:      text,
			})
			if err != nil {
				return app.fail("put", err)
			}
			fmt.Fprintln(app.out, saved.RecordID)
			return nil
		})
	})
	return cmd
}

func (c *cli) getCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Decrypt one entry",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, app *App, args []string) error {
		return app.withSession(ctx, c.login, func() error {
			entry, err := app.entries.Get(ctx, args[0])
			if err != nil {
				return app.fail("get", err)
			}
			return printEntry(app.out, entry, c.asJSON)
		})
	})
	return cmd
}

func (c *cli) listCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Decrypt every entry of a kind",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&kind, "kind", "", "entry, topic or metadata (default all)")

	cmd.RunE = c.run(func(ctx context.Context, app *App, _ []string) error {
		return app.withSession(ctx, c.login, func() error {
			entries, err := app.entries.List(ctx, kind)
			if err != nil {
				return app.fail("list", err)
			}
			return printEntries(app.out, entries, c.asJSON)
		})
	})
	return cmd
}

func (c *cli) searchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find entries containing a keyword",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, app *App, args []string) error {
		return app.withSession(ctx, c.login, func() error {
			entries, err := app.entries.Search(ctx, args[0])
			if err != nil {
				return app.fail("search", err)
			}
			return printEntries(app.out, entries, c.asJSON)
		})
	})
	return cmd
}

func (c *cli) topicCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic <name>",
		Short: "Find a topic by its exact name",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = c.run(func(ctx context.Context, app *App, args []string) error {
		return app.withSession(ctx, c.login, func() error {
			entries, err := app.entries.FindTopic(ctx, strings.Join(args, " "))
			if err != nil {
				return app.fail("topic", err)
			}
			return printEntries(app.out, entries, c.asJSON)
		})
	})
	return cmd
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", c.build.Version)
			fmt.Fprintf(out, "Build date: %s\n", c.build.Date)
			fmt.Fprintf(out, "Build commit: %s\n", c.build.Commit)

			app, err := c.load(cmd.Context())
			if err != nil {
				return err
			}
			if app.server == nil {
				fmt.Fprintln(out, "Storage: local database")
				return nil
			}
			version, err := app.server.ServerVersion(cmd.Context())
			if err != nil {
				return app.fail("server version", err)
			}
			fmt.Fprintf(out, "Server version: %s\n", version)
			return nil
		},
	}
}
