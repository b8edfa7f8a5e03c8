// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-journal-vault/internal/adapter"
	"github.com/MKhiriev/go-journal-vault/internal/client"
	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/service"
	"github.com/MKhiriev/go-journal-vault/internal/session"
	"github.com/MKhiriev/go-journal-vault/internal/store"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := client.NewRootCommand(newApp, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	code := client.Execute(ctx, root, os.Stderr)

	stop()
	os.Exit(code)
}

func newApp(ctx context.Context, configPath string) (*client.App, error) {
	log := logger.NewClientLogger("journal-vault-client", "")

	cfg, err := config.GetClientConfig(configPath)
	if err != nil {
		return nil, err
	}

	var (
		storages *store.Storages
		opts     = []client.Option{client.WithClipboard(client.SystemClipboard())}
	)
	if cfg.Remote() {
		remote, err := adapter.NewHTTPStorage(cfg.Adapter, log)
		if err != nil {
			return nil, err
		}
		storages = &store.Storages{
			AccountStorage:      remote,
			RecordStorage:       remote,
			ReencryptionStorage: remote,
		}
		opts = append(opts, client.WithServer(remote))
	} else {
		storages, err = store.NewStorages(ctx, cfg.Storage, cfg.App.PasswordHashKey, log)
		if err != nil {
			return nil, err
		}
	}

	cache := session.NewKeyCache(session.NewMemoryTabStorage(), log)
	services := service.NewServices(
		storages,
		crypto.NewKeyChain(),
		cache,
		utils.NewUUIDGenerator(),
		cfg.Reencryption,
		log,
		service.WithProgress(client.ProgressPrinter(os.Stderr)),
	)

	return client.NewApp(
		services,
		cache,
		client.NewTerminalPrompter(os.Stdin, os.Stderr),
		os.Stdout,
		cfg.Session,
		log,
		opts...,
	), nil
}
