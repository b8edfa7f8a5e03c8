// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/handler"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/mock"
	"github.com/MKhiriev/go-journal-vault/internal/store"
)

type fixedVersion string

func (v fixedVersion) GetAppVersion(context.Context) string { return string(v) }

func newHandlers(t *testing.T, cfg config.Server) *handler.Handlers {
	t.Helper()
	ctrl := gomock.NewController(t)

	handlers, err := handler.NewHandlers(&store.Storages{
		AccountStorage:      mock.NewMockAccountStorage(ctrl),
		RecordStorage:       mock.NewMockRecordStorage(ctrl),
		ReencryptionStorage: mock.NewMockReencryptionStorage(ctrl),
	}, fixedVersion("3.1.0"), cfg, logger.Nop())
	require.NoError(t, err)
	return handlers
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(nil, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestHTTPServer_ServesRouter(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}
	s := newHTTPServer(newHandlers(t, cfg).HTTP.Init(), cfg, logger.Nop())

	rr := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "3.1.0", rr.Body.String())
}

func TestServe_StopsWhenContextIsDone(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: time.Second}
	srv, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	cancel()

	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServe_ReportsListenFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := config.Server{HTTPAddress: busy.Addr().String(), RequestTimeout: time.Second}
	srv, err := NewServer(newHandlers(t, cfg), cfg, logger.Nop())
	require.NoError(t, err)

	select {
	case err = <-serveAsync(srv):
		assert.ErrorIs(t, err, errServerStopped)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not report the busy port")
	}
}

func serveAsync(srv Server) <-chan error {
	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background()) }()
	return done
}
