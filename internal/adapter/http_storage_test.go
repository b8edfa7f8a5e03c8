// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-journal-vault/internal/config"
	handler "github.com/MKhiriev/go-journal-vault/internal/handler/http"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/mock"
	"github.com/MKhiriev/go-journal-vault/internal/store"
	"github.com/MKhiriev/go-journal-vault/models"
)

const (
	testSalt    = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
	testNonce   = "AAAAAAAAAAAAAAAA"
	testWrapped = "d3JhcHBlZA==:" + testNonce
	// base64 of 32 bytes
	testAuthHash = "QUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUE="
)

type fixedVersion string

func (v fixedVersion) GetAppVersion(context.Context) string { return string(v) }

type roundTrip struct {
	accounts     *mock.MockAccountStorage
	records      *mock.MockRecordStorage
	reencryption *mock.MockReencryptionStorage
	remote       RemoteStorage
}

// newRoundTrip serves the real router over httptest with mocked storages
// behind it, so every call crosses the wire in both directions.
func newRoundTrip(t *testing.T) *roundTrip {
	t.Helper()
	ctrl := gomock.NewController(t)

	rt := &roundTrip{
		accounts:     mock.NewMockAccountStorage(ctrl),
		records:      mock.NewMockRecordStorage(ctrl),
		reencryption: mock.NewMockReencryptionStorage(ctrl),
	}
	h := handler.NewHandler(&store.Storages{
		AccountStorage:      rt.accounts,
		RecordStorage:       rt.records,
		ReencryptionStorage: rt.reencryption,
	}, fixedVersion("2.0.1"), logger.Nop())

	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	remote, err := NewHTTPStorage(config.Adapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	rt.remote = remote
	return rt
}

func TestNewHTTPStorage(t *testing.T) {
	_, err := NewHTTPStorage(config.Adapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNoServerAddress)

	remote, err := NewHTTPStorage(config.Adapter{HTTPAddress: "localhost:8080"}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, remote)

	_, err = NewHTTPStorage(config.Adapter{HTTPAddress: "http://"}, logger.Nop())
	assert.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://vault.example.com/ ", want: "https://vault.example.com"},
		{in: "http://127.0.0.1:9000/base/", want: "http://127.0.0.1:9000/base"},
		{in: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	rt := newRoundTrip(t)
	ctx := context.Background()

	newAccount := models.NewAccount{
		Login:            "alice",
		AuthHash:         testAuthHash,
		Salt:             testSalt,
		KDFVersion:       "current",
		KeyMode:          models.KeyModeMasterKeyWrapped,
		WrappedMasterKey: testWrapped,
	}
	stored := models.Account{
		AccountID:         7,
		Login:             "alice",
		Salt:              testSalt,
		KDFVersion:        "current",
		KeyMode:           models.KeyModeMasterKeyWrapped,
		WrappedMasterKey:  testWrapped,
		SessionGeneration: 1,
	}

	rt.accounts.EXPECT().CreateAccount(gomock.Any(), newAccount).Return(stored, nil)
	created, err := rt.remote.CreateAccount(ctx, newAccount)
	require.NoError(t, err)
	assert.Equal(t, stored, created)

	rt.accounts.EXPECT().FindAccountByLogin(gomock.Any(), "alice").Return(stored, nil)
	found, err := rt.remote.FindAccountByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, stored, found)

	rt.accounts.EXPECT().VerifyCredential(gomock.Any(), int64(7), testAuthHash).Return(nil)
	require.NoError(t, rt.remote.VerifyCredential(ctx, 7, testAuthHash))

	update := models.PasswordWrapUpdate{
		AccountID:          7,
		ExpectedGeneration: 1,
		KDFVersion:         "current",
		WrappedMasterKey:   "cmV3cmFwcGVk:" + testNonce,
		NewAuthHash:        "QkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkI=",
	}
	rt.accounts.EXPECT().UpdatePasswordWrap(gomock.Any(), update).Return(int64(2), nil)
	generation, err := rt.remote.UpdatePasswordWrap(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, int64(2), generation)

	recovery := models.RecoveryWrapUpdate{AccountID: 7, WrappedMasterKeyRecovery: testWrapped, RecoverySalt: testSalt}
	rt.accounts.EXPECT().SetRecoveryWrap(gomock.Any(), recovery).Return(nil)
	require.NoError(t, rt.remote.SetRecoveryWrap(ctx, recovery))

	rt.accounts.EXPECT().RevokeRecoveryWrap(gomock.Any(), int64(7)).Return(nil)
	require.NoError(t, rt.remote.RevokeRecoveryWrap(ctx, 7))
}

func TestRecordsRoundTrip(t *testing.T) {
	rt := newRoundTrip(t)
	ctx := context.Background()

	records := []models.EncryptedRecord{
		{RecordID: "r1", AccountID: 7, Kind: models.KindEntry, IndexMode: models.IndexKeywords, Ciphertext: "YzE=", Nonce: testNonce, Tokens: []string{"t1", "t2"}},
		{RecordID: "r2", AccountID: 7, Kind: models.KindTopic, IndexMode: models.IndexExact, Ciphertext: "YzI=", Nonce: testNonce, Tokens: []string{"t3"}},
	}

	rt.records.EXPECT().SaveRecords(gomock.Any(), int64(7), int64(3), records[0], records[1]).Return(nil)
	require.NoError(t, rt.remote.SaveRecords(ctx, 7, 3, records...))

	// nothing to send
	require.NoError(t, rt.remote.SaveRecords(ctx, 7, 3))

	rt.records.EXPECT().SaveRecords(gomock.Any(), int64(7), int64(2), records[0]).Return(store.ErrGenerationConflict)
	assert.ErrorIs(t, rt.remote.SaveRecords(ctx, 7, 2, records[0]), store.ErrGenerationConflict)

	rt.records.EXPECT().GetRecord(gomock.Any(), int64(7), "r1").Return(records[0], nil)
	got, err := rt.remote.GetRecord(ctx, 7, "r1")
	require.NoError(t, err)
	assert.Equal(t, records[0], got)

	query := models.RecordQuery{AccountID: 7, Kind: models.KindEntry, After: "r0", Limit: 50}
	rt.records.EXPECT().ListRecords(gomock.Any(), query).Return(records[:1], nil)
	page, err := rt.remote.ListRecords(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, records[:1], page)

	rt.records.EXPECT().FindByToken(gomock.Any(), int64(7), "t3").Return(nil, nil)
	matches, err := rt.remote.FindByToken(ctx, 7, "t3")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCommitReencryption_LargeBodyIsCompressed(t *testing.T) {
	rt := newRoundTrip(t)

	commit := models.ReencryptionCommit{
		AccountID:          7,
		ExpectedGeneration: 3,
		KDFVersion:         "current",
		KeyMode:            models.KeyModeMasterKeyWrapped,
		WrappedMasterKey:   testWrapped,
		NewAuthHash:        testAuthHash,
	}
	for i := 0; i < 64; i++ {
		commit.Records = append(commit.Records, models.EncryptedRecord{
			RecordID:   fmt.Sprintf("r%03d", i),
			AccountID:  7,
			Kind:       models.KindEntry,
			IndexMode:  models.IndexNone,
			Ciphertext: strings.Repeat("A", 256),
			Nonce:      testNonce,
		})
	}

	rt.reencryption.EXPECT().CommitReencryption(gomock.Any(), commit).Return(nil)
	require.NoError(t, rt.remote.CommitReencryption(context.Background(), commit))
}

func TestServerVersion(t *testing.T) {
	rt := newRoundTrip(t)

	version, err := rt.remote.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.0.1", version)
}

func TestStorageErrorsSurviveTheWire(t *testing.T) {
	tests := []struct {
		name    string
		stored  error
		wantErr error
	}{
		{name: "login taken", stored: store.ErrLoginAlreadyExists, wantErr: store.ErrLoginAlreadyExists},
		{name: "unknown account", stored: store.ErrAccountNotFound, wantErr: store.ErrAccountNotFound},
		{name: "wrong credential", stored: store.ErrCredentialMismatch, wantErr: store.ErrCredentialMismatch},
		{name: "generation conflict", stored: store.ErrGenerationConflict, wantErr: store.ErrGenerationConflict},
		{name: "incomplete", stored: store.ErrIncompleteReencryption, wantErr: store.ErrIncompleteReencryption},
		{name: "retryable", stored: fmt.Errorf("%w: deadlock", store.ErrRetryable), wantErr: store.ErrRetryable},
		{name: "internal", stored: errors.New("disk on fire"), wantErr: ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newRoundTrip(t)
			commit := models.ReencryptionCommit{
				AccountID:        7,
				KDFVersion:       "current",
				KeyMode:          models.KeyModeMasterKeyWrapped,
				WrappedMasterKey: testWrapped,
			}
			rt.reencryption.EXPECT().CommitReencryption(gomock.Any(), gomock.Any()).Return(tt.stored)

			err := rt.remote.CommitReencryption(context.Background(), commit)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordNotFoundOverTheWire(t *testing.T) {
	rt := newRoundTrip(t)
	rt.records.EXPECT().GetRecord(gomock.Any(), int64(7), "missing").Return(models.EncryptedRecord{}, store.ErrRecordNotFound)

	_, err := rt.remote.GetRecord(context.Background(), 7, "missing")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
	assert.NotErrorIs(t, err, store.ErrAccountNotFound)
}

func TestUnreachableServerIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	address := srv.URL
	srv.Close()

	remote, err := NewHTTPStorage(config.Adapter{HTTPAddress: address, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	_, err = remote.FindAccountByLogin(context.Background(), "alice")
	assert.ErrorIs(t, err, store.ErrRetryable)
}

func TestMapHTTPError_UnknownStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, body: "nope", wantErr: ErrBadRequest},
		{name: "plain not found", status: http.StatusNotFound, body: "404 page not found", wantErr: ErrNotFound},
		{name: "gateway", status: http.StatusBadGateway, wantErr: store.ErrRetryable},
		{name: "teapot", status: http.StatusTeapot, wantErr: ErrUnexpectedStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, tt.body, tt.status)
			}))
			defer srv.Close()

			remote, err := NewHTTPStorage(config.Adapter{HTTPAddress: srv.URL}, logger.Nop())
			require.NoError(t, err)

			_, err = remote.GetRecord(context.Background(), 1, "r1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMalformedPayloadIsRejectedBeforeStorage(t *testing.T) {
	rt := newRoundTrip(t)

	err := rt.remote.SetRecoveryWrap(context.Background(), models.RecoveryWrapUpdate{
		AccountID:                7,
		WrappedMasterKeyRecovery: "not-a-wrap",
		RecoverySalt:             testSalt,
	})
	assert.ErrorIs(t, err, ErrBadRequest)
}
