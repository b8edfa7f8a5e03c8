// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/models"
)

const (
	defaultRequestTimeout = 15 * time.Second
	traceIDHeader         = "X-Trace-ID"

	// Bodies above this size are sent gzip-compressed.
	gzipThreshold = 4 << 10
)

type httpStorage struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPStorage returns a [RemoteStorage] talking to the server at
// cfg.HTTPAddress.
func NewHTTPStorage(cfg config.Adapter, log *logger.Logger) (RemoteStorage, error) {
	if strings.TrimSpace(cfg.HTTPAddress) == "" {
		return nil, ErrNoServerAddress
	}
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, err
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := utils.NewHTTPClient(baseURL, timeout)
	client.SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader(traceIDHeader, uuid.NewString())
			return nil
		}).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			log.Debug().
				Str("method", resp.Request.Method).
				Str("url", resp.Request.URL).
				Str("trace_id", resp.Header().Get(traceIDHeader)).
				Int("status", resp.StatusCode()).
				Dur("duration", resp.Time()).
				Msg("storage request")
			return nil
		})

	return &httpStorage{client: client, logger: log}, nil
}

func normalizeBaseURL(address string) (string, error) {
	address = strings.TrimSpace(address)
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	parsed, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("parse server address: %w", err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("parse server address %q: no host", address)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func accountPath(accountID int64, suffix string) string {
	return "/api/accounts/" + strconv.FormatInt(accountID, 10) + suffix
}

// do sends req and turns any failure into a storage-level error.
func (h *httpStorage) do(op string, req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%s request: %w", op, err)
		}
		return nil, transportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

// jsonBody sets v as the request body, compressing it when it is large.
func jsonBody(req *resty.Request, v any) (*resty.Request, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	req.SetHeader("Content-Type", "application/json")
	if len(raw) < gzipThreshold {
		return req.SetBody(raw), nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err = zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress request body: %w", err)
	}
	if err = zw.Close(); err != nil {
		return nil, fmt.Errorf("compress request body: %w", err)
	}
	return req.SetHeader("Content-Encoding", "gzip").SetBody(buf.Bytes()), nil
}

func (h *httpStorage) CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error) {
	var created models.Account
	req, err := jsonBody(h.client.R().SetContext(ctx).SetResult(&created), account)
	if err != nil {
		return models.Account{}, err
	}
	if _, err = h.do("create account", req, resty.MethodPost, "/api/accounts"); err != nil {
		return models.Account{}, err
	}
	return created, nil
}

func (h *httpStorage) FindAccountByLogin(ctx context.Context, login string) (models.Account, error) {
	var account models.Account
	req := h.client.R().
		SetContext(ctx).
		SetQueryParam("login", login).
		SetResult(&account)
	if _, err := h.do("find account", req, resty.MethodGet, "/api/accounts"); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (h *httpStorage) VerifyCredential(ctx context.Context, accountID int64, authHash string) error {
	req, err := jsonBody(h.client.R().SetContext(ctx), models.CredentialCheck{AuthHash: authHash})
	if err != nil {
		return err
	}
	_, err = h.do("verify credential", req, resty.MethodPost, accountPath(accountID, "/credential/verify"))
	return err
}

func (h *httpStorage) UpdatePasswordWrap(ctx context.Context, update models.PasswordWrapUpdate) (int64, error) {
	var generation models.GenerationResponse
	req, err := jsonBody(h.client.R().SetContext(ctx).SetResult(&generation), update)
	if err != nil {
		return 0, err
	}
	if _, err = h.do("update password wrap", req, resty.MethodPut, accountPath(update.AccountID, "/wrap/password")); err != nil {
		return 0, err
	}
	return generation.SessionGeneration, nil
}

func (h *httpStorage) SetRecoveryWrap(ctx context.Context, update models.RecoveryWrapUpdate) error {
	req, err := jsonBody(h.client.R().SetContext(ctx), update)
	if err != nil {
		return err
	}
	_, err = h.do("set recovery wrap", req, resty.MethodPut, accountPath(update.AccountID, "/wrap/recovery"))
	return err
}

func (h *httpStorage) RevokeRecoveryWrap(ctx context.Context, accountID int64) error {
	_, err := h.do("revoke recovery wrap", h.client.R().SetContext(ctx), resty.MethodDelete, accountPath(accountID, "/wrap/recovery"))
	return err
}

func (h *httpStorage) SaveRecords(ctx context.Context, accountID, generation int64, records ...models.EncryptedRecord) error {
	if len(records) == 0 {
		return nil
	}
	req, err := jsonBody(h.client.R().SetContext(ctx), models.SaveRecordsRequest{
		ExpectedGeneration: generation,
		Records:            records,
	})
	if err != nil {
		return err
	}
	_, err = h.do("save records", req, resty.MethodPost, accountPath(accountID, "/records"))
	return err
}

func (h *httpStorage) GetRecord(ctx context.Context, accountID int64, recordID string) (models.EncryptedRecord, error) {
	var record models.EncryptedRecord
	req := h.client.R().SetContext(ctx).SetResult(&record)
	if _, err := h.do("get record", req, resty.MethodGet, accountPath(accountID, "/records/"+url.PathEscape(recordID))); err != nil {
		return models.EncryptedRecord{}, err
	}
	return record, nil
}

func (h *httpStorage) ListRecords(ctx context.Context, query models.RecordQuery) ([]models.EncryptedRecord, error) {
	var records []models.EncryptedRecord
	req := h.client.R().SetContext(ctx).SetResult(&records)
	if query.Kind != "" {
		req.SetQueryParam("kind", query.Kind)
	}
	if query.After != "" {
		req.SetQueryParam("after", query.After)
	}
	if query.Limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(query.Limit, 10))
	}
	if _, err := h.do("list records", req, resty.MethodGet, accountPath(query.AccountID, "/records")); err != nil {
		return nil, err
	}
	return records, nil
}

func (h *httpStorage) FindByToken(ctx context.Context, accountID int64, token string) ([]models.EncryptedRecord, error) {
	var records []models.EncryptedRecord
	req := h.client.R().
		SetContext(ctx).
		SetQueryParam("token", token).
		SetResult(&records)
	if _, err := h.do("find by token", req, resty.MethodGet, accountPath(accountID, "/records/search")); err != nil {
		return nil, err
	}
	return records, nil
}

func (h *httpStorage) CommitReencryption(ctx context.Context, commit models.ReencryptionCommit) error {
	req, err := jsonBody(h.client.R().SetContext(ctx), commit)
	if err != nil {
		return err
	}
	_, err = h.do("commit re-encryption", req, resty.MethodPost, accountPath(commit.AccountID, "/reencrypt"))
	return err
}

func (h *httpStorage) ServerVersion(ctx context.Context) (string, error) {
	req := h.client.R().SetContext(ctx).SetHeader("Accept", "text/plain")
	resp, err := h.do("server version", req, resty.MethodGet, "/api/version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}
