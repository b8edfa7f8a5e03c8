// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestAccountIDCtxKey(t *testing.T) {
	if AccountIDCtxKey.String() != "accountID" {
		t.Errorf("expected 'accountID', got '%s'", AccountIDCtxKey.String())
	}
}

func TestGetAccountIDFromContext_Success(t *testing.T) {
	ctx := WithAccountID(context.Background(), 42)

	accountID, ok := GetAccountIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if accountID != 42 {
		t.Errorf("expected accountID=42, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	accountID, ok := GetAccountIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false for missing value")
	}
	if accountID != 0 {
		t.Errorf("expected zero accountID, got %d", accountID)
	}
}

func TestGetAccountIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, "42")

	if _, ok := GetAccountIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for a string value")
	}
}

func TestGetAccountIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("other"), int64(42))

	if _, ok := GetAccountIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for a value under another key")
	}
}
