// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/session"
	"github.com/MKhiriev/go-journal-vault/internal/store"
	"github.com/MKhiriev/go-journal-vault/models"
)

type keyService struct {
	accounts store.AccountStorage
	keys     crypto.KeyChain
	cache    session.KeyCache
	logger   *logger.Logger
}

func NewKeyService(accounts store.AccountStorage, keys crypto.KeyChain, cache session.KeyCache, logger *logger.Logger) KeyService {
	return &keyService{accounts: accounts, keys: keys, cache: cache, logger: logger}
}

func (s *keyService) Setup(ctx context.Context, login, password string, withRecovery bool) (models.SetupResult, error) {
	log := logger.FromContext(ctx).With().Str("func", "*keyService.Setup").Str("login", login).Logger()

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return models.SetupResult{}, ErrInvalidDataProvided
	}

	salt, err := s.keys.GenerateSalt()
	if err != nil {
		return models.SetupResult{}, fmt.Errorf("generate salt: %w", err)
	}

	masterKey, err := s.keys.GenerateMasterKey()
	if err != nil {
		return models.SetupResult{}, fmt.Errorf("generate master key: %w", err)
	}
	defer masterKey.Wipe()

	passwordKey, err := s.keys.Derive(password, salt, crypto.KDFCurrent)
	if err != nil {
		return models.SetupResult{}, err
	}
	defer passwordKey.Wipe()

	wrapped, err := s.keys.Wrap(masterKey, passwordKey)
	if err != nil {
		return models.SetupResult{}, fmt.Errorf("wrap master key: %w", err)
	}

	account, err := s.accounts.CreateAccount(ctx, models.NewAccount{
		Login:            login,
		AuthHash:         s.keys.AuthHash(passwordKey, salt),
		Salt:             salt,
		KDFVersion:       crypto.KDFCurrent.String(),
		KeyMode:          models.KeyModeMasterKeyWrapped,
		WrappedMasterKey: wrapped.String(),
	})
	if err != nil {
		log.Err(err).Msg("failed to create account")
		return models.SetupResult{}, mapStorageError(err)
	}

	result := models.SetupResult{AccountID: account.AccountID}
	if withRecovery {
		secret, err := s.installRecovery(ctx, account, masterKey)
		if err != nil {
			return models.SetupResult{}, err
		}
		result.RecoverySecret = secret
	}

	if err = s.cache.Store(session.SessionKeyHandle{
		AccountID:  account.AccountID,
		Login:      login,
		Key:        masterKey,
		Generation: account.SessionGeneration,
	}); err != nil {
		return models.SetupResult{}, err
	}

	log.Info().Int64("account_id", account.AccountID).Bool("recovery", withRecovery).Msg("account set up")
	return result, nil
}

func (s *keyService) Unlock(ctx context.Context, login, password string) error {
	log := logger.FromContext(ctx).With().Str("func", "*keyService.Unlock").Str("login", login).Logger()

	account, err := s.accounts.FindAccountByLogin(ctx, login)
	if err != nil {
		return mapStorageError(err)
	}

	key, _, err := s.contentKey(ctx, account, password)
	if err != nil {
		log.Warn().Err(err).Msg("unlock rejected")
		return err
	}
	defer key.Wipe()

	s.cache.Clear()
	if err = s.cache.Store(session.SessionKeyHandle{
		AccountID:  account.AccountID,
		Login:      account.Login,
		Key:        key,
		Generation: account.SessionGeneration,
	}); err != nil {
		return err
	}

	log.Info().Str("key_mode", string(account.KeyMode)).Msg("unlocked")
	return nil
}

func (s *keyService) Resume(ctx context.Context, login string) error {
	_, _, err := s.activeSession(ctx, login)
	return err
}

func (s *keyService) Lock() {
	s.cache.Clear()
}

func (s *keyService) SetupRecovery(ctx context.Context, login string) (string, error) {
	handle, account, err := s.activeSession(ctx, login)
	if err != nil {
		return "", err
	}

	if account.KeyMode != models.KeyModeMasterKeyWrapped {
		return "", ErrNotMasterKeyAccount
	}
	if account.HasRecovery() {
		return "", store.ErrRecoveryAlreadyConfigured
	}

	return s.installRecovery(ctx, account, handle.Key)
}

func (s *keyService) RevokeRecovery(ctx context.Context, login string) error {
	_, account, err := s.activeSession(ctx, login)
	if err != nil {
		return err
	}

	if err = s.accounts.RevokeRecoveryWrap(ctx, account.AccountID); err != nil {
		return mapStorageError(err)
	}

	logger.FromContext(ctx).Info().Int64("account_id", account.AccountID).Msg("recovery revoked")
	return nil
}

func (s *keyService) Recover(ctx context.Context, login, secret, newPassword string) error {
	log := logger.FromContext(ctx).With().Str("func", "*keyService.Recover").Str("login", login).Logger()

	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	recoverySecret, err := crypto.ParseRecoverySecret(secret)
	if err != nil {
		return ErrInvalidCredentials
	}

	account, err := s.accounts.FindAccountByLogin(ctx, login)
	if err != nil {
		return mapStorageError(err)
	}
	if !account.HasRecovery() {
		return ErrRecoveryNotConfigured
	}

	recoveryWrap, err := crypto.ParseWrappedKey(account.WrappedMasterKeyRecovery)
	if err != nil {
		return fmt.Errorf("parse recovery wrap: %w", err)
	}

	masterKey, err := s.keys.UnwrapWithRecovery(recoveryWrap, recoverySecret, account.RecoverySalt)
	if err != nil {
		log.Warn().Msg("recovery secret rejected")
		return mapCryptoError(err)
	}
	defer masterKey.Wipe()

	passwordKey, err := s.keys.Derive(newPassword, account.Salt, crypto.KDFCurrent)
	if err != nil {
		return err
	}
	defer passwordKey.Wipe()

	wrapped, err := s.keys.Wrap(masterKey, passwordKey)
	if err != nil {
		return fmt.Errorf("wrap master key: %w", err)
	}

	generation, err := s.accounts.UpdatePasswordWrap(ctx, models.PasswordWrapUpdate{
		AccountID:          account.AccountID,
		ExpectedGeneration: account.SessionGeneration,
		KDFVersion:         crypto.KDFCurrent.String(),
		WrappedMasterKey:   wrapped.String(),
		NewAuthHash:        s.keys.AuthHash(passwordKey, account.Salt),
	})
	if err != nil {
		log.Err(err).Msg("failed to persist recovered wrap")
		return mapStorageError(err)
	}

	s.cache.Clear()
	if err = s.cache.Store(session.SessionKeyHandle{
		AccountID:  account.AccountID,
		Login:      account.Login,
		Key:        masterKey,
		Generation: generation,
	}); err != nil {
		return err
	}

	log.Info().Int64("generation", generation).Msg("account recovered")
	return nil
}

// contentKey verifies password and returns the key that decrypts the
// account's content along with the account's current auth hash.
func (s *keyService) contentKey(ctx context.Context, account models.Account, password string) (crypto.Key, string, error) {
	return unlockContentKey(ctx, s.accounts, s.keys, account, password)
}

// activeSession restores the cached handle and checks it against the
// current account state.
func (s *keyService) activeSession(ctx context.Context, login string) (session.SessionKeyHandle, models.Account, error) {
	handle, err := s.cache.Restore()
	if err != nil {
		return session.SessionKeyHandle{}, models.Account{}, err
	}

	if handle.Login != login {
		s.cache.Clear()
		return session.SessionKeyHandle{}, models.Account{}, ErrSessionExpired
	}

	account, err := s.accounts.FindAccountByLogin(ctx, login)
	if err != nil {
		return session.SessionKeyHandle{}, models.Account{}, mapStorageError(err)
	}

	if account.AccountID != handle.AccountID || account.SessionGeneration != handle.Generation {
		logger.FromContext(ctx).Info().
			Int64("cached_generation", handle.Generation).
			Int64("account_generation", account.SessionGeneration).
			Msg("stale session key cleared")
		s.cache.Clear()
		return session.SessionKeyHandle{}, models.Account{}, ErrSessionExpired
	}

	return handle, account, nil
}

// installRecovery generates a secret, wraps masterKey under it and stores
// the wrap. The recovery salt is reused when one exists.
func (s *keyService) installRecovery(ctx context.Context, account models.Account, masterKey crypto.Key) (string, error) {
	secret, err := s.keys.GenerateRecoverySecret()
	if err != nil {
		return "", fmt.Errorf("generate recovery secret: %w", err)
	}

	recoverySalt := account.RecoverySalt
	if recoverySalt == "" {
		if recoverySalt, err = s.keys.GenerateSalt(); err != nil {
			return "", fmt.Errorf("generate recovery salt: %w", err)
		}
	}

	wrapped, err := s.keys.SetupRecovery(masterKey, secret, recoverySalt)
	if err != nil {
		return "", fmt.Errorf("wrap recovery key: %w", err)
	}

	if err = s.accounts.SetRecoveryWrap(ctx, models.RecoveryWrapUpdate{
		AccountID:                account.AccountID,
		WrappedMasterKeyRecovery: wrapped.String(),
		RecoverySalt:             recoverySalt,
	}); err != nil {
		return "", mapStorageError(err)
	}

	return secret.String(), nil
}

// unlockContentKey checks password against account and returns its content
// key, the unwrapped master key or the derived key itself for legacy
// accounts, together with the auth hash of the derived key. Legacy accounts
// have no wrap to authenticate against, so storage checks their auth hash.
// The password itself never reaches storage.
func unlockContentKey(ctx context.Context, accounts store.AccountStorage, keys crypto.KeyChain, account models.Account, password string) (crypto.Key, string, error) {
	version, err := crypto.ParseKDFVersion(account.KDFVersion)
	if err != nil {
		return crypto.Key{}, "", err
	}

	derived, err := keys.Derive(password, account.Salt, version)
	if err != nil {
		return crypto.Key{}, "", err
	}
	authHash := keys.AuthHash(derived, account.Salt)

	switch account.KeyMode {
	case models.KeyModeMasterKeyWrapped:
		defer derived.Wipe()

		wrapped, err := crypto.ParseWrappedKey(account.WrappedMasterKey)
		if err != nil {
			return crypto.Key{}, "", fmt.Errorf("parse password wrap: %w", err)
		}
		masterKey, err := keys.Unwrap(wrapped, derived)
		if err != nil {
			return crypto.Key{}, "", mapCryptoError(err)
		}
		return masterKey, authHash, nil

	case models.KeyModeLegacy:
		if err = accounts.VerifyCredential(ctx, account.AccountID, authHash); err != nil {
			derived.Wipe()
			return crypto.Key{}, "", mapStorageError(err)
		}
		return derived, authHash, nil

	default:
		derived.Wipe()
		return crypto.Key{}, "", fmt.Errorf("%w: key mode %q", ErrInvalidDataProvided, account.KeyMode)
	}
}
