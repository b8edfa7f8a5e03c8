// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// keyChain is the private implementation of [KeyChain]; it delegates to
// the individual components.
type keyChain struct {
	*Deriver
	*FieldCipher
	*MasterKeyManager
	*BlindIndexer

	recovery *RecoveryKeyManager
}

// NewKeyChain constructs a [KeyChain]. Options tune key derivation only.
func NewKeyChain(opts ...Option) KeyChain {
	deriver := NewDeriver(opts...)
	masterKeys := NewMasterKeyManager()

	return &keyChain{
		Deriver:          deriver,
		FieldCipher:      NewFieldCipher(),
		MasterKeyManager: masterKeys,
		BlindIndexer:     NewBlindIndexer(),
		recovery:         NewRecoveryKeyManager(deriver, masterKeys),
	}
}

func (k *keyChain) GenerateRecoverySecret() (RecoverySecret, error) {
	return k.recovery.GenerateRecoverySecret()
}

func (k *keyChain) SetupRecovery(masterKey Key, secret RecoverySecret, salt string) (WrappedKey, error) {
	return k.recovery.SetupRecovery(masterKey, secret, salt)
}

func (k *keyChain) UnwrapWithRecovery(record WrappedKey, secret RecoverySecret, salt string) (Key, error) {
	return k.recovery.UnwrapWithRecovery(record, secret, salt)
}
