// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/base64"
)

// authHashLabel separates the credential hash from every other use of the
// password-derived key.
const authHashLabel = "journal-vault/auth-hash/v1"

// AuthHashSize is the decoded length of an auth hash.
const AuthHashSize = sha256.Size

// AuthHash returns base64(SHA-256(label ‖ passwordKey ‖ salt)). It is the
// only password-bound value that leaves the client: storage keeps a keyed
// hash of it to check credentials, and it cannot be turned back into
// passwordKey.
func (d *Deriver) AuthHash(passwordKey Key, salt string) string {
	h := sha256.New()
	h.Write([]byte(authHashLabel))
	h.Write(passwordKey[:])
	h.Write([]byte(salt))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
