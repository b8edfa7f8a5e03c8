package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeriver() *Deriver {
	return NewDeriver(WithIterations(1_000, 2_000))
}

func fixedSalt(b byte) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat(string([]byte{b}), SaltSize)))
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	d := testDeriver()

	s1, err := d.GenerateSalt()
	require.NoError(t, err)
	s2, err := d.GenerateSalt()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(s1)
	require.NoError(t, err)
	assert.Len(t, raw, SaltSize)
	assert.NotEqual(t, s1, s2, "expected salts to differ")
}

func TestDerive_DeterministicForSameInputs(t *testing.T) {
	d := testDeriver()
	salt := fixedSalt(0xAB)

	k1, err := d.Derive("correct horse battery staple", salt, KDFCurrent)
	require.NoError(t, err)
	k2, err := d.Derive("correct horse battery staple", salt, KDFCurrent)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.False(t, k1.IsZero())
}

func TestDerive_DifferentInputsProduceDifferentKeys(t *testing.T) {
	d := testDeriver()

	base, err := d.Derive("same password", fixedSalt(0x01), KDFCurrent)
	require.NoError(t, err)

	otherSalt, err := d.Derive("same password", fixedSalt(0x02), KDFCurrent)
	require.NoError(t, err)
	otherPassword, err := d.Derive("other password", fixedSalt(0x01), KDFCurrent)
	require.NoError(t, err)
	otherVersion, err := d.Derive("same password", fixedSalt(0x01), KDFLegacy)
	require.NoError(t, err)

	assert.NotEqual(t, base, otherSalt)
	assert.NotEqual(t, base, otherPassword)
	assert.NotEqual(t, base, otherVersion)
}

func TestDerive_InvalidInput(t *testing.T) {
	d := testDeriver()

	tests := []struct {
		name     string
		password string
		salt     string
		version  KDFVersion
	}{
		{name: "empty password", password: "", salt: fixedSalt(1), version: KDFCurrent},
		{name: "salt not base64", password: "pw", salt: "%%%", version: KDFCurrent},
		{name: "short salt", password: "pw", salt: base64.StdEncoding.EncodeToString([]byte("short")), version: KDFCurrent},
		{name: "empty salt", password: "pw", salt: "", version: KDFCurrent},
		{name: "unknown version", password: "pw", salt: fixedSalt(1), version: KDFUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Derive(tt.password, tt.salt, tt.version)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestKDFVersion_StringRoundTrip(t *testing.T) {
	for _, v := range []KDFVersion{KDFLegacy, KDFCurrent} {
		parsed, err := ParseKDFVersion(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseKDFVersion("600000")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewDeriver_DefaultIterations(t *testing.T) {
	d := NewDeriver()
	assert.Equal(t, legacyIterations, d.iterations[KDFLegacy])
	assert.Equal(t, currentIterations, d.iterations[KDFCurrent])
	assert.Greater(t, d.iterations[KDFCurrent], d.iterations[KDFLegacy])
}

func TestKey_Wipe(t *testing.T) {
	k, err := KeyFromBytes([]byte(strings.Repeat("k", KeySize)))
	require.NoError(t, err)
	require.False(t, k.IsZero())

	k.Wipe()
	assert.True(t, k.IsZero())

	_, err = KeyFromBytes([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthHash_BoundToKeyAndSalt(t *testing.T) {
	d := testDeriver()
	salt := fixedSalt(0x07)

	key, err := d.Derive("correct horse battery staple", salt, KDFCurrent)
	require.NoError(t, err)

	hash := d.AuthHash(key, salt)
	assert.Equal(t, hash, d.AuthHash(key, salt))

	raw, err := base64.StdEncoding.DecodeString(hash)
	require.NoError(t, err)
	assert.Len(t, raw, AuthHashSize)

	// The hash is not the key and is not usable as one.
	assert.NotEqual(t, key[:], raw)
	assert.NotEqual(t, hash, d.AuthHash(key, fixedSalt(0x08)))

	other, err := d.Derive("correct horse battery stapler", salt, KDFCurrent)
	require.NoError(t, err)
	assert.NotEqual(t, hash, d.AuthHash(other, salt))

	legacy, err := d.Derive("correct horse battery staple", salt, KDFLegacy)
	require.NoError(t, err)
	assert.NotEqual(t, hash, d.AuthHash(legacy, salt))
}
