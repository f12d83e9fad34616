package hd

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// Reference phrase from the BIP-39 test vectors.
const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveIdentityGoldenVector(t *testing.T) {
	id, err := DeriveIdentity(testPhrase)
	require.NoError(t, err)

	// Precomputed for m/44'/626'/0' from the reference seed.
	assert.Equal(t, "60ec71ef5df37ee922b272edf60590158938d6a6e0d385d506de913ad3f2be3d", id.PublicKeyHex)
	assert.Equal(t, "k:60ec71ef5df37ee922b272edf60590158938d6a6e0d385d506de913ad3f2be3d", id.AccountID)
	assert.Equal(t, "b584e9bdb0ed7ce973bed7af78ff13252a5e445d018a0b09eb29d78cd8af5b2a", id.SecretKeyHex)
}

func TestDeriveIdentityDeterministic(t *testing.T) {
	first, err := DeriveIdentity(testPhrase)
	require.NoError(t, err)
	second, err := DeriveIdentity(testPhrase)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDeriveIdentityRejectsInvalidPhrase(t *testing.T) {
	cases := map[string]string{
		"too few words":     "abandon abandon abandon",
		"tampered checksum": "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
		"unknown word":      strings.Replace(testPhrase, "about", "aboutx", 1),
		"empty":             "",
	}
	for name, phrase := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, ValidateMnemonic(phrase))
			_, err := DeriveIdentity(phrase)
			assert.ErrorIs(t, err, ErrInvalidPhrase)
		})
	}
}

func TestGenerateMnemonic(t *testing.T) {
	first, err := GenerateMnemonic()
	require.NoError(t, err)
	second, err := GenerateMnemonic()
	require.NoError(t, err)

	assert.Len(t, strings.Fields(first), 12)
	assert.True(t, ValidateMnemonic(first))
	assert.NotEqual(t, first, second, "fresh phrases must not repeat")
}

func TestAccountIDIsPrefixedHexKey(t *testing.T) {
	phrase, err := GenerateMnemonic()
	require.NoError(t, err)
	id, err := DeriveIdentity(phrase)
	require.NoError(t, err)

	assert.Len(t, id.PublicKeyHex, 64)
	assert.Equal(t, strings.ToLower(id.PublicKeyHex), id.PublicKeyHex)
	assert.Equal(t, "k:"+id.PublicKeyHex, id.AccountID)
}

func TestNormalizePublicKey(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i + 1)
	}

	// 32 bytes passes through untouched
	got, err := normalizePublicKey(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	// 33-byte form with a leading type-prefix byte is stripped
	prefixed := append([]byte{0x00}, raw...)
	got, err = normalizePublicKey(prefixed)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Len(t, got, 32)

	// Anything else is rejected
	_, err = normalizePublicKey(raw[:16])
	assert.Error(t, err)
}

func TestIdentityFromSecretKeyRoundTrip(t *testing.T) {
	derived, err := DeriveIdentity(testPhrase)
	require.NoError(t, err)

	rebuilt, err := IdentityFromSecretKey(mustHex(t, derived.SecretKeyHex))
	require.NoError(t, err)
	assert.Equal(t, derived, rebuilt)

	_, err = IdentityFromSecretKey([]byte{1, 2, 3})
	assert.Error(t, err)
}
