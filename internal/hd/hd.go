// Package hd derives the node's ledger identity from a BIP-39 recovery phrase.
//
// The derivation is fixed: BIP-39 seed (empty passphrase), then the SLIP-0010
// ed25519 hardened path m/44'/626'/0'. Exposing arbitrary paths is deliberately
// avoided - a different path silently produces a different, unrecoverable
// identity.
package hd

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cyberfly-io/node-wallet/internal/model"

	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidPhrase is returned when the recovery phrase fails word-count or
// checksum validation. Fatal: the user must re-enter the phrase.
var ErrInvalidPhrase = errors.New("invalid recovery phrase: bad word count or checksum")

const (
	entropyBits = 128 // 12 words

	// m/44'/626'/0' (hardened). 626 is the Kadena coin type.
	purposeIndex  = 44
	coinTypeIndex = 626
	accountIndex  = 0

	hardenedOffset = 0x80000000
)

// slip10 master key salt for the ed25519 curve
var ed25519SeedKey = []byte("ed25519 seed")

// ValidateMnemonic checks word count and checksum only. It does not derive keys.
func ValidateMnemonic(phrase string) bool {
	return bip39.IsMnemonicValid(phrase)
}

// GenerateMnemonic produces a fresh 12-word recovery phrase from a
// cryptographically secure random source. Never used for restore.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to encode mnemonic: %w", err)
	}
	return phrase, nil
}

// DeriveIdentity derives the Ed25519 keypair and account id for a recovery
// phrase. Deterministic: the same phrase always yields byte-identical output.
func DeriveIdentity(phrase string) (*model.Identity, error) {
	if !ValidateMnemonic(phrase) {
		return nil, ErrInvalidPhrase
	}

	// Empty passphrase, fixed by the derivation contract
	seed := bip39.NewSeed(phrase, "")

	key, chainCode := masterKey(seed)
	for _, index := range []uint32{purposeIndex, coinTypeIndex, accountIndex} {
		key, chainCode = deriveHardened(key, chainCode, index)
	}

	priv := ed25519.NewKeyFromSeed(key)
	pub, err := normalizePublicKey(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}

	pubHex := hex.EncodeToString(pub)
	return &model.Identity{
		PublicKeyHex: pubHex,
		SecretKeyHex: hex.EncodeToString(key),
		AccountID:    model.AccountPrefix + pubHex,
	}, nil
}

// IdentityFromSecretKey rebuilds an Identity from a stored 32-byte secret key.
func IdentityFromSecretKey(secretKey []byte) (*model.Identity, error) {
	if len(secretKey) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid secret key length: expected %d bytes, got %d", ed25519.SeedSize, len(secretKey))
	}
	priv := ed25519.NewKeyFromSeed(secretKey)
	pub, err := normalizePublicKey(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	pubHex := hex.EncodeToString(pub)
	return &model.Identity{
		PublicKeyHex: pubHex,
		SecretKeyHex: hex.EncodeToString(secretKey),
		AccountID:    model.AccountPrefix + pubHex,
	}, nil
}

// masterKey computes the SLIP-0010 ed25519 master key and chain code.
func masterKey(seed []byte) (key, chainCode []byte) {
	mac := hmac.New(sha512.New, ed25519SeedKey)
	mac.Write(seed)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// deriveHardened computes one hardened child key step:
// I = HMAC-SHA512(chainCode, 0x00 || key || ser32(index + 2^31))
func deriveHardened(key, chainCode []byte, index uint32) (childKey, childChainCode []byte) {
	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, key...)

	indexBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(indexBytes, index+hardenedOffset)
	data = append(data, indexBytes...)

	mac := hmac.New(sha512.New, chainCode)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}

// normalizePublicKey returns the 32-byte public key form. Some signing
// libraries emit a 33-byte key with a leading type-prefix byte; that prefix is
// stripped here so hex encoding is always 64 characters.
func normalizePublicKey(pub []byte) ([]byte, error) {
	if len(pub) == ed25519.PublicKeySize+1 && pub[0] == 0x00 {
		pub = pub[1:]
	}
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length: expected %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	return pub, nil
}
