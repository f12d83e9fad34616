// One-off: decrypt old-format wallet (hex secret key in JSON), re-encrypt in
// the current format, same salt+nonce. Output: new cipherText only.
// Usage: go run ./cmd/reencrypt_cipher <salt-b64> <nonce-b64> <cipherText-b64>
package main

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cyberfly-io/node-wallet/internal/config"
	"github.com/cyberfly-io/node-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	scryptN      = 1 << 18
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: reencrypt_cipher <salt-b64> <nonce-b64> <cipherText-b64>")
		os.Exit(1)
	}

	if err := config.PromptForPassword(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	password, err := config.GetWalletPasswordBytes()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(password)

	salt, _ := base64.StdEncoding.DecodeString(os.Args[1])
	nonce, _ := base64.StdEncoding.DecodeString(os.Args[2])
	ciphertext, _ := base64.StdEncoding.DecodeString(os.Args[3])

	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	block, _ := aes.NewCipher(key)
	aesGCM, _ := cipher.NewGCM(block)
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decrypt failed:", err)
		os.Exit(1)
	}

	// Old format: secretKey is a hex string in JSON
	var raw map[string]interface{}
	if err := json.Unmarshal(plaintext, &raw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	skStr, _ := raw["secretKey"].(string)
	createdAt, _ := raw["createdAt"].(string)
	if len(skStr) != 64 {
		fmt.Fprintln(os.Stderr, "invalid old secretKey format")
		os.Exit(1)
	}

	seed, err := hex.DecodeString(skStr)
	if err != nil || len(seed) != 32 {
		fmt.Fprintln(os.Stderr, "hex decode failed")
		os.Exit(1)
	}

	// Current format: secretKey is []byte (JSON will base64-encode it)
	newWallet := &model.WalletData{
		SecretKey: seed,
		CreatedAt: createdAt,
	}
	newPlaintext, _ := json.Marshal(newWallet)

	// Re-encrypt with the same key and nonce; only cipherText changes
	newCiphertext := aesGCM.Seal(nil, nonce, newPlaintext, nil)
	fmt.Print(base64.StdEncoding.EncodeToString(newCiphertext))
}
