package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cyberfly-io/node-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

// ErrWalletNotFound is returned when the wallet file does not exist or is empty.
var ErrWalletNotFound = errors.New("wallet file does not exist")

// DecryptWallet reads and decrypts .kwt file
// password must be []byte for security (caller should zero it after use)
func DecryptWallet(filePath string, password []byte) (*model.KWTFile, *model.WalletData, error) {
	fileData, err := readWalletFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	// Deserialize file structure
	var kwtFile model.KWTFile
	if err := json.Unmarshal(fileData, &kwtFile); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal kwt file: %w", err)
	}

	// Decode salt and nonce
	salt, err := base64.StdEncoding.DecodeString(kwtFile.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(kwtFile.Nonce)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(kwtFile.CipherText)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	// Derive key from password
	key, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive key: %w", err)
	}

	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Decrypt
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, nil, errors.New("invalid password")
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	// Deserialize wallet data
	var walletData model.WalletData
	if err := json.Unmarshal(plaintext, &walletData); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal wallet data: %w", err)
	}

	return &kwtFile, &walletData, nil
}

// ReadWalletAccount reads only the account from .kwt file (without decryption)
func ReadWalletAccount(filePath string) (string, error) {
	fileData, err := readWalletFile(filePath)
	if err != nil {
		return "", err
	}

	var kwtFile model.KWTFile
	if err := json.Unmarshal(fileData, &kwtFile); err != nil {
		return "", fmt.Errorf("failed to unmarshal kwt file: %w", err)
	}

	return kwtFile.Account, nil
}

// readWalletFile reads the container, skipping the UTF-8 BOM if present
func readWalletFile(filePath string) ([]byte, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if fileInfo.Size() == 0 {
		return nil, ErrWalletNotFound
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(fileData) >= 3 && fileData[0] == 0xEF && fileData[1] == 0xBB && fileData[2] == 0xBF {
		fileData = fileData[3:]
	}
	return fileData, nil
}
