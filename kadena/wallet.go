package kadena

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cyberfly-io/node-wallet/internal/crypto"
	"github.com/cyberfly-io/node-wallet/internal/hd"
	"github.com/cyberfly-io/node-wallet/internal/model"

	"github.com/skip2/go-qrcode"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	_, ok := err.(*FileExistsError)
	return ok
}

// GenerateWallet generates a fresh recovery phrase, derives the ledger
// identity and saves it encrypted to a .kwt file. The phrase is returned
// exactly once; it is not retrievable through the API afterwards.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, password []byte) (account, mnemonic string, err error) {
	phrase, err := hd.GenerateMnemonic()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate recovery phrase: %w", err)
	}

	account, err = writeWallet(filePath, password, phrase)
	if err != nil {
		return "", "", err
	}
	return account, phrase, nil
}

// RestoreWallet derives the identity from an existing recovery phrase and
// saves it encrypted to a .kwt file. The same phrase always restores the
// same account.
// password must be []byte for security (caller should zero it after use)
func RestoreWallet(filePath string, password []byte, phrase string) (account string, err error) {
	return writeWallet(filePath, password, phrase)
}

// writeWallet derives the identity for phrase and writes the encrypted file
func writeWallet(filePath string, password []byte, phrase string) (string, error) {
	// Check file extension (.kwt)
	if ext := filepath.Ext(filePath); ext != ".kwt" {
		return "", fmt.Errorf("file must have .kwt extension")
	}

	identity, err := hd.DeriveIdentity(phrase)
	if err != nil {
		return "", err
	}

	secretKey, err := hex.DecodeString(identity.SecretKeyHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret key: %w", err)
	}
	defer clear(secretKey)

	// Generate QR code for the account
	qrCode, err := generateQRCode(identity.AccountID)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	walletData := &model.WalletData{
		SecretKey: secretKey,
		Mnemonic:  phrase,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, networkKadena, identity.AccountID, qrCode, walletData, password); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", &FileExistsError{Message: "file is not empty"}
		}
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return identity.AccountID, nil
}

// generateQRCode generates QR code of account in base64
func generateQRCode(account string) (string, error) {
	qr, err := qrcode.New(account, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	// Encode to base64
	return base64.StdEncoding.EncodeToString(png), nil
}
