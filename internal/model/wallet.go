package model

// KWTFile represents .kwt file structure
type KWTFile struct {
	Network    string `json:"network"`
	Account    string `json:"account"`
	QR         string `json:"QR"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted wallet data
type WalletData struct {
	SecretKey []byte `json:"secretKey"`          // 32 bytes Ed25519 seed (stored as base64 in JSON)
	Mnemonic  string `json:"mnemonic,omitempty"` // recovery phrase, kept for export/restore
	CreatedAt string `json:"createdAt"`
}
