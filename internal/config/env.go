package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetWalletPasswordBytes()
type Config struct {
	Port           string  `envconfig:"PORT" default:"8080"`
	WalletFilePath string  `envconfig:"WALLET_FILE_PATH" required:"true"`
	PactAPIURL     string  `envconfig:"PACT_API_URL" default:"https://api.cyberfly.io"`
	NetworkID      string  `envconfig:"NETWORK_ID" default:"mainnet01"`
	ChainID        string  `envconfig:"CHAIN_ID" default:"1"`
	NodeModule     string  `envconfig:"NODE_MODULE" default:"free.cyberfly_node"`
	GasStation     string  `envconfig:"GAS_STATION" default:"cyberfly-gas-station"`
	GasLimit       int64   `envconfig:"GAS_LIMIT" default:"12000"`
	GasPrice       float64 `envconfig:"GAS_PRICE" default:"0.0000001"`
	TTLSeconds     int64   `envconfig:"TTL_SECONDS" default:"28800"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletFilePath returns path to .kwt file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetPactAPIURL returns the Pact API base URL from configuration
func GetPactAPIURL() string {
	return Get().PactAPIURL
}

// GetNetworkID returns the Kadena network id from configuration
func GetNetworkID() string {
	return Get().NetworkID
}

// GetChainID returns the chain id from configuration
func GetChainID() string {
	return Get().ChainID
}

// GetNodeModule returns the node registry contract module name
func GetNodeModule() string {
	return Get().NodeModule
}

// GetGasStation returns the gas station account used as sender for node operations
func GetGasStation() string {
	return Get().GasStation
}

// GetGasLimit returns gas limit for command metadata
func GetGasLimit() int64 {
	return Get().GasLimit
}

// GetGasPrice returns gas price for command metadata
func GetGasPrice() float64 {
	return Get().GasPrice
}

// GetTTLSeconds returns command time-to-live in seconds
func GetTTLSeconds() int64 {
	return Get().TTLSeconds
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
