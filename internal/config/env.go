package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the application.
type Config struct {
	KeysFile  string `envconfig:"KEYS_FILE" default:"wallets.txt"`
	RPCURL    string `envconfig:"RPC_URL" default:"devnet"`
	ReportDir string `envconfig:"REPORT_DIR" default:"."`
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

// GetKeysFile returns the path to the secret key file
func GetKeysFile() string {
	return Get().KeysFile
}

// GetRPCURL returns the resolved Solana RPC URL
func GetRPCURL() string {
	return ResolveRPCURL(Get().RPCURL)
}

// GetReportDir returns the directory report files are written to
func GetReportDir() string {
	return Get().ReportDir
}

// ResolveRPCURL maps cluster aliases to their public endpoints.
// Anything else is treated as a literal URL.
func ResolveRPCURL(value string) string {
	switch value {
	case "devnet", "dev":
		return rpc.DevNet_RPC
	case "testnet", "test":
		return rpc.TestNet_RPC
	case "mainnet", "main":
		return rpc.MainNetBeta_RPC
	default:
		return value
	}
}
