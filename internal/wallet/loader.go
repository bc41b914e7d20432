package wallet

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/AlexZinkM/testnet-activity/internal/model"
)

// LoadFromFile reads one base-58 secret key per line and returns wallets in
// file order with 1-based indexes. Blank lines are dropped; lines that fail
// to decode are logged and skipped without aborting the load.
func LoadFromFile(path string, log *zap.Logger) ([]*model.Wallet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file %s: %w", path, err)
	}
	defer file.Close()

	var wallets []*model.Wallet
	lineNo := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, err := solana.PrivateKeyFromBase58(line)
		if err != nil {
			log.Warn("skipping malformed secret key",
				zap.Int("line", lineNo),
				zap.Error(err),
			)
			continue
		}
		// base58 alone does not pin the size; a full secret key is 64 bytes
		if len(key) != 64 {
			log.Warn("skipping secret key with invalid length",
				zap.Int("line", lineNo),
				zap.Int("bytes", len(key)),
			)
			continue
		}

		w := model.NewWallet(len(wallets)+1, key)
		wallets = append(wallets, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	if len(wallets) == 0 {
		return nil, model.ErrNoValidWallets
	}

	return wallets, nil
}
