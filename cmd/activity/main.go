package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AlexZinkM/testnet-activity/internal/client"
	"github.com/AlexZinkM/testnet-activity/internal/common"
	"github.com/AlexZinkM/testnet-activity/internal/config"
	"github.com/AlexZinkM/testnet-activity/internal/deploy"
	"github.com/AlexZinkM/testnet-activity/internal/interact"
	"github.com/AlexZinkM/testnet-activity/internal/logger"
	"github.com/AlexZinkM/testnet-activity/internal/menu"
	"github.com/AlexZinkM/testnet-activity/internal/model"
	"github.com/AlexZinkM/testnet-activity/internal/orchestrator"
	"github.com/AlexZinkM/testnet-activity/internal/report"
	"github.com/AlexZinkM/testnet-activity/internal/wallet"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		return 1
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init config: %v\n", err)
		return 1
	}

	logger.Init()
	log := logger.Get()
	defer log.Sync()

	wallets, err := wallet.LoadFromFile(config.GetKeysFile(), log)
	if err != nil {
		log.Error("failed to load wallets", zap.Error(err))
		return 1
	}
	log.Info("wallets loaded",
		zap.Int("count", len(wallets)),
		zap.String("file", config.GetKeysFile()),
	)

	chain := client.NewSolanaClient(config.GetRPCURL(), log)

	ctx := context.Background()
	printBalances(ctx, chain, wallets, log)

	settings := model.DefaultSettings()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	deployer := deploy.NewDeployer(chain, log)
	executor := interact.NewExecutor(chain, wallets, rng, log)
	reports := report.NewGenerator(config.GetReportDir())

	orch := orchestrator.New(orchestrator.Params{
		Chain:    chain,
		Deployer: deployer,
		Executor: executor,
		Reporter: reports,
		Wallets:  wallets,
		Settings: settings,
		Rand:     rng,
		Log:      log,
	})

	return menu.New(os.Stdin, os.Stdout, orch, reports, settings).Run(ctx)
}

// printBalances shows each wallet's SOL balance before the menu comes up.
func printBalances(ctx context.Context, chain *client.SolanaClient, wallets []*model.Wallet, log *zap.Logger) {
	for _, w := range wallets {
		balance, err := chain.GetBalance(ctx, w.PublicKey)
		if err != nil {
			log.Warn("failed to read balance",
				zap.Int("wallet", w.Index),
				zap.Error(err),
			)
			continue
		}
		fmt.Printf("Wallet #%d %s: %s SOL\n", w.Index, w.PublicKey.String(), common.LamportsToSOL(balance))
	}
}
