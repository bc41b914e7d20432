package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/AlexZinkM/testnet-activity/internal/common"
	"github.com/AlexZinkM/testnet-activity/internal/interact"
	"github.com/AlexZinkM/testnet-activity/internal/model"
)

// minBalanceLamports is the deploy threshold: wallets holding less than
// 0.1 SOL are skipped for the whole run.
const minBalanceLamports = 100_000_000

// BalanceClient is the slice of the chain facade the orchestrator needs.
type BalanceClient interface {
	GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
}

// Deployer creates one asset for a wallet.
type Deployer interface {
	DeployToken(ctx context.Context, w *model.Wallet) (*model.TokenAsset, error)
	DeployNFT(ctx context.Context, w *model.Wallet) (*model.NFTAsset, error)
}

// Executor performs one interaction against a deployed asset.
type Executor interface {
	TokenInteraction(ctx context.Context, w *model.Wallet, asset *model.TokenAsset, action string) (string, error)
	NFTInteraction(ctx context.Context, w *model.Wallet, asset *model.NFTAsset, action string) (string, error)
}

// Reporter persists the accumulated records after a run.
type Reporter interface {
	WriteReport(deployments []model.DeploymentRecord, interactions []model.InteractionRecord) (string, error)
}

// Orchestrator runs the deploy-then-interact pass over all wallets and owns
// the append-only record slices. Strictly sequential: one wallet, one
// submission, one interaction at a time.
type Orchestrator struct {
	chain    BalanceClient
	deployer Deployer
	executor Executor
	reporter Reporter

	wallets  []*model.Wallet
	settings *model.Settings
	rng      interact.Rand
	sleep    func(time.Duration)
	now      func() time.Time
	log      *zap.Logger

	deployments  []model.DeploymentRecord
	interactions []model.InteractionRecord
}

// Params collects the orchestrator's collaborators.
type Params struct {
	Chain    BalanceClient
	Deployer Deployer
	Executor Executor
	Reporter Reporter
	Wallets  []*model.Wallet
	Settings *model.Settings
	Rand     interact.Rand
	Log      *zap.Logger
}

// New creates an Orchestrator.
func New(p Params) *Orchestrator {
	return &Orchestrator{
		chain:    p.Chain,
		deployer: p.Deployer,
		executor: p.Executor,
		reporter: p.Reporter,
		wallets:  p.Wallets,
		settings: p.Settings,
		rng:      p.Rand,
		sleep:    time.Sleep,
		now:      time.Now,
		log:      p.Log,
	}
}

// Records returns the accumulated deployment and interaction records in
// insertion order.
func (o *Orchestrator) Records() ([]model.DeploymentRecord, []model.InteractionRecord) {
	return o.deployments, o.interactions
}

// Run performs one full orchestration pass of the given asset kind across
// all wallets, then writes a report. A failing wallet never blocks the next
// one; individual failures are logged and the loop continues.
func (o *Orchestrator) Run(ctx context.Context, kind model.AssetKind) error {
	for _, w := range o.wallets {
		o.runWallet(ctx, w, kind)
	}

	if o.reporter != nil {
		path, err := o.reporter.WriteReport(o.deployments, o.interactions)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		o.log.Info("report written", zap.String("path", path))
	}

	return nil
}

// runWallet is the per-wallet isolation boundary: balance check, one deploy,
// then the configured number of interaction attempts.
func (o *Orchestrator) runWallet(ctx context.Context, w *model.Wallet, kind model.AssetKind) {
	balance, err := o.chain.GetBalance(ctx, w.PublicKey)
	if err != nil {
		o.log.Warn("balance check failed, skipping wallet",
			zap.Int("wallet", w.Index),
			zap.Error(err),
		)
		return
	}
	if balance < minBalanceLamports {
		o.log.Warn("balance below threshold, skipping wallet",
			zap.Int("wallet", w.Index),
			zap.String("balance_sol", common.LamportsToSOL(balance)),
			zap.String("threshold_sol", common.LamportsToSOL(minBalanceLamports)),
		)
		return
	}

	var (
		tokenAsset *model.TokenAsset
		nftAsset   *model.NFTAsset
		asset      string
		actions    []string
	)

	switch kind {
	case model.KindNFT:
		nftAsset, err = o.deployer.DeployNFT(ctx, w)
		if err == nil {
			asset = nftAsset.Mint.String()
		}
		actions = interact.NFTActions()
	default:
		tokenAsset, err = o.deployer.DeployToken(ctx, w)
		if err == nil {
			asset = tokenAsset.Mint.String()
		}
		actions = interact.TokenActions()
	}
	if err != nil {
		o.log.Error("deploy failed, skipping wallet",
			zap.Int("wallet", w.Index),
			zap.Error(err),
		)
		return
	}

	o.deployments = append(o.deployments, model.DeploymentRecord{
		Timestamp:   o.now(),
		WalletIndex: w.Index,
		Kind:        kind,
		Asset:       asset,
	})

	for i := 0; i < o.settings.InteractionCount; i++ {
		action := actions[o.rng.Intn(len(actions))]

		var result string
		if kind == model.KindNFT {
			result, err = o.executor.NFTInteraction(ctx, w, nftAsset, action)
		} else {
			result, err = o.executor.TokenInteraction(ctx, w, tokenAsset, action)
		}
		if err != nil {
			// failed attempts still count toward the total
			o.log.Error("interaction failed",
				zap.Int("wallet", w.Index),
				zap.String("action", action),
				zap.Error(err),
			)
		} else {
			o.interactions = append(o.interactions, model.InteractionRecord{
				Timestamp:   o.now(),
				WalletIndex: w.Index,
				Kind:        kind,
				Action:      action,
				Result:      result,
			})
			o.log.Info("interaction done",
				zap.Int("wallet", w.Index),
				zap.String("action", action),
				zap.String("result", result),
			)
		}

		if i < o.settings.InteractionCount-1 && o.settings.IntervalMinutes > 0 {
			o.sleep(o.settings.Interval())
		}
	}
}
