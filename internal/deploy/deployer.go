package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/AlexZinkM/testnet-activity/internal/model"
)

// TokenDecimals is the fixed precision for deployed fungible assets.
const TokenDecimals = 9

const nftRoyaltyBasisPoints = 500

// ChainClient is the slice of the chain facade the deployer needs.
type ChainClient interface {
	CreateTokenMint(ctx context.Context, payer solana.PrivateKey, decimals uint8) (solana.PublicKey, error)
	CreateHoldingAccount(ctx context.Context, payer solana.PrivateKey, owner, mint solana.PublicKey) (solana.PublicKey, error)
	CreateNFT(ctx context.Context, payer solana.PrivateKey, meta model.NFTMetadata) (mint, metadata, holding solana.PublicKey, err error)
}

// Deployer creates one asset per call and records it on the owning wallet.
type Deployer struct {
	chain ChainClient
	log   *zap.Logger
}

// NewDeployer creates a Deployer backed by the given chain client.
func NewDeployer(chain ChainClient, log *zap.Logger) *Deployer {
	return &Deployer{chain: chain, log: log}
}

// DeployToken creates a mint with the fixed precision and the wallet's
// holding account for it, each step confirmed before the next. The created
// asset is inserted into the wallet's token map.
func (d *Deployer) DeployToken(ctx context.Context, w *model.Wallet) (*model.TokenAsset, error) {
	mint, err := d.chain.CreateTokenMint(ctx, w.PrivateKey, TokenDecimals)
	if err != nil {
		return nil, &model.DeployError{Kind: model.KindToken, Err: err}
	}

	holding, err := d.chain.CreateHoldingAccount(ctx, w.PrivateKey, w.PublicKey, mint)
	if err != nil {
		return nil, &model.DeployError{Kind: model.KindToken, Err: err}
	}

	asset := &model.TokenAsset{
		Mint:           mint,
		HoldingAccount: holding,
	}
	w.AddToken(asset)

	d.log.Info("token deployed",
		zap.Int("wallet", w.Index),
		zap.String("mint", mint.String()),
	)

	return asset, nil
}

// DeployNFT issues a single NFT with synthetic metadata (no external media)
// and inserts it into the wallet's NFT map.
func (d *Deployer) DeployNFT(ctx context.Context, w *model.Wallet) (*model.NFTAsset, error) {
	meta := model.NFTMetadata{
		Name:                 fmt.Sprintf("Activity NFT W%d %s", w.Index, time.Now().Format("150405")),
		Symbol:               fmt.Sprintf("ACT%d", w.Index),
		SellerFeeBasisPoints: nftRoyaltyBasisPoints,
	}

	mint, metadata, holding, err := d.chain.CreateNFT(ctx, w.PrivateKey, meta)
	if err != nil {
		return nil, &model.DeployError{Kind: model.KindNFT, Err: err}
	}

	asset := &model.NFTAsset{
		Mint:                 mint,
		Metadata:             metadata,
		HoldingAccount:       holding,
		Name:                 meta.Name,
		Symbol:               meta.Symbol,
		SellerFeeBasisPoints: meta.SellerFeeBasisPoints,
	}
	w.AddNFT(asset)

	d.log.Info("NFT deployed",
		zap.Int("wallet", w.Index),
		zap.String("mint", mint.String()),
	)

	return asset, nil
}
