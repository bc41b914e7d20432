package interact

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/AlexZinkM/testnet-activity/internal/common"
	"github.com/AlexZinkM/testnet-activity/internal/deploy"
	"github.com/AlexZinkM/testnet-activity/internal/model"
)

// Action names. Tokens use mint/transfer/burn, NFTs swap burn for
// updateMetadata.
const (
	ActionMint           = "mint"
	ActionTransfer       = "transfer"
	ActionBurn           = "burn"
	ActionUpdateMetadata = "updateMetadata"
)

// Random amount bounds, inclusive.
const (
	maxMintAmount     = 1000
	maxTransferAmount = 100
	maxBurnAmount     = 50
)

// TokenActions returns the action set for fungible assets.
func TokenActions() []string {
	return []string{ActionMint, ActionTransfer, ActionBurn}
}

// NFTActions returns the action set for NFTs.
func NFTActions() []string {
	return []string{ActionMint, ActionTransfer, ActionUpdateMetadata}
}

// Rand is the random source for amounts and peer selection. Tests supply a
// scripted sequence; production wires math/rand.
type Rand interface {
	Intn(n int) int
}

// ChainClient is the slice of the chain facade the executor needs.
type ChainClient interface {
	CreateHoldingAccount(ctx context.Context, payer solana.PrivateKey, owner, mint solana.PublicKey) (solana.PublicKey, error)
	MintTo(ctx context.Context, payer solana.PrivateKey, mint, dest solana.PublicKey, amount uint64) error
	TransferTokens(ctx context.Context, payer solana.PrivateKey, mint, source, dest solana.PublicKey, amount uint64, decimals uint8) error
	BurnTokens(ctx context.Context, payer solana.PrivateKey, mint, source solana.PublicKey, amount uint64) error
	CreateNFT(ctx context.Context, payer solana.PrivateKey, meta model.NFTMetadata) (mint, metadata, holding solana.PublicKey, err error)
	UpdateNFTData(ctx context.Context, payer solana.PrivateKey, metadata solana.PublicKey, meta model.NFTMetadata) error
}

// Executor performs one mutating operation per call against a previously
// deployed asset and returns a human-readable outcome string.
type Executor struct {
	chain   ChainClient
	wallets []*model.Wallet
	rng     Rand
	now     func() time.Time
	log     *zap.Logger
}

// NewExecutor creates an Executor over the full wallet list. The wallet list
// is the transfer peer pool; a random pick may be the sender itself.
func NewExecutor(chain ChainClient, wallets []*model.Wallet, rng Rand, log *zap.Logger) *Executor {
	return &Executor{
		chain:   chain,
		wallets: wallets,
		rng:     rng,
		now:     time.Now,
		log:     log,
	}
}

// TokenInteraction performs one token action against the wallet's asset.
func (e *Executor) TokenInteraction(ctx context.Context, w *model.Wallet, asset *model.TokenAsset, action string) (string, error) {
	switch action {
	case ActionMint:
		return e.mintTokens(ctx, w, asset)
	case ActionTransfer:
		return e.transferTokens(ctx, w, asset)
	case ActionBurn:
		return e.burnTokens(ctx, w, asset)
	default:
		return "", &model.UnknownActionError{Action: action}
	}
}

// NFTInteraction performs one NFT action against the wallet's asset.
func (e *Executor) NFTInteraction(ctx context.Context, w *model.Wallet, asset *model.NFTAsset, action string) (string, error) {
	switch action {
	case ActionMint:
		return e.mintNFTCopy(ctx, w, asset)
	case ActionTransfer:
		return e.transferNFT(ctx, w, asset)
	case ActionUpdateMetadata:
		return e.updateNFTMetadata(ctx, w, asset)
	default:
		return "", &model.UnknownActionError{Action: action}
	}
}

func (e *Executor) mintTokens(ctx context.Context, w *model.Wallet, asset *model.TokenAsset) (string, error) {
	amount := uint64(1 + e.rng.Intn(maxMintAmount))

	err := e.chain.MintTo(ctx, w.PrivateKey, asset.Mint, asset.HoldingAccount,
		common.TokensToBase(amount, deploy.TokenDecimals))
	if err != nil {
		return "", fmt.Errorf("mint failed: %w", err)
	}

	return fmt.Sprintf("Minted %d tokens", amount), nil
}

func (e *Executor) transferTokens(ctx context.Context, w *model.Wallet, asset *model.TokenAsset) (string, error) {
	amount := uint64(1 + e.rng.Intn(maxTransferAmount))
	target := e.wallets[e.rng.Intn(len(e.wallets))] // may be the sender itself

	dest, err := e.holdingAccountFor(ctx, w, target, asset.Mint)
	if err != nil {
		return "", fmt.Errorf("transfer failed: %w", err)
	}

	err = e.chain.TransferTokens(ctx, w.PrivateKey, asset.Mint, asset.HoldingAccount, dest,
		common.TokensToBase(amount, deploy.TokenDecimals), deploy.TokenDecimals)
	if err != nil {
		return "", fmt.Errorf("transfer failed: %w", err)
	}

	return fmt.Sprintf("Transferred %d tokens to wallet #%d", amount, target.Index), nil
}

func (e *Executor) burnTokens(ctx context.Context, w *model.Wallet, asset *model.TokenAsset) (string, error) {
	amount := uint64(1 + e.rng.Intn(maxBurnAmount))

	err := e.chain.BurnTokens(ctx, w.PrivateKey, asset.Mint, asset.HoldingAccount,
		common.TokensToBase(amount, deploy.TokenDecimals))
	if err != nil {
		return "", fmt.Errorf("burn failed: %w", err)
	}

	return fmt.Sprintf("Burned %d tokens", amount), nil
}

func (e *Executor) mintNFTCopy(ctx context.Context, w *model.Wallet, asset *model.NFTAsset) (string, error) {
	collection := asset.Mint
	meta := model.NFTMetadata{
		Name:                 fmt.Sprintf("%s Copy %s", asset.Name, e.now().Format("150405")),
		Symbol:               asset.Symbol,
		SellerFeeBasisPoints: asset.SellerFeeBasisPoints,
		Collection:           &collection,
	}

	mint, metadata, holding, err := e.chain.CreateNFT(ctx, w.PrivateKey, meta)
	if err != nil {
		return "", fmt.Errorf("mint failed: %w", err)
	}

	w.AddNFT(&model.NFTAsset{
		Mint:                 mint,
		Metadata:             metadata,
		HoldingAccount:       holding,
		Name:                 meta.Name,
		Symbol:               meta.Symbol,
		SellerFeeBasisPoints: meta.SellerFeeBasisPoints,
	})

	return fmt.Sprintf("Minted NFT copy %s", mint.String()), nil
}

func (e *Executor) transferNFT(ctx context.Context, w *model.Wallet, asset *model.NFTAsset) (string, error) {
	target := e.wallets[e.rng.Intn(len(e.wallets))]

	dest, err := e.chain.CreateHoldingAccount(ctx, w.PrivateKey, target.PublicKey, asset.Mint)
	if err != nil {
		return "", fmt.Errorf("transfer failed: %w", err)
	}

	err = e.chain.TransferTokens(ctx, w.PrivateKey, asset.Mint, asset.HoldingAccount, dest, 1, 0)
	if err != nil {
		return "", fmt.Errorf("transfer failed: %w", err)
	}

	return fmt.Sprintf("Transferred NFT to wallet #%d", target.Index), nil
}

func (e *Executor) updateNFTMetadata(ctx context.Context, w *model.Wallet, asset *model.NFTAsset) (string, error) {
	newName := fmt.Sprintf("%s | %s", asset.Name, e.now().Format("15:04:05"))

	meta := model.NFTMetadata{
		Name:                 newName,
		Symbol:               asset.Symbol,
		SellerFeeBasisPoints: asset.SellerFeeBasisPoints,
	}
	if err := e.chain.UpdateNFTData(ctx, w.PrivateKey, asset.Metadata, meta); err != nil {
		return "", fmt.Errorf("metadata update failed: %w", err)
	}

	asset.Name = newName

	return fmt.Sprintf("Updated metadata name to %q", newName), nil
}

// holdingAccountFor returns the target wallet's holding account for mint,
// creating and recording it when the target has none yet.
func (e *Executor) holdingAccountFor(ctx context.Context, payer, target *model.Wallet, mint solana.PublicKey) (solana.PublicKey, error) {
	if existing, ok := target.Tokens[mint.String()]; ok {
		return existing.HoldingAccount, nil
	}

	holding, err := e.chain.CreateHoldingAccount(ctx, payer.PrivateKey, target.PublicKey, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}

	target.AddToken(&model.TokenAsset{
		Mint:           mint,
		HoldingAccount: holding,
	})

	e.log.Debug("holding account created for transfer target",
		zap.Int("wallet", target.Index),
		zap.String("mint", mint.String()),
	)

	return holding, nil
}
