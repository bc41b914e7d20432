package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	token_metadata "github.com/gagliardetto/metaplex-go/clients/token-metadata"

	"github.com/AlexZinkM/testnet-activity/internal/model"
)

const (
	// Mint account size is 82 bytes
	mintAccountSize = 82

	confirmPollInterval = 500 * time.Millisecond
	confirmMaxAttempts  = 60
)

// SolanaClient is a client for working with Solana RPC. It builds, signs,
// submits and confirms the transactions the deployer and executor need.
type SolanaClient struct {
	rpcClient *rpc.Client
	rpcURL    string
	log       *zap.Logger
}

// NewSolanaClient creates a new Solana client for the given RPC endpoint.
func NewSolanaClient(rpcURL string, log *zap.Logger) *SolanaClient {
	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
		log:       log,
	}
}

// GetBalance gets the SOL balance (lamports) for the given address
func (c *SolanaClient) GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	balance, err := c.rpcClient.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get SOL balance: %w", err)
	}
	return balance.Value, nil
}

// CreateTokenMint creates and initializes a new SPL mint owned by payer.
// Two instructions in one transaction: fund the mint account, then
// initialize it with the given decimal precision.
func (c *SolanaClient) CreateTokenMint(ctx context.Context, payer solana.PrivateKey, decimals uint8) (solana.PublicKey, error) {
	mint := solana.NewWallet()
	payerPub := payer.PublicKey()

	rentExempt, err := c.rpcClient.GetMinimumBalanceForRentExemption(
		ctx,
		mintAccountSize,
		rpc.CommitmentFinalized,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to get rent exemption: %w", err)
	}

	createAccount := system.NewCreateAccountInstruction(
		rentExempt,
		mintAccountSize,
		solana.TokenProgramID,
		payerPub,
		mint.PublicKey(),
	).Build()

	initMint := token.NewInitializeMintInstruction(
		decimals,
		payerPub, // mint authority
		payerPub, // freeze authority
		mint.PublicKey(),
		solana.SysVarRentPubkey,
	).Build()

	err = c.sendAndConfirm(ctx, payerPub,
		[]solana.Instruction{createAccount, initMint},
		payer, mint.PrivateKey,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to create mint: %w", err)
	}

	return mint.PublicKey(), nil
}

// CreateHoldingAccount derives the associated token account for owner+mint
// and creates it if it does not exist yet. Returns the account address.
func (c *SolanaClient) CreateHoldingAccount(ctx context.Context, payer solana.PrivateKey, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to find associated token account address: %w", err)
	}

	info, err := c.rpcClient.GetAccountInfo(ctx, ata)
	if err != nil && !isAccountNotFoundError(err) {
		return solana.PublicKey{}, fmt.Errorf("failed to get account info: %w", err)
	}
	if err == nil && info.Value != nil {
		return ata, nil
	}

	createATA := associatedtokenaccount.NewCreateInstruction(
		payer.PublicKey(), // payer
		owner,             // owner
		mint,              // mint
	).Build()

	if err := c.sendAndConfirm(ctx, payer.PublicKey(), []solana.Instruction{createATA}, payer); err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to create holding account: %w", err)
	}

	return ata, nil
}

// MintTo mints amount base units of mint to the destination token account.
// Payer must be the mint authority.
func (c *SolanaClient) MintTo(ctx context.Context, payer solana.PrivateKey, mint, dest solana.PublicKey, amount uint64) error {
	mintTo := token.NewMintToInstruction(
		amount,
		mint,
		dest,
		payer.PublicKey(),
		[]solana.PublicKey{},
	).Build()

	if err := c.sendAndConfirm(ctx, payer.PublicKey(), []solana.Instruction{mintTo}, payer); err != nil {
		return fmt.Errorf("failed to mint to %s: %w", dest.String(), err)
	}
	return nil
}

// TransferTokens moves amount base units between two token accounts of mint.
func (c *SolanaClient) TransferTokens(ctx context.Context, payer solana.PrivateKey, mint, source, dest solana.PublicKey, amount uint64, decimals uint8) error {
	transfer := token.NewTransferCheckedInstruction(
		amount,
		decimals,
		source,
		mint,
		dest,
		payer.PublicKey(),
		[]solana.PublicKey{},
	).Build()

	if err := c.sendAndConfirm(ctx, payer.PublicKey(), []solana.Instruction{transfer}, payer); err != nil {
		return fmt.Errorf("failed to transfer tokens: %w", err)
	}
	return nil
}

// BurnTokens burns amount base units from the source token account.
func (c *SolanaClient) BurnTokens(ctx context.Context, payer solana.PrivateKey, mint, source solana.PublicKey, amount uint64) error {
	burn := token.NewBurnInstruction(
		amount,
		source,
		mint,
		payer.PublicKey(),
		[]solana.PublicKey{},
	).Build()

	if err := c.sendAndConfirm(ctx, payer.PublicKey(), []solana.Instruction{burn}, payer); err != nil {
		return fmt.Errorf("failed to burn tokens: %w", err)
	}
	return nil
}

// CreateNFT issues a supply-1 zero-decimals mint with a Metaplex metadata
// account. Everything goes in one transaction: create account, init mint,
// create the payer's holding account, mint the single copy, attach metadata.
// Returns the mint, the metadata PDA and the payer's holding account.
func (c *SolanaClient) CreateNFT(ctx context.Context, payer solana.PrivateKey, meta model.NFTMetadata) (solana.PublicKey, solana.PublicKey, solana.PublicKey, error) {
	mint := solana.NewWallet()
	payerPub := payer.PublicKey()

	rentExempt, err := c.rpcClient.GetMinimumBalanceForRentExemption(
		ctx,
		mintAccountSize,
		rpc.CommitmentFinalized,
	)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to get rent exemption: %w", err)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(payerPub, mint.PublicKey())
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to find associated token account address: %w", err)
	}

	metadataAddr, _, err := solana.FindTokenMetadataAddress(mint.PublicKey())
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to find metadata address: %w", err)
	}

	var collection *token_metadata.Collection
	if meta.Collection != nil {
		collection = &token_metadata.Collection{
			Verified: false,
			Key:      *meta.Collection,
		}
	}

	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(
			rentExempt,
			mintAccountSize,
			solana.TokenProgramID,
			payerPub,
			mint.PublicKey(),
		).Build(),
		token.NewInitializeMintInstruction(
			0, // NFTs are indivisible
			payerPub,
			payerPub,
			mint.PublicKey(),
			solana.SysVarRentPubkey,
		).Build(),
		associatedtokenaccount.NewCreateInstruction(
			payerPub,
			payerPub,
			mint.PublicKey(),
		).Build(),
		token.NewMintToInstruction(
			1,
			mint.PublicKey(),
			ata,
			payerPub,
			[]solana.PublicKey{},
		).Build(),
		token_metadata.NewCreateMetadataAccountV2Instruction(
			token_metadata.CreateMetadataAccountArgsV2{
				Data: token_metadata.DataV2{
					Name:                 meta.Name,
					Symbol:               meta.Symbol,
					Uri:                  meta.URI,
					SellerFeeBasisPoints: meta.SellerFeeBasisPoints,
					Collection:           collection,
				},
				IsMutable: true,
			},
			metadataAddr,
			mint.PublicKey(),
			payerPub, // mint authority
			payerPub, // payer
			payerPub, // update authority
			solana.SystemProgramID,
			solana.SysVarRentPubkey,
		).Build(),
	}

	if err := c.sendAndConfirm(ctx, payerPub, instructions, payer, mint.PrivateKey); err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to create NFT: %w", err)
	}

	return mint.PublicKey(), metadataAddr, ata, nil
}

// UpdateNFTData rewrites the metadata account's data struct. Payer must be
// the update authority.
func (c *SolanaClient) UpdateNFTData(ctx context.Context, payer solana.PrivateKey, metadata solana.PublicKey, meta model.NFTMetadata) error {
	var collection *token_metadata.Collection
	if meta.Collection != nil {
		collection = &token_metadata.Collection{
			Verified: false,
			Key:      *meta.Collection,
		}
	}

	data := token_metadata.DataV2{
		Name:                 meta.Name,
		Symbol:               meta.Symbol,
		Uri:                  meta.URI,
		SellerFeeBasisPoints: meta.SellerFeeBasisPoints,
		Collection:           collection,
	}

	update := token_metadata.NewUpdateMetadataAccountV2Instruction(
		token_metadata.UpdateMetadataAccountArgsV2{
			Data: &data,
		},
		metadata,
		payer.PublicKey(),
	).Build()

	if err := c.sendAndConfirm(ctx, payer.PublicKey(), []solana.Instruction{update}, payer); err != nil {
		return fmt.Errorf("failed to update NFT metadata: %w", err)
	}
	return nil
}

// sendAndConfirm builds a transaction from the instructions, signs it with
// the given keys, submits it and blocks until the cluster confirms the
// signature or the attempt budget runs out.
func (c *SolanaClient) sendAndConfirm(ctx context.Context, feePayer solana.PublicKey, instructions []solana.Instruction, signers ...solana.PrivateKey) error {
	recent, err := c.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(feePayer),
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := c.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	c.log.Debug("transaction sent", zap.String("signature", sig.String()))

	return c.confirmSignature(ctx, sig)
}

// confirmSignature polls signature status until confirmed or finalized.
func (c *SolanaClient) confirmSignature(ctx context.Context, sig solana.Signature) error {
	for attempt := 0; attempt < confirmMaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(confirmPollInterval):
		}

		statuses, err := c.rpcClient.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return fmt.Errorf("failed to get signature status: %w", err)
		}
		if len(statuses.Value) == 0 || statuses.Value[0] == nil {
			continue
		}

		status := statuses.Value[0]
		if status.Err != nil {
			return fmt.Errorf("transaction %s failed on chain: %v", sig.String(), status.Err)
		}
		if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
			return nil
		}
	}

	return fmt.Errorf("transaction %s not confirmed after %d attempts", sig.String(), confirmMaxAttempts)
}

// isAccountNotFoundError checks if error indicates that the account doesn't exist
func isAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "could not find account") ||
		strings.Contains(errStr, "not found")
}
