package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexZinkM/testnet-activity/internal/model"
)

type fakeChain struct {
	mint    solana.PublicKey
	holding solana.PublicKey
	meta    solana.PublicKey

	mintErr    error
	holdingErr error
	nftErr     error

	gotDecimals uint8
	gotMeta     model.NFTMetadata
}

func (f *fakeChain) CreateTokenMint(_ context.Context, _ solana.PrivateKey, decimals uint8) (solana.PublicKey, error) {
	f.gotDecimals = decimals
	return f.mint, f.mintErr
}

func (f *fakeChain) CreateHoldingAccount(_ context.Context, _ solana.PrivateKey, _, _ solana.PublicKey) (solana.PublicKey, error) {
	return f.holding, f.holdingErr
}

func (f *fakeChain) CreateNFT(_ context.Context, _ solana.PrivateKey, meta model.NFTMetadata) (solana.PublicKey, solana.PublicKey, solana.PublicKey, error) {
	f.gotMeta = meta
	return f.mint, f.meta, f.holding, f.nftErr
}

func newTestWallet(index int) *model.Wallet {
	return model.NewWallet(index, solana.NewWallet().PrivateKey)
}

func TestDeployToken(t *testing.T) {
	chain := &fakeChain{
		mint:    solana.NewWallet().PublicKey(),
		holding: solana.NewWallet().PublicKey(),
	}
	d := NewDeployer(chain, zap.NewNop())
	w := newTestWallet(1)

	asset, err := d.DeployToken(context.Background(), w)
	require.NoError(t, err)

	assert.Equal(t, uint8(TokenDecimals), chain.gotDecimals)
	assert.Equal(t, chain.mint, asset.Mint)
	assert.Equal(t, chain.holding, asset.HoldingAccount)

	// deployed asset recorded on the wallet, keyed by mint address
	require.Contains(t, w.Tokens, chain.mint.String())
	assert.Equal(t, asset, w.Tokens[chain.mint.String()])
}

func TestDeployTokenMintFails(t *testing.T) {
	chain := &fakeChain{mintErr: errors.New("rpc down")}
	d := NewDeployer(chain, zap.NewNop())
	w := newTestWallet(1)

	_, err := d.DeployToken(context.Background(), w)
	require.Error(t, err)

	var de *model.DeployError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.KindToken, de.Kind)
	assert.Empty(t, w.Tokens)
}

func TestDeployTokenHoldingAccountFails(t *testing.T) {
	chain := &fakeChain{
		mint:       solana.NewWallet().PublicKey(),
		holdingErr: errors.New("no funds"),
	}
	d := NewDeployer(chain, zap.NewNop())
	w := newTestWallet(1)

	_, err := d.DeployToken(context.Background(), w)

	var de *model.DeployError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.KindToken, de.Kind)
	assert.Empty(t, w.Tokens)
}

func TestDeployNFT(t *testing.T) {
	chain := &fakeChain{
		mint:    solana.NewWallet().PublicKey(),
		meta:    solana.NewWallet().PublicKey(),
		holding: solana.NewWallet().PublicKey(),
	}
	d := NewDeployer(chain, zap.NewNop())
	w := newTestWallet(7)

	asset, err := d.DeployNFT(context.Background(), w)
	require.NoError(t, err)

	assert.Equal(t, chain.mint, asset.Mint)
	assert.Equal(t, chain.meta, asset.Metadata)
	assert.Equal(t, uint16(nftRoyaltyBasisPoints), asset.SellerFeeBasisPoints)
	assert.Contains(t, asset.Name, "W7")
	assert.Equal(t, "ACT7", asset.Symbol)
	assert.Equal(t, chain.gotMeta.Name, asset.Name)

	require.Contains(t, w.NFTs, chain.mint.String())
}

func TestDeployNFTFails(t *testing.T) {
	chain := &fakeChain{nftErr: errors.New("metadata program unavailable")}
	d := NewDeployer(chain, zap.NewNop())
	w := newTestWallet(2)

	_, err := d.DeployNFT(context.Background(), w)

	var de *model.DeployError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.KindNFT, de.Kind)
	assert.Empty(t, w.NFTs)
}
