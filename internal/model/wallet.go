package model

import (
	"github.com/gagliardetto/solana-go"
)

// Wallet is one loaded identity plus everything it has deployed this run.
// Asset maps are keyed by mint address string so repeated deploys of the
// same mint cannot produce duplicate records.
type Wallet struct {
	Index      int // 1-based, file order
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey

	Tokens map[string]*TokenAsset
	NFTs   map[string]*NFTAsset
}

// NewWallet creates a wallet from a decoded secret key.
func NewWallet(index int, key solana.PrivateKey) *Wallet {
	return &Wallet{
		Index:      index,
		PrivateKey: key,
		PublicKey:  key.PublicKey(),
		Tokens:     make(map[string]*TokenAsset),
		NFTs:       make(map[string]*NFTAsset),
	}
}

// AddToken records a deployed fungible asset.
func (w *Wallet) AddToken(asset *TokenAsset) {
	w.Tokens[asset.Mint.String()] = asset
}

// AddNFT records a deployed NFT.
func (w *Wallet) AddNFT(asset *NFTAsset) {
	w.NFTs[asset.Mint.String()] = asset
}
