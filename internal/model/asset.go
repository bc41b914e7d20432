package model

import (
	"github.com/gagliardetto/solana-go"
)

// AssetKind distinguishes fungible tokens from NFTs in records and menus.
type AssetKind string

const (
	KindToken AssetKind = "Token"
	KindNFT   AssetKind = "NFT"
)

// TokenAsset is a deployed fungible asset: the mint plus the owner's
// associated holding account for it.
type TokenAsset struct {
	Mint           solana.PublicKey
	HoldingAccount solana.PublicKey
}

// NFTAsset is a deployed NFT. Name/Symbol/SellerFeeBasisPoints mirror the
// on-chain metadata account so updates can rewrite the full data struct.
type NFTAsset struct {
	Mint           solana.PublicKey
	Metadata       solana.PublicKey
	HoldingAccount solana.PublicKey

	Name                 string
	Symbol               string
	SellerFeeBasisPoints uint16
}

// NFTMetadata carries the synthetic metadata for a new NFT issue.
// Collection, when set, links the new mint to an existing one (unverified).
type NFTMetadata struct {
	Name                 string
	Symbol               string
	URI                  string
	SellerFeeBasisPoints uint16
	Collection           *solana.PublicKey
}
