package entities

// TokenAccount is a parsed SPL token account as returned by the RPC node.
// Amount is in base units; NFT mints use decimals=0 so an owned NFT has
// Amount == 1.
type TokenAccount struct {
	Address string
	Mint    string
	Owner   string
	Amount  uint64
}

// AssetCreator is an on-chain creator entry of a Metaplex asset
type AssetCreator struct {
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
	Share    uint8  `json:"share"`
}

// AssetMetadata is the normalized view of an asset's on-chain Metaplex
// record merged with its off-chain JSON document. Off-chain fields (Image,
// Description, Attributes) stay empty when the URI document is unavailable.
type AssetMetadata struct {
	MintAddress          string           `json:"mintAddress"`
	Name                 string           `json:"name"`
	Symbol               string           `json:"symbol"`
	URI                  string           `json:"uri"`
	SellerFeeBasisPoints uint16           `json:"sellerFeeBasisPoints"`
	PrimarySaleHappened  bool             `json:"primarySaleHappened"`
	IsMutable            bool             `json:"isMutable"`
	Creators             []AssetCreator   `json:"creators"`
	Image                string           `json:"image,omitempty"`
	Description          string           `json:"description,omitempty"`
	Attributes           []AssetAttribute `json:"attributes,omitempty"`
	OffchainError        string           `json:"offchainError,omitempty"`
}

// AssetAttribute is a trait entry from the off-chain JSON document
type AssetAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}
