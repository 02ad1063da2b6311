package solana

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/mr-tron/base58"
	"mint-market.backend/internal/domain/entities"
	domainerrors "mint-market.backend/internal/domain/errors"
)

// Reader is the chain read capability behind ownership verification and
// metadata resolution. It owns all base58 validation and raw-error
// translation; callers only ever see the domain error kinds.
type Reader struct {
	rpc RPCClient
}

// NewReader creates a chain reader on top of an RPC client
func NewReader(rpc RPCClient) *Reader {
	return &Reader{rpc: rpc}
}

// ValidateAddress checks that s is a base58-encoded 32-byte public key.
func ValidateAddress(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return domainerrors.ErrInvalidAddress
	}
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != common.PublicKeyLength {
		return fmt.Errorf("%w: %q", domainerrors.ErrInvalidAddress, s)
	}
	return nil
}

// ValidateAddress exposes address validation on the reader so callers can
// depend on a single chain interface.
func (r *Reader) ValidateAddress(s string) error {
	return ValidateAddress(s)
}

// ListTokenAccounts lists the owner's SPL token accounts with non-garbage
// entries parsed into {mint, owner, amount}.
func (r *Reader) ListTokenAccounts(ctx context.Context, ownerAddress string) ([]entities.TokenAccount, error) {
	if err := ValidateAddress(ownerAddress); err != nil {
		return nil, err
	}

	res, err := r.rpc.GetTokenAccountsByOwner(ctx, ownerAddress)
	if err != nil {
		return nil, err
	}

	accounts := make([]entities.TokenAccount, 0, len(res.Value))
	for _, v := range res.Value {
		info := v.Account.Data.Parsed.Info
		if info.Mint == "" {
			continue
		}
		amount, err := strconv.ParseUint(info.TokenAmount.Amount, 10, 64)
		if err != nil {
			continue
		}
		accounts = append(accounts, entities.TokenAccount{
			Address: v.Pubkey,
			Mint:    info.Mint,
			Owner:   info.Owner,
			Amount:  amount,
		})
	}
	return accounts, nil
}

// ResolveAssociatedAccount derives the associated token account for
// (mint, owner) and fetches it directly. Returns nil when the ATA does not
// exist on-chain.
func (r *Reader) ResolveAssociatedAccount(ctx context.Context, mintAddress, ownerAddress string) (*entities.TokenAccount, error) {
	if err := ValidateAddress(mintAddress); err != nil {
		return nil, err
	}
	if err := ValidateAddress(ownerAddress); err != nil {
		return nil, err
	}

	owner := common.PublicKeyFromString(ownerAddress)
	mint := common.PublicKeyFromString(mintAddress)
	ata, _, err := common.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("%w: derive ata: %v", domainerrors.ErrInvalidAddress, err)
	}

	value, err := r.rpc.GetParsedAccountInfo(ctx, ata.ToBase58())
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	if value.Data.Program != "spl-token" {
		// Derived address exists but holds something else entirely.
		return nil, nil
	}

	info := value.Data.Parsed.Info
	amount, err := strconv.ParseUint(info.TokenAmount.Amount, 10, 64)
	if err != nil {
		amount = 0
	}
	return &entities.TokenAccount{
		Address: ata.ToBase58(),
		Mint:    info.Mint,
		Owner:   info.Owner,
		Amount:  amount,
	}, nil
}

// GetMetadataAccount fetches and deserializes the Metaplex metadata record
// of a mint. Returns ErrNotFound when no metadata account exists.
func (r *Reader) GetMetadataAccount(ctx context.Context, mintAddress string) (*entities.AssetMetadata, error) {
	if err := ValidateAddress(mintAddress); err != nil {
		return nil, err
	}

	mint := common.PublicKeyFromString(mintAddress)
	metadataPubkey, err := token_metadata.GetTokenMetaPubkey(mint)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata pda: %v", domainerrors.ErrInvalidAddress, err)
	}

	data, err := r.rpc.GetAccountData(ctx, metadataPubkey.ToBase58())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: no metadata account for mint %s", domainerrors.ErrNotFound, mintAddress)
	}

	metadata, err := token_metadata.MetadataDeserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize metadata for mint %s: %w", mintAddress, err)
	}

	asset := &entities.AssetMetadata{
		MintAddress:          mintAddress,
		Name:                 trimPadding(metadata.Data.Name),
		Symbol:               trimPadding(metadata.Data.Symbol),
		URI:                  trimPadding(metadata.Data.Uri),
		SellerFeeBasisPoints: metadata.Data.SellerFeeBasisPoints,
		PrimarySaleHappened:  metadata.PrimarySaleHappened,
		IsMutable:            metadata.IsMutable,
	}
	if metadata.Data.Creators != nil {
		for _, c := range *metadata.Data.Creators {
			asset.Creators = append(asset.Creators, entities.AssetCreator{
				Address:  c.Address.ToBase58(),
				Verified: c.Verified,
				Share:    c.Share,
			})
		}
	}
	return asset, nil
}

// trimPadding strips the trailing NUL padding of fixed-size borsh strings.
func trimPadding(s string) string {
	return strings.TrimRight(s, "\x00")
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
