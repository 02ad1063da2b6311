package usecases

import (
	"context"

	"go.uber.org/zap"
	"mint-market.backend/internal/domain/entities"
	"mint-market.backend/pkg/logger"
)

// offchainDocument is the shape of the URI-linked JSON file
type offchainDocument struct {
	Name        string                    `json:"name"`
	Symbol      string                    `json:"symbol"`
	Description string                    `json:"description"`
	Image       string                    `json:"image"`
	Attributes  []entities.AssetAttribute `json:"attributes"`
}

// MetadataUsecase resolves the full metadata view of a mint: the on-chain
// Metaplex record merged with its off-chain JSON document. The off-chain
// half is best effort; a dead URI degrades the result instead of failing
// the request.
type MetadataUsecase struct {
	chain   ChainReader
	fetcher MetadataFetcher
}

// NewMetadataUsecase creates a new metadata usecase
func NewMetadataUsecase(chain ChainReader, fetcher MetadataFetcher) *MetadataUsecase {
	return &MetadataUsecase{
		chain:   chain,
		fetcher: fetcher,
	}
}

// Resolve fetches the metadata of mintAddress. On-chain failures propagate
// as errors (invalid address, no metadata account, node unreachable);
// off-chain failures only annotate the result.
func (u *MetadataUsecase) Resolve(ctx context.Context, mintAddress string) (*entities.AssetMetadata, error) {
	asset, err := u.chain.GetMetadataAccount(ctx, mintAddress)
	if err != nil {
		return nil, err
	}

	if asset.URI == "" {
		asset.OffchainError = "no off-chain uri on metadata account"
		return asset, nil
	}

	var doc offchainDocument
	if err := u.fetcher.FetchJSON(ctx, asset.URI, &doc); err != nil {
		logger.Warn(ctx, "off-chain metadata unavailable",
			zap.String("mint", mintAddress),
			zap.String("uri", asset.URI),
			zap.Error(err))
		asset.OffchainError = "off-chain document unavailable"
		return asset, nil
	}

	asset.Image = doc.Image
	asset.Description = doc.Description
	asset.Attributes = doc.Attributes
	if asset.Name == "" {
		asset.Name = doc.Name
	}
	if asset.Symbol == "" {
		asset.Symbol = doc.Symbol
	}
	return asset, nil
}
