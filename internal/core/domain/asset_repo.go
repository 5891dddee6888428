package domain

import "context"

type AssetRepository interface {
	AddAsset(ctx context.Context, asset Asset) error
	GetAsset(ctx context.Context, vaultID, assetID uint64) (*Asset, error)
	UpdateAsset(ctx context.Context, asset Asset) error
	ListVaultAssets(ctx context.Context, vaultID uint64) ([]Asset, error)
	Close()
}
