package wallet

import (
	"context"

	"github.com/sat20-labs/walletkit/common"
)

type FeeSummary struct {
	List []*common.FeeOption
}

type AssetList struct {
	Start int64
	Total int
	List  []*common.AssetBalance
}

// Provider is the wallet backend as seen by the screens.
type Provider interface {
	GetFeeSummary(ctx context.Context) (*FeeSummary, error)
	GetUtxoByInscriptionId(ctx context.Context, inscriptionId string) (*common.UtxoInscriptions, error)
	GetGlittrAssetList(ctx context.Context, address string, cursor, size int) (*AssetList, error)
}
