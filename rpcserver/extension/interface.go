package extension

import "github.com/sat20-labs/walletkit/common"

type FeeSource interface {
	GetFeeSummary() ([]*common.FeeOption, error)
	MaxFeeRate() float64
}

type AssetStore interface {
	PutInscription(ins *common.Inscription) error
	GetInscription(id string) (*common.Inscription, error)
	GetUtxoByInscriptionId(id string) (*common.UtxoInscriptions, error)
	PutAssetBalance(address string, bal *common.AssetBalance) error
	GetAssetList(address string, cursor, size int) ([]*common.AssetBalance, int, error)
}
