package extension

import "github.com/sat20-labs/walletkit/common"

// /inscription/import
type InscriptionImportReq struct {
	List []*common.Inscription `json:"list" binding:"required"`
}

// /glittr/import
type AssetImportReq struct {
	Address string                 `json:"address" binding:"required"`
	List    []*common.AssetBalance `json:"list" binding:"required"`
}

// /tx/fee
type TxFeeReq struct {
	VSize   int64   `json:"vsize" binding:"required"`
	FeeRate float64 `json:"feeRate" binding:"required"`
}
