package extension

import (
	"github.com/sat20-labs/walletkit/common"
	rpcwire "github.com/sat20-labs/walletkit/rpcserver/wire"
)

// /health
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Chain   string `json:"chain"`
}

type HealthResp struct {
	rpcwire.BaseResp
	Data *HealthStatus `json:"data"`
}

// /default/fee-summary, rates are decimal strings in sat/vB
type FeeSummary struct {
	Title   string `json:"title"`
	Desc    string `json:"desc"`
	FeeRate string `json:"feeRate"`
}

type FeeSummaryList struct {
	List []*FeeSummary `json:"list"`
}

type FeeSummaryResp struct {
	rpcwire.BaseResp
	Data *FeeSummaryList `json:"data"`
}

// /inscription/utxo
type InscriptionUtxoResp struct {
	rpcwire.BaseResp
	Data *common.UtxoInscriptions `json:"data"`
}

// /inscription/info
type InscriptionInfoResp struct {
	rpcwire.BaseResp
	Data *common.Inscription `json:"data"`
}

// /glittr/list
type AssetBalanceList struct {
	rpcwire.ListResp
	List []*common.AssetBalance `json:"list"`
}

type AssetListResp struct {
	rpcwire.BaseResp
	Data *AssetBalanceList `json:"data"`
}

type ImportResp struct {
	rpcwire.BaseResp
	Data int `json:"data"`
}

// /tx/fee
type TxFee struct {
	VSize   int64   `json:"vsize"`
	FeeRate float64 `json:"feeRate"`
	Fee     int64   `json:"fee"`
}

type TxFeeResp struct {
	rpcwire.BaseResp
	Data *TxFee `json:"data"`
}
