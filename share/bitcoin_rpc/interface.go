package bitcoin_rpc

import "github.com/OLProtocol/go-bitcoind"

// BitcoinRPC is the part of the node the wallet backend depends on.
type BitcoinRPC interface {
	GetBlockCount() (uint64, error)
	// EstimateSmartFeeWithMode returns the estimated rate in BTC/kvB.
	EstimateSmartFeeWithMode(minconf int, mode string) (*bitcoind.EstimateSmartFeeResult, error)
}

var ShareBitconRpc BitcoinRPC
