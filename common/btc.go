package common

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

func GetChainParam(chain string) (*chaincfg.Params, error) {
	switch chain {
	case ChainTestnet:
		return &chaincfg.TestNet3Params, nil
	case ChainTestnet4:
		return &chaincfg.TestNet4Params, nil
	case ChainMainnet:
		return &chaincfg.MainNetParams, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
}

func IsValidAddr(addr string, chain string) (bool, error) {
	chainParams, err := GetChainParam(chain)
	if err != nil {
		return false, nil
	}
	_, err = btcutil.DecodeAddress(addr, chainParams)
	if err != nil {
		return false, err
	}
	return true, nil
}

// TxExplorerUrl returns the mempool.space page of a transaction.
func TxExplorerUrl(chain, txid string) string {
	switch chain {
	case ChainTestnet:
		return "https://mempool.space/testnet/tx/" + txid
	case ChainTestnet4:
		return "https://mempool.space/testnet4/tx/" + txid
	}
	return "https://mempool.space/tx/" + txid
}
