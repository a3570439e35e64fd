package bitcoin_rpc

import (
	"strings"

	"github.com/OLProtocol/go-bitcoind"
	"github.com/pkg/errors"
)

// InitBitconRpc selects a REST fee source when host names blockstream or
// mempool, otherwise a bitcoind JSON-RPC client.
func InitBitconRpc(host string, port int, user, passwd string, useSSL bool) error {
	if strings.Contains(host, "blockstream") || strings.Contains(host, "mempool") {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		ShareBitconRpc = NewBlockStreamClient(scheme, host, "", nil)
		return nil
	}

	rpc, err := bitcoind.New(
		host,
		port,
		user,
		passwd,
		useSSL,
		120,
	)
	if err != nil {
		return errors.Wrapf(err, "connect bitcoind %s:%d", host, port)
	}
	ShareBitconRpc = &BitcoindRPC{
		bitcoind: rpc,
	}
	return nil
}

type BitcoindRPC struct {
	bitcoind *bitcoind.Bitcoind
}

func (p *BitcoindRPC) GetBlockCount() (uint64, error) {
	return p.bitcoind.GetBlockCount()
}

func (p *BitcoindRPC) EstimateSmartFeeWithMode(minconf int, mode string) (*bitcoind.EstimateSmartFeeResult, error) {
	ret, err := p.bitcoind.EstimateSmartFeeWithMode(minconf, mode)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}
