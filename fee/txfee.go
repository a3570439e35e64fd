package fee

import (
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
)

func ValidateFeeRate(rate, max float64) error {
	if math.IsNaN(rate) || rate <= 0 || rate > max {
		return errors.Wrapf(common.ErrInvalidFeeRate, "%v not in (0, %v]", rate, max)
	}
	return nil
}

// EstimateTxFee returns vsize*rate in satoshis, rounded up.
func EstimateTxFee(vsize int64, rate float64) (btcutil.Amount, error) {
	if vsize <= 0 {
		return 0, fmt.Errorf("invalid vsize %d", vsize)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, errors.Wrapf(common.ErrInvalidFeeRate, "%v", rate)
	}
	// 1e-6 absorbs float error such as 100*1.1 = 110.00000000000001
	fee := math.Ceil(float64(vsize)*rate - 1e-6)
	if fee > btcutil.MaxSatoshi {
		return 0, fmt.Errorf("fee of %d vB at %v sat/vB exceeds %d sats", vsize, rate, int64(btcutil.MaxSatoshi))
	}
	return btcutil.Amount(fee), nil
}
