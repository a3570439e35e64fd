package fee

import (
	"fmt"
	"math"
	"time"

	"github.com/avast/retry-go"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/config"
	"github.com/sat20-labs/walletkit/share/bitcoin_rpc"
	"github.com/sirupsen/logrus"
)

var log = common.GetLoggerEntry("fee")

type cachedSummary struct {
	height uint64
	at     time.Time
	list   []*common.FeeOption
}

// Summarizer turns node fee estimates into the Slow/Normal/Fast presets
// shown by the wallet. Results are cached until the tip moves or the
// cache expires.
type Summarizer struct {
	chain string
	rpc   bitcoin_rpc.BitcoinRPC
	conf  config.Fee
	cache cmap.ConcurrentMap[string, *cachedSummary]

	attempts uint
	delay    time.Duration
	now      func() time.Time
}

func NewSummarizer(chain string, rpc bitcoin_rpc.BitcoinRPC, conf *config.Fee) *Summarizer {
	return &Summarizer{
		chain:    chain,
		rpc:      rpc,
		conf:     *conf,
		cache:    cmap.New[*cachedSummary](),
		attempts: 3,
		delay:    200 * time.Millisecond,
		now:      time.Now,
	}
}

func (s *Summarizer) MaxFeeRate() float64 {
	return s.conf.MaxFeeRate
}

func (s *Summarizer) retry(fn func() error) error {
	return retry.Do(fn,
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
	)
}

func (s *Summarizer) GetFeeSummary() ([]*common.FeeOption, error) {
	cached, hasCache := s.cache.Get(s.chain)
	fresh := hasCache && s.now().Sub(cached.at) < time.Duration(s.conf.CacheSeconds)*time.Second

	var height uint64
	err := s.retry(func() error {
		var err error
		height, err = s.rpc.GetBlockCount()
		return err
	})
	if err != nil {
		log.Warnf("GetBlockCount failed, %v", err)
		if fresh {
			return copyOptions(cached.list), nil
		}
		return s.fallback(err)
	}
	if fresh && cached.height == height {
		return copyOptions(cached.list), nil
	}

	list, err := s.estimate()
	if err != nil {
		log.Warnf("estimate fee at height %d failed, %v", height, err)
		if fresh {
			return copyOptions(cached.list), nil
		}
		return s.fallback(err)
	}

	s.cache.Set(s.chain, &cachedSummary{height: height, at: s.now(), list: list})
	log.WithFields(logrus.Fields{"height": height, "chain": s.chain}).Debugf("fee summary updated")
	return copyOptions(list), nil
}

func (s *Summarizer) estimate() ([]*common.FeeOption, error) {
	list := make([]*common.FeeOption, 0, len(s.conf.Targets))
	for _, target := range s.conf.Targets {
		var rate float64
		err := s.retry(func() error {
			ret, err := s.rpc.EstimateSmartFeeWithMode(target.ConfTarget, target.Mode)
			if err != nil {
				return err
			}
			if ret == nil || ret.FeeRate <= 0 {
				return fmt.Errorf("no estimate for %d blocks", target.ConfTarget)
			}
			rate = ret.FeeRate
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "estimatesmartfee %d %s", target.ConfTarget, target.Mode)
		}
		list = append(list, &common.FeeOption{
			Title:   target.Title,
			Desc:    target.Desc,
			FeeRate: s.clamp(rate * common.BTC_PER_KVB_TO_SAT_PER_VB),
		})
	}
	makeMonotonic(list)
	return list, nil
}

func (s *Summarizer) fallback(cause error) ([]*common.FeeOption, error) {
	if len(s.conf.Fallback) == 0 {
		return nil, cause
	}
	list := make([]*common.FeeOption, 0, len(s.conf.Fallback))
	for _, p := range s.conf.Fallback {
		list = append(list, &common.FeeOption{Title: p.Title, Desc: p.Desc, FeeRate: s.clamp(p.FeeRate)})
	}
	makeMonotonic(list)
	return list, nil
}

// clamp rounds to 2 decimals and keeps the rate in [1, max].
func (s *Summarizer) clamp(rate float64) float64 {
	rate = math.Round(rate*100) / 100
	if rate < common.DEFAULT_FEE_RATE {
		return common.DEFAULT_FEE_RATE
	}
	if rate > s.conf.MaxFeeRate {
		return s.conf.MaxFeeRate
	}
	return rate
}

// presets go from slow to fast, a faster tier never costs less.
func makeMonotonic(list []*common.FeeOption) {
	for i := 1; i < len(list); i++ {
		if list[i].FeeRate < list[i-1].FeeRate {
			list[i].FeeRate = list[i-1].FeeRate
		}
	}
}

func copyOptions(list []*common.FeeOption) []*common.FeeOption {
	ret := make([]*common.FeeOption, len(list))
	for i, o := range list {
		c := *o
		ret[i] = &c
	}
	return ret
}
