package bitcoin_rpc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/OLProtocol/go-bitcoind"
	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
)

const satPerVBToBTCPerKvB = 1.0 / common.BTC_PER_KVB_TO_SAT_PER_VB

type URL struct {
	Scheme string
	Host   string
	Path   string
}

func (u *URL) String() string {
	return (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()
}

type HttpClient interface {
	SendGetRequest(u *URL) ([]byte, error)
}

type defaultHttpClient struct {
	client *http.Client
}

func NewHttpClient(timeout time.Duration) HttpClient {
	return &defaultHttpClient{client: &http.Client{Timeout: timeout}}
}

func (c *defaultHttpClient) SendGetRequest(u *URL) ([]byte, error) {
	rsp, err := c.client.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d, %s", u.String(), rsp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

type RESTClient struct {
	Scheme string
	Host   string
	Proxy  string
	Http   HttpClient
}

func NewRESTClient(scheme, host, proxy string, http HttpClient) *RESTClient {
	if proxy == "" {
		proxy = "/api"
	}
	if scheme == "" {
		scheme = "https"
	}
	if http == nil {
		http = NewHttpClient(30 * time.Second)
	}

	return &RESTClient{
		Scheme: scheme,
		Host:   host,
		Proxy:  proxy,
		Http:   http,
	}
}

func (p *RESTClient) GetUrl(path string) *URL {
	return &URL{
		Scheme: p.Scheme,
		Host:   p.Host,
		Path:   p.Proxy + path,
	}
}

// BlockStreamClient talks to the esplora REST api served by blockstream.info
// and mempool.space.
type BlockStreamClient struct {
	*RESTClient
}

func NewBlockStreamClient(scheme, host, proxy string, http HttpClient) *BlockStreamClient {
	client := NewRESTClient(scheme, host, proxy, http)
	return &BlockStreamClient{client}
}

func (p *BlockStreamClient) GetBlockCount() (uint64, error) {
	u := p.GetUrl("/blocks/tip/height")
	rsp, err := p.Http.SendGetRequest(u)
	if err != nil {
		common.Log.Errorf("SendGetRequest %v failed. %v", u, err)
		return 0, err
	}
	height, err := strconv.ParseUint(strings.TrimSpace(string(rsp)), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid tip height %q", string(rsp))
	}
	return height, nil
}

// EstimateSmartFeeWithMode maps the esplora sat/vB estimates onto the
// bitcoind result. The mode is ignored, esplora has only one.
func (p *BlockStreamClient) EstimateSmartFeeWithMode(minconf int, mode string) (*bitcoind.EstimateSmartFeeResult, error) {
	u := p.GetUrl("/fee-estimates")
	rsp, err := p.Http.SendGetRequest(u)
	if err != nil {
		common.Log.Errorf("SendGetRequest %v failed. %v", u, err)
		return nil, err
	}

	estimates := make(map[string]float64)
	if err := json.Unmarshal(rsp, &estimates); err != nil {
		return nil, errors.Wrap(err, "decode fee estimates")
	}

	feeRate, err := pickEstimate(estimates, minconf)
	if err != nil {
		return nil, err
	}
	return &bitcoind.EstimateSmartFeeResult{
		FeeRate: feeRate * satPerVBToBTCPerKvB,
	}, nil
}

// pickEstimate returns the estimate for the largest target not above
// minconf, or the fastest one when all targets are slower.
func pickEstimate(estimates map[string]float64, minconf int) (float64, error) {
	targets := make([]int, 0, len(estimates))
	rates := make(map[int]float64, len(estimates))
	for k, v := range estimates {
		blocks, err := strconv.Atoi(k)
		if err != nil || blocks <= 0 {
			continue
		}
		targets = append(targets, blocks)
		rates[blocks] = v
	}
	if len(targets) == 0 {
		return 0, errors.New("fee estimates not found")
	}
	sort.Ints(targets)

	picked := targets[0]
	for _, blocks := range targets {
		if blocks > minconf {
			break
		}
		picked = blocks
	}
	return rates[picked], nil
}
