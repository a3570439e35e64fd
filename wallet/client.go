package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
)

var log = common.GetLoggerEntry("wallet")

// permanentError is not retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

type baseResp struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type feeSummaryData struct {
	List []struct {
		Title   string `json:"title"`
		Desc    string `json:"desc"`
		FeeRate string `json:"feeRate"`
	} `json:"list"`
}

type assetListData struct {
	Start int64                  `json:"start"`
	Total int                    `json:"total"`
	List  []*common.AssetBalance `json:"list"`
}

// Client talks to the extension api of a walletkit server.
type Client struct {
	baseUrl string
	apiKey  string
	http    *http.Client

	attempts uint
	delay    time.Duration
}

// NewClient takes the server url including the proxy path,
// e.g. http://127.0.0.1:8009/testnet4
func NewClient(baseUrl, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseUrl:  strings.TrimSuffix(baseUrl, "/") + "/extension",
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		attempts: 3,
		delay:    300 * time.Millisecond,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, data interface{}) error {
	u := c.baseUrl + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	err := retry.Do(func() error {
		return c.getOnce(ctx, u, data)
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var perm *permanentError
			return !errors.As(err, &perm)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Debugf("GET %s attempt %d failed, %v", path, n+1, err)
		}),
	)
	var perm *permanentError
	if errors.As(err, &perm) {
		return perm.err
	}
	return err
}

func (c *Client) getOnce(ctx context.Context, u string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &permanentError{err}
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}
	rsp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return err
	}
	if rsp.StatusCode >= http.StatusInternalServerError || rsp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("status %d", rsp.StatusCode)
	}
	if rsp.StatusCode != http.StatusOK {
		return &permanentError{fmt.Errorf("status %d, %s", rsp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var resp baseResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return &permanentError{errors.Wrap(err, "decode response")}
	}
	if resp.Code != 0 {
		return &permanentError{errors.New(resp.Msg)}
	}
	if data == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, data); err != nil {
		return &permanentError{errors.Wrap(err, "decode data")}
	}
	return nil
}

func (c *Client) GetFeeSummary(ctx context.Context) (*FeeSummary, error) {
	var data feeSummaryData
	if err := c.get(ctx, "/default/fee-summary", nil, &data); err != nil {
		return nil, err
	}
	ret := &FeeSummary{}
	for _, item := range data.List {
		rate, err := strconv.ParseFloat(item.FeeRate, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "fee rate of %s", item.Title)
		}
		ret.List = append(ret.List, &common.FeeOption{Title: item.Title, Desc: item.Desc, FeeRate: rate})
	}
	return ret, nil
}

func (c *Client) GetUtxoByInscriptionId(ctx context.Context, inscriptionId string) (*common.UtxoInscriptions, error) {
	var data common.UtxoInscriptions
	query := url.Values{"inscriptionId": []string{inscriptionId}}
	if err := c.get(ctx, "/inscription/utxo", query, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) GetGlittrAssetList(ctx context.Context, address string, cursor, size int) (*AssetList, error) {
	var data assetListData
	query := url.Values{
		"address": []string{address},
		"cursor":  []string{strconv.Itoa(cursor)},
		"size":    []string{strconv.Itoa(size)},
	}
	if err := c.get(ctx, "/glittr/list", query, &data); err != nil {
		return nil, err
	}
	if data.List == nil {
		data.List = []*common.AssetBalance{}
	}
	return &AssetList{Start: data.Start, Total: data.Total, List: data.List}, nil
}
