package extension

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/walletkit/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFees struct {
	list []*common.FeeOption
	err  error
}

func (f *fakeFees) GetFeeSummary() ([]*common.FeeOption, error) { return f.list, f.err }
func (f *fakeFees) MaxFeeRate() float64 { return common.MAX_FEE_RATE }

type fakeStore struct {
	inscriptions map[string]*common.Inscription
	balances     map[string][]*common.AssetBalance
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inscriptions: make(map[string]*common.Inscription),
		balances:     make(map[string][]*common.AssetBalance),
	}
}

func (f *fakeStore) PutInscription(ins *common.Inscription) error {
	if ins.InscriptionId == "" {
		return errors.New("empty id")
	}
	f.inscriptions[ins.InscriptionId] = ins
	return nil
}

func (f *fakeStore) GetInscription(id string) (*common.Inscription, error) {
	ins, ok := f.inscriptions[id]
	if !ok {
		return nil, common.ErrInscriptionNotFound
	}
	return ins, nil
}

func (f *fakeStore) GetUtxoByInscriptionId(id string) (*common.UtxoInscriptions, error) {
	ins, err := f.GetInscription(id)
	if err != nil {
		return nil, err
	}
	ret := &common.UtxoInscriptions{Address: ins.Address, Satoshis: ins.OutputValue}
	for _, other := range f.inscriptions {
		if other.Output == ins.Output {
			ret.Inscriptions = append(ret.Inscriptions, other)
		}
	}
	sort.Slice(ret.Inscriptions, func(i, j int) bool { return ret.Inscriptions[i].Offset < ret.Inscriptions[j].Offset })
	return ret, nil
}

func (f *fakeStore) PutAssetBalance(address string, bal *common.AssetBalance) error {
	f.balances[address] = append(f.balances[address], bal)
	return nil
}

func (f *fakeStore) GetAssetList(address string, cursor, size int) ([]*common.AssetBalance, int, error) {
	all := f.balances[address]
	if len(all) == 0 {
		return []*common.AssetBalance{}, 0, nil
	}
	if cursor >= len(all) {
		return nil, len(all), common.ErrCursorOutOfRange
	}
	end := cursor + size
	if end > len(all) {
		end = len(all)
	}
	return all[cursor:end], len(all), nil
}

func newTestEngine(fees *fakeFees, store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService(common.ChainTestnet4, fees, store).InitRouter(r, "/testnet4")
	return r
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	r := newTestEngine(&fakeFees{}, newFakeStore())
	resp := doRequest(t, r, http.MethodGet, "/testnet4/extension/health", nil)
	assert.Equal(t, 0, resp.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(resp.Data, &status))
	assert.Equal(t, common.ChainTestnet4, status.Chain)
	assert.Equal(t, common.WALLETKIT_VERSION, status.Version)
}

func TestFeeSummary(t *testing.T) {
	fees := &fakeFees{list: []*common.FeeOption{
		{Title: "Slow", Desc: "About 1 hours", FeeRate: 5},
		{Title: "Normal", Desc: "About 30 minutes", FeeRate: 10.5},
		{Title: "Fast", Desc: "About 10 minutes", FeeRate: 20.123},
	}}
	r := newTestEngine(fees, newFakeStore())

	resp := doRequest(t, r, http.MethodGet, "/testnet4/extension/default/fee-summary", nil)
	require.Equal(t, 0, resp.Code)
	var data FeeSummaryList
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.List, 3)
	assert.Equal(t, "5.00", data.List[0].FeeRate)
	assert.Equal(t, "10.50", data.List[1].FeeRate)
	assert.Equal(t, "20.12", data.List[2].FeeRate)
	assert.Equal(t, "Normal", data.List[1].Title)

	fees.err = errors.New("node down")
	resp = doRequest(t, r, http.MethodGet, "/testnet4/extension/default/fee-summary", nil)
	assert.Equal(t, -1, resp.Code)
	assert.Equal(t, "node down", resp.Msg)
}

func TestInscriptionEndpoints(t *testing.T) {
	store := newFakeStore()
	r := newTestEngine(&fakeFees{}, store)
	txid := strings.Repeat("c", 64)

	resp := doRequest(t, r, http.MethodGet, "/testnet4/extension/inscription/utxo", nil)
	assert.Equal(t, -1, resp.Code)

	resp = doRequest(t, r, http.MethodPost, "/testnet4/extension/inscription/import", InscriptionImportReq{
		List: []*common.Inscription{
			{InscriptionId: txid + "i0", Output: txid + ":0", Offset: 10},
			{InscriptionId: txid + "i1", Output: txid + ":0", Offset: 0},
		},
	})
	require.Equal(t, 0, resp.Code)
	assert.Equal(t, "2", string(resp.Data))

	resp = doRequest(t, r, http.MethodGet, "/testnet4/extension/inscription/info?inscriptionId="+txid+"i0", nil)
	require.Equal(t, 0, resp.Code)
	var ins common.Inscription
	require.NoError(t, json.Unmarshal(resp.Data, &ins))
	assert.EqualValues(t, 10, ins.Offset)

	resp = doRequest(t, r, http.MethodGet, "/testnet4/extension/inscription/utxo?inscriptionId="+txid+"i0", nil)
	require.Equal(t, 0, resp.Code)
	var utxo common.UtxoInscriptions
	require.NoError(t, json.Unmarshal(resp.Data, &utxo))
	require.Len(t, utxo.Inscriptions, 2)
	assert.Equal(t, txid+"i1", utxo.Inscriptions[0].InscriptionId)

	resp = doRequest(t, r, http.MethodGet, "/testnet4/extension/inscription/info?inscriptionId=missing", nil)
	assert.Equal(t, -1, resp.Code)
	assert.Equal(t, common.ErrInscriptionNotFound.Error(), resp.Msg)
}

const testAddress = "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"

func TestGlittrEndpoints(t *testing.T) {
	store := newFakeStore()
	r := newTestEngine(&fakeFees{}, store)

	resp := doRequest(t, r, http.MethodGet, "/testnet4/extension/glittr/list?address=tb1qx", nil)
	require.Equal(t, 0, resp.Code)
	var list AssetBalanceList
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.EqualValues(t, 0, list.Total)
	assert.Empty(t, list.List)

	resp = doRequest(t, r, http.MethodPost, "/testnet4/extension/glittr/import", AssetImportReq{
		Address: "tb1qx",
		List:    []*common.AssetBalance{{Rune: "AAA", RuneId: "1:1", Amount: "10"}},
	})
	assert.Equal(t, -1, resp.Code)
	assert.Contains(t, resp.Msg, "invalid address")

	resp = doRequest(t, r, http.MethodPost, "/testnet4/extension/glittr/import", AssetImportReq{
		Address: testAddress,
		List: []*common.AssetBalance{
			{Rune: "AAA", RuneId: "1:1", Amount: "10"},
			{Rune: "BBB", RuneId: "1:2", Amount: "20"},
			{Rune: "CCC", RuneId: "1:3", Amount: "30"},
		},
	})
	require.Equal(t, 0, resp.Code)

	resp = doRequest(t, r, http.MethodGet, "/testnet4/extension/glittr/list?address="+testAddress+"&cursor=1&size=1", nil)
	require.Equal(t, 0, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.EqualValues(t, 3, list.Total)
	assert.EqualValues(t, 1, list.Start)
	require.Len(t, list.List, 1)
	assert.Equal(t, "1:2", list.List[0].RuneId)
	assert.Contains(t, string(resp.Data), `"runeid":"1:2"`)

	resp = doRequest(t, r, http.MethodGet, "/testnet4/extension/glittr/list?address="+testAddress+"&cursor=3", nil)
	assert.Equal(t, -1, resp.Code)

	resp = doRequest(t, r, http.MethodGet, "/testnet4/extension/glittr/list", nil)
	assert.Equal(t, -1, resp.Code)
}

func TestTxFee(t *testing.T) {
	r := newTestEngine(&fakeFees{}, newFakeStore())

	resp := doRequest(t, r, http.MethodPost, "/testnet4/extension/tx/fee", TxFeeReq{VSize: 141, FeeRate: 2.5})
	require.Equal(t, 0, resp.Code)
	var fee TxFee
	require.NoError(t, json.Unmarshal(resp.Data, &fee))
	assert.EqualValues(t, 353, fee.Fee)

	resp = doRequest(t, r, http.MethodPost, "/testnet4/extension/tx/fee", TxFeeReq{VSize: 141, FeeRate: 20000})
	assert.Equal(t, -1, resp.Code)
	assert.Contains(t, resp.Msg, common.ErrInvalidFeeRate.Error())

	resp = doRequest(t, r, http.MethodPost, "/testnet4/extension/tx/fee", TxFeeReq{VSize: 141, FeeRate: -1})
	assert.Equal(t, -1, resp.Code)

	resp = doRequest(t, r, http.MethodPost, "/testnet4/extension/tx/fee", TxFeeReq{VSize: 1e15, FeeRate: 10000})
	assert.Equal(t, -1, resp.Code)
	assert.Contains(t, resp.Msg, "exceeds")
}
