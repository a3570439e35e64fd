package wallet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL+"/testnet4/", "secret", 5*time.Second)
	c.delay = time.Millisecond
	return c
}

func TestClient_GetFeeSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/testnet4/extension/default/fee-summary", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"code":0,"msg":"ok","data":{"list":[
			{"title":"Slow","desc":"About 1 hours","feeRate":"5.00"},
			{"title":"Normal","desc":"About 30 minutes","feeRate":"10.50"},
			{"title":"Fast","desc":"About 10 minutes","feeRate":"20"}]}}`))
	})

	summary, err := c.GetFeeSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.List, 3)
	assert.Equal(t, 10.5, summary.List[1].FeeRate)
	assert.Equal(t, "About 10 minutes", summary.List[2].Desc)
}

func TestClient_ErrorCode(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"code":-1,"msg":"inscription not found"}`))
	})

	_, err := c.GetUtxoByInscriptionId(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, "inscription not found", err.Error())
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClient_RetryTransient(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		assert.Equal(t, "tb1qx", r.URL.Query().Get("address"))
		assert.Equal(t, "100", r.URL.Query().Get("cursor"))
		assert.Equal(t, "100", r.URL.Query().Get("size"))
		w.Write([]byte(`{"code":0,"msg":"ok","data":{"start":100,"total":101,"list":[{"runeid":"1:1","rune":"AAA","amount":"5"}]}}`))
	})

	list, err := c.GetGlittrAssetList(context.Background(), "tb1qx", 100, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.Equal(t, 101, list.Total)
	require.Len(t, list.List, 1)
	assert.Equal(t, "1:1", list.List[0].RuneId)
}

func TestClient_GiveUp(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.GetFeeSummary(context.Background())
	assert.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClient_Unauthorized(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid API Key"}`))
	})

	_, err := c.GetFeeSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClient_EmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"msg":"ok","data":{"start":0,"total":0,"list":null}}`))
	})

	list, err := c.GetGlittrAssetList(context.Background(), "tb1qx", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.NotNil(t, list.List)
}
