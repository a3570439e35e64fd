package asset

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	txA = strings.Repeat("a", 64)
	txB = strings.Repeat("b", 64)
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := db.NewKVDB("pebble", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return NewStore(kv)
}

func inscription(txid string, index int, output string, offset int64) *common.Inscription {
	return &common.Inscription{
		InscriptionId: fmt.Sprintf("%si%d", txid, index),
		Address:       "bc1qtest",
		OutputValue:   546,
		Output:        output,
		Offset:        offset,
		Timestamp:     1700000000,
	}
}

func TestStore_Inscription(t *testing.T) {
	s := newTestStore(t)
	id := txA + "i0"

	_, err := s.GetInscription(id)
	assert.ErrorIs(t, err, common.ErrInscriptionNotFound)
	assert.True(t, s.unknown.Contains(id))

	ins := inscription(txA, 0, txA+":0", 0)
	require.NoError(t, s.PutInscription(ins))
	assert.False(t, s.unknown.Contains(id))

	got, err := s.GetInscription(id)
	require.NoError(t, err)
	assert.Equal(t, ins, got)

	assert.Error(t, s.PutInscription(&common.Inscription{InscriptionId: "bad", Output: txA + ":0"}))
	assert.Error(t, s.PutInscription(&common.Inscription{InscriptionId: id, Output: "bad"}))
}

func TestStore_GetUtxoByInscriptionId(t *testing.T) {
	s := newTestStore(t)
	utxo := txA + ":1"
	require.NoError(t, s.PutInscription(inscription(txA, 0, utxo, 330)))
	require.NoError(t, s.PutInscription(inscription(txA, 1, utxo, 0)))
	require.NoError(t, s.PutInscription(inscription(txB, 0, txB+":0", 0)))

	ret, err := s.GetUtxoByInscriptionId(txA + "i0")
	require.NoError(t, err)
	assert.Equal(t, txA, ret.Txid)
	assert.Equal(t, 1, ret.Vout)
	assert.EqualValues(t, 546, ret.Satoshis)
	require.Len(t, ret.Inscriptions, 2)
	assert.Equal(t, txA+"i1", ret.Inscriptions[0].InscriptionId)
	assert.Equal(t, txA+"i0", ret.Inscriptions[1].InscriptionId)

	// moving an inscription to another output drops it from the old one
	require.NoError(t, s.PutInscription(inscription(txA, 1, txB+":0", 0)))
	ret, err = s.GetUtxoByInscriptionId(txA + "i0")
	require.NoError(t, err)
	assert.Len(t, ret.Inscriptions, 1)

	ret, err = s.GetUtxoByInscriptionId(txB + "i0")
	require.NoError(t, err)
	assert.Len(t, ret.Inscriptions, 2)

	_, err = s.GetUtxoByInscriptionId(txB + "i9")
	assert.ErrorIs(t, err, common.ErrInscriptionNotFound)
}

func TestStore_GetAssetList(t *testing.T) {
	s := newTestStore(t)

	list, total, err := s.GetAssetList("bc1qtest", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, list)

	for _, name := range []string{"CCC", "AAA", "BBB"} {
		require.NoError(t, s.PutAssetBalance("bc1qtest", &common.AssetBalance{Rune: name, Amount: "1"}))
	}
	require.NoError(t, s.PutAssetBalance("bc1qother", &common.AssetBalance{Rune: "ZZZ", Amount: "1"}))
	require.NoError(t, s.PutAssetBalance("bc1qtest", &common.AssetBalance{Rune: "AAA", Amount: "5"}))

	list, total, err = s.GetAssetList("bc1qtest", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "AAA", list[0].Rune)
	assert.Equal(t, "5", list[0].Amount)
	assert.Equal(t, "BBB", list[1].Rune)

	list, _, err = s.GetAssetList("bc1qtest", 2, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CCC", list[0].Rune)

	_, _, err = s.GetAssetList("bc1qtest", 3, 2)
	assert.ErrorIs(t, err, common.ErrCursorOutOfRange)
	_, _, err = s.GetAssetList("bc1qtest", -1, 2)
	assert.Error(t, err)

	assert.Error(t, s.PutAssetBalance("", &common.AssetBalance{Rune: "AAA"}))
	assert.Error(t, s.PutAssetBalance("bc1qtest", &common.AssetBalance{}))
}
