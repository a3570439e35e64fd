package common

import (
	"fmt"
	"strconv"
	"strings"
)

// FeeOption is one named fee rate preset, rate in sat/vB.
type FeeOption struct {
	Title   string  `json:"title"`
	Desc    string  `json:"desc,omitempty"`
	FeeRate float64 `json:"feeRate"`
}

type Inscription struct {
	InscriptionId      string `json:"inscriptionId"`
	InscriptionNumber  int64  `json:"inscriptionNumber"`
	Address            string `json:"address"`
	OutputValue        int64  `json:"outputValue"`
	Preview            string `json:"preview"`
	Content            string `json:"content"`
	ContentLength      int64  `json:"contentLength"`
	ContentType        string `json:"contentType"`
	ContentBody        string `json:"contentBody,omitempty"`
	Timestamp          int64  `json:"timestamp"` // unix seconds, 0 while unconfirmed
	GenesisTransaction string `json:"genesisTransaction"`
	Location           string `json:"location"`
	Output             string `json:"output"` // txid:vout holding the inscription
	Offset             int64  `json:"offset"`
	UtxoHeight         int64  `json:"utxoHeight,omitempty"`
}

func (p *Inscription) IsConfirmed() bool {
	return p.Timestamp != 0
}

type UtxoInscriptions struct {
	Txid         string         `json:"txid"`
	Vout         int            `json:"vout"`
	Satoshis     int64          `json:"satoshis"`
	Address      string         `json:"address"`
	Inscriptions []*Inscription `json:"inscriptions"`
}

type AssetBalance struct {
	Amount       string `json:"amount"`
	RuneId       string `json:"runeid"`
	Rune         string `json:"rune"`
	SpacedRune   string `json:"spacedRune"`
	Symbol       string `json:"symbol"`
	Divisibility int    `json:"divisibility"`
}

// ParseUtxo splits "txid:vout".
func ParseUtxo(utxo string) (string, int, error) {
	parts := strings.Split(utxo, ":")
	if len(parts) != 2 || len(parts[0]) != 64 {
		return "", 0, fmt.Errorf("invalid utxo %s", utxo)
	}
	vout, err := strconv.Atoi(parts[1])
	if err != nil || vout < 0 {
		return "", 0, fmt.Errorf("invalid utxo %s", utxo)
	}
	return parts[0], vout, nil
}

// ParseInscriptionId splits "<txid>i<index>".
func ParseInscriptionId(id string) (string, int, error) {
	pos := strings.LastIndex(id, "i")
	if pos != 64 || len(id) < 66 {
		return "", 0, fmt.Errorf("invalid inscription id %s", id)
	}
	index, err := strconv.Atoi(id[pos+1:])
	if err != nil || index < 0 {
		return "", 0, fmt.Errorf("invalid inscription id %s", id)
	}
	return id[:pos], index, nil
}
