package asset

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/decred/dcrd/lru"
	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/db"
)

var log = common.GetLoggerEntry("asset")

// Store keeps imported inscriptions and per address asset balances.
type Store struct {
	db    db.KVDB
	mutex sync.RWMutex

	// inscription ids recently looked up and not found
	unknown lru.Cache
}

func NewStore(kv db.KVDB) *Store {
	return &Store{
		db:      kv,
		unknown: lru.NewCache(10000),
	}
}

func inscriptionKey(id string) []byte {
	return []byte(common.DB_KEY_INSCRIPTION + id)
}

func utxoPrefix(utxo string) []byte {
	return []byte(common.DB_KEY_UTXO_INSCRIPTION + utxo + "-")
}

func utxoInscriptionKey(utxo, id string) []byte {
	return append(utxoPrefix(utxo), []byte(id)...)
}

func balancePrefix(address string) []byte {
	return []byte(common.DB_KEY_ASSET_BALANCE + address + "-")
}

func balanceKey(address, name string) []byte {
	return append(balancePrefix(address), []byte(name)...)
}

// PutInscription stores the inscription and indexes it by its output.
// A changed output moves the index entry.
func (s *Store) PutInscription(ins *common.Inscription) error {
	if _, _, err := common.ParseInscriptionId(ins.InscriptionId); err != nil {
		return err
	}
	if _, _, err := common.ParseUtxo(ins.Output); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	wb := s.db.NewWriteBatch()
	defer wb.Close()

	old, err := db.GetValueFromDB2[common.Inscription](inscriptionKey(ins.InscriptionId), s.db)
	if err == nil && old.Output != ins.Output {
		if err := wb.Delete(utxoInscriptionKey(old.Output, old.InscriptionId)); err != nil {
			return err
		}
	} else if err != nil && !errors.Is(err, common.ErrKeyNotFound) {
		return err
	}

	if err := db.SetDB(inscriptionKey(ins.InscriptionId), ins, wb); err != nil {
		return err
	}
	if err := wb.Put(utxoInscriptionKey(ins.Output, ins.InscriptionId), nil); err != nil {
		return err
	}
	if err := wb.Flush(); err != nil {
		return errors.Wrapf(err, "put inscription %s", ins.InscriptionId)
	}
	s.unknown.Delete(ins.InscriptionId)
	return nil
}

func (s *Store) GetInscription(id string) (*common.Inscription, error) {
	if s.unknown.Contains(id) {
		return nil, errors.Wrap(common.ErrInscriptionNotFound, id)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.getInscription(id)
}

func (s *Store) getInscription(id string) (*common.Inscription, error) {
	ins, err := db.GetValueFromDB2[common.Inscription](inscriptionKey(id), s.db)
	if err != nil {
		if errors.Is(err, common.ErrKeyNotFound) {
			s.unknown.Add(id)
			return nil, errors.Wrap(common.ErrInscriptionNotFound, id)
		}
		log.Errorf("read inscription %s failed, %v", id, err)
		return nil, err
	}
	return ins, nil
}

// GetUtxoByInscriptionId returns the utxo holding the inscription together
// with every inscription on it, ordered by offset.
func (s *Store) GetUtxoByInscriptionId(id string) (*common.UtxoInscriptions, error) {
	if s.unknown.Contains(id) {
		return nil, errors.Wrap(common.ErrInscriptionNotFound, id)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	ins, err := s.getInscription(id)
	if err != nil {
		return nil, err
	}
	txid, vout, err := common.ParseUtxo(ins.Output)
	if err != nil {
		return nil, err
	}

	prefix := utxoPrefix(ins.Output)
	var ids []string
	err = s.db.BatchRead(prefix, false, func(k, v []byte) error {
		ids = append(ids, string(k[len(prefix):]))
		return nil
	})
	if err != nil {
		return nil, err
	}

	ret := &common.UtxoInscriptions{
		Txid:     txid,
		Vout:     vout,
		Satoshis: ins.OutputValue,
		Address:  ins.Address,
	}
	for _, other := range ids {
		o, err := s.getInscription(other)
		if err != nil {
			log.Warnf("utxo %s lists %s, %v", ins.Output, other, err)
			continue
		}
		ret.Inscriptions = append(ret.Inscriptions, o)
	}
	sort.SliceStable(ret.Inscriptions, func(i, j int) bool {
		return ret.Inscriptions[i].Offset < ret.Inscriptions[j].Offset
	})
	return ret, nil
}

func (s *Store) PutAssetBalance(address string, bal *common.AssetBalance) error {
	if address == "" || bal.Rune == "" {
		return fmt.Errorf("address and rune are required")
	}
	if strings.Contains(address, "-") {
		return fmt.Errorf("invalid address %s", address)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return db.SetValueToDB(balanceKey(address, bal.Rune), bal, s.db)
}

// GetAssetList pages through the balances of address ordered by rune name.
func (s *Store) GetAssetList(address string, cursor, size int) ([]*common.AssetBalance, int, error) {
	if cursor < 0 || size <= 0 {
		return nil, 0, fmt.Errorf("invalid cursor %d or size %d", cursor, size)
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	prefix := balancePrefix(address)
	total, err := db.CountPrefix(s.db, prefix)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []*common.AssetBalance{}, 0, nil
	}
	if cursor >= total {
		return nil, total, errors.Wrapf(common.ErrCursorOutOfRange, "cursor %d, total %d", cursor, total)
	}

	n := total - cursor
	if n > size {
		n = size
	}
	list := make([]*common.AssetBalance, 0, n)
	err = db.ReadPage(s.db, prefix, cursor, size, func(k, v []byte) error {
		var bal common.AssetBalance
		if err := db.DecodeBytes(v, &bal); err != nil {
			return errors.Wrapf(err, "decode %s", string(k))
		}
		list = append(list, &bal)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
