package db

import (
	"bytes"
	"errors"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/sat20-labs/walletkit/common"
)

type pebbleDB struct {
	path string
	db   *pebble.DB
}

// the wallet backend only holds imported inscriptions and balances,
// so a small cache and memtable are enough.
func serveOptions() *pebble.Options {
	return &pebble.Options{
		Cache:                       pebble.NewCache(64 << 20),
		MaxOpenFiles:                1000,
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		MaxConcurrentCompactions:    func() int { return 1 },
		Levels: func() []pebble.LevelOptions {
			lvls := make([]pebble.LevelOptions, 7)
			for i := range lvls {
				lvls[i].TargetFileSize = 8 << 20
				lvls[i].BlockSize = 8 << 10
				lvls[i].FilterPolicy = bloom.FilterPolicy(10)
				lvls[i].FilterType = pebble.TableFilter
			}
			return lvls
		}(),
	}
}

func NewPebbleDB(path string) (KVDB, error) {
	db, err := pebble.Open(path, serveOptions())
	if err != nil {
		common.Log.Errorf("open pebble db %s failed, %v", path, err)
		return nil, err
	}
	return &pebbleDB{path: path, db: db}, nil
}

func (p *pebbleDB) Read(key []byte) ([]byte, error) {
	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return append([]byte{}, val...), nil
}

func (p *pebbleDB) Write(key, value []byte) error {
	return p.db.Set(key, value, pebble.Sync)
}

func (p *pebbleDB) Delete(key []byte) error {
	return p.db.Delete(key, pebble.Sync)
}

func (p *pebbleDB) Close() error {
	return p.db.Close()
}

// nextPrefix 返回字典序上紧邻 prefix 的下界，可作为开区间 UpperBound。
// prefix 全为 0xFF 时返回 nil，需要额外做 HasPrefix 检查。
func nextPrefix(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	out := append([]byte{}, prefix...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != 0xFF {
			out[i]++
			return out[:i+1]
		}
	}
	return nil
}

func (p *pebbleDB) iter(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	var lower, upper []byte
	if len(prefix) > 0 {
		lower = prefix
		upper = nextPrefix(prefix)
	}

	it, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upper,
	})
	if err != nil {
		return err
	}
	defer it.Close()

	var ok bool
	if reverse {
		ok = it.Last()
	} else {
		ok = it.First()
	}

	for ; ok; ok = step(it, reverse) {
		k := it.Key()
		if len(prefix) > 0 && upper == nil && !bytes.HasPrefix(k, prefix) {
			if reverse {
				continue
			}
			break
		}
		if err := r(append([]byte{}, k...), append([]byte{}, it.Value()...)); err != nil {
			return err
		}
	}
	return it.Error()
}

func step(it *pebble.Iterator, reverse bool) bool {
	if reverse {
		return it.Prev()
	}
	return it.Next()
}

func (p *pebbleDB) BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	return p.iter(prefix, reverse, r)
}

type pebbleWriteBatch struct {
	db    *pebble.DB
	batch *pebble.Batch
}

func (p *pebbleWriteBatch) Put(key, value []byte) error {
	if p.batch == nil {
		return errors.New("writebatch closed")
	}
	return p.batch.Set(key, value, nil)
}

func (p *pebbleWriteBatch) Delete(key []byte) error {
	if p.batch == nil {
		return errors.New("writebatch closed")
	}
	return p.batch.Delete(key, nil)
}

func (p *pebbleWriteBatch) Flush() error {
	if p.batch == nil {
		return errors.New("writebatch closed")
	}
	if err := p.batch.Commit(pebble.Sync); err != nil {
		return err
	}
	p.batch.Reset()
	return nil
}

func (p *pebbleWriteBatch) Close() {
	if p.batch != nil {
		p.batch.Close()
		p.batch = nil
	}
}

func (p *pebbleDB) NewWriteBatch() WriteBatch {
	return &pebbleWriteBatch{db: p.db, batch: p.db.NewBatch()}
}
