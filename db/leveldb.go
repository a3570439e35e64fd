package db

import (
	"bytes"
	"errors"

	"github.com/sat20-labs/walletkit/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type levelDB struct {
	path string
	db   *leveldb.DB
}

func NewLevelDB(path string) (KVDB, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		common.Log.Errorf("open leveldb %s failed, %v", path, err)
		return nil, err
	}
	return &levelDB{path: path, db: db}, nil
}

func (p *levelDB) Read(key []byte) ([]byte, error) {
	val, err := p.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return append([]byte{}, val...), nil
}

func (p *levelDB) Write(key, value []byte) error {
	return p.db.Put(key, value, &opt.WriteOptions{Sync: true})
}

func (p *levelDB) Delete(key []byte) error {
	return p.db.Delete(key, &opt.WriteOptions{Sync: true})
}

func (p *levelDB) Close() error {
	return p.db.Close()
}

func (p *levelDB) iter(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	var rng *util.Range
	if len(prefix) > 0 {
		rng = util.BytesPrefix(prefix)
	}
	it := p.db.NewIterator(rng, nil)
	defer it.Release()

	var ok bool
	if reverse {
		ok = it.Last()
	} else {
		ok = it.First()
	}

	for ; ok; ok = stepLevel(it, reverse) {
		k := it.Key()
		if len(prefix) > 0 && !bytes.HasPrefix(k, prefix) {
			break
		}
		if err := r(append([]byte{}, k...), append([]byte{}, it.Value()...)); err != nil {
			return err
		}
	}
	return it.Error()
}

func stepLevel(it interface {
	Next() bool
	Prev() bool
}, reverse bool) bool {
	if reverse {
		return it.Prev()
	}
	return it.Next()
}

func (p *levelDB) BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error {
	return p.iter(prefix, reverse, r)
}

type levelWriteBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (p *levelWriteBatch) Put(key, value []byte) error {
	if p.batch == nil {
		return errors.New("writebatch closed")
	}
	p.batch.Put(key, value)
	return nil
}

func (p *levelWriteBatch) Delete(key []byte) error {
	if p.batch == nil {
		return errors.New("writebatch closed")
	}
	p.batch.Delete(key)
	return nil
}

func (p *levelWriteBatch) Flush() error {
	if p.batch == nil {
		return errors.New("writebatch closed")
	}
	if err := p.db.Write(p.batch, &opt.WriteOptions{Sync: true}); err != nil {
		return err
	}
	p.batch.Reset()
	return nil
}

func (p *levelWriteBatch) Close() {
	p.batch = nil
}

func (p *levelDB) NewWriteBatch() WriteBatch {
	return &levelWriteBatch{db: p.db, batch: new(leveldb.Batch)}
}
