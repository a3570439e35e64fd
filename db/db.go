package db

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/config"
)

var errStopIteration = errors.New("stop iteration")

func NewKVDB(engine, path string) (KVDB, error) {
	if path == "" {
		path = "./data/db"
	}
	switch engine {
	case "", config.DB_ENGINE_PEBBLE:
		return NewPebbleDB(path)
	case config.DB_ENGINE_LEVELDB:
		return NewLevelDB(path)
	default:
		return nil, fmt.Errorf("unknown db engine %s", engine)
	}
}

func SetDB(key []byte, data interface{}, wb WriteBatch) error {
	buf, err := EncodeBytes(data)
	if err != nil {
		return err
	}
	return wb.Put(key, buf)
}

func SetValueToDB(key []byte, data interface{}, db KVDB) error {
	buf, err := EncodeBytes(data)
	if err != nil {
		return err
	}
	return db.Write(key, buf)
}

func GetValueFromDB(key []byte, v interface{}, db KVDB) error {
	buf, err := db.Read(key)
	if err != nil {
		return err
	}
	return DecodeBytes(buf, v)
}

func GetValueFromDB2[T any](key []byte, db KVDB) (*T, error) {
	var ret T
	if err := GetValueFromDB(key, &ret, db); err != nil {
		return nil, err
	}
	return &ret, nil
}

// ReadPage hands fn the entries under prefix at positions
// [skip, skip+limit), in key order.
func ReadPage(db KVDB, prefix []byte, skip, limit int, fn func(key, value []byte) error) error {
	if skip < 0 || limit <= 0 {
		return fmt.Errorf("invalid page skip %d limit %d", skip, limit)
	}
	index := 0
	err := db.BatchRead(prefix, false, func(k, v []byte) error {
		if index >= skip+limit {
			return errStopIteration
		}
		index++
		if index <= skip {
			return nil
		}
		return fn(k, v)
	})
	if errors.Is(err, errStopIteration) {
		return nil
	}
	return err
}

// CountPrefix returns the number of keys stored under prefix.
func CountPrefix(db KVDB, prefix []byte) (int, error) {
	count := 0
	err := db.BatchRead(prefix, false, func(k, v []byte) error {
		count++
		return nil
	})
	if err != nil {
		common.Log.Errorf("CountPrefix %s failed, %v", string(prefix), err)
	}
	return count, err
}
