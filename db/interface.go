package db

import "github.com/sat20-labs/walletkit/common"

var ErrKeyNotFound = common.ErrKeyNotFound

type WriteBatch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Flush() error
	Close()
}

// 每个调用都是完整的transaction
type KVDB interface {
	Read(key []byte) ([]byte, error)
	Write(key, value []byte) error
	Delete(key []byte) error
	Close() error

	NewWriteBatch() WriteBatch

	// 遍历读，r 返回错误时停止
	BatchRead(prefix []byte, reverse bool, r func(k, v []byte) error) error
}
