package common

import "github.com/pkg/errors"

var (
	ErrKeyNotFound         = errors.New("Key not found")
	ErrInscriptionNotFound = errors.New("inscription not found")
	ErrInvalidFeeRate      = errors.New("invalid fee rate")
	ErrUnsupportedChain    = errors.New("unsupported chain")
	ErrCursorOutOfRange    = errors.New("cursor out of range")
)
