package db

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// records are stored with msgpack, field names follow the json tags
// so the same structs serve the wire and the store.
func EncodeBytes(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeBytes(data []byte, target interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(target)
}
