package common

// 0.1.0  2026.09.02   fee summary, inscription utxo, glittr list
// 0.2.0  2026.10.10   api keys, compressed responses
const WALLETKIT_VERSION = "0.2.0"

// 0.1.0  2026.09.02   msgpack encoded records
const DB_VERSION = "0.1.0"
