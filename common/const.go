package common

const (
	ChainTestnet  = "testnet"
	ChainTestnet4 = "testnet4"
	ChainMainnet  = "mainnet"
)

const (
	// upper bound of any fee rate the wallet emits or the server accepts, sat/vB
	MAX_FEE_RATE = float64(10000)
	// used when nothing better is known, sat/vB
	DEFAULT_FEE_RATE = float64(1)

	CUSTOM_FEE_TITLE = "Custom"
	FEE_RATE_UNIT    = "sat/vB"
)

const (
	FEE_TITLE_SLOW   = "Slow"
	FEE_TITLE_NORMAL = "Normal"
	FEE_TITLE_FAST   = "Fast"

	FEE_DESC_SLOW   = "About 1 hours"
	FEE_DESC_NORMAL = "About 30 minutes"
	FEE_DESC_FAST   = "About 10 minutes"
)

const (
	DB_KEY_INSCRIPTION      = "i-"  // i-inscriptionId -> Inscription
	DB_KEY_UTXO_INSCRIPTION = "u-"  // u-utxo-inscriptionId -> nil
	DB_KEY_ASSET_BALANCE    = "ab-" // ab-address-ticker -> AssetBalance
)

// 1 BTC/kvB = 100000 sat/vB
const BTC_PER_KVB_TO_SAT_PER_VB = 100000
