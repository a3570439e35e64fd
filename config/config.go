package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const (
	DB_ENGINE_PEBBLE  = "pebble"
	DB_ENGINE_LEVELDB = "leveldb"
)

type YamlConf struct {
	Chain      string     `yaml:"chain"`
	DB         DB         `yaml:"db"`
	ShareRPC   ShareRPC   `yaml:"share_rpc"`
	Log        Log        `yaml:"log"`
	RPCService RPCService `yaml:"rpc_service"`
	Fee        Fee        `yaml:"fee"`
}

type DB struct {
	Path   string `yaml:"path"`
	Engine string `yaml:"engine"` // pebble or leveldb
}

type ShareRPC struct {
	Bitcoin Bitcoin `yaml:"bitcoin"`
}

type Bitcoin struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	UseSSL   bool   `yaml:"use_ssl"`
}

type Log struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type RPCService struct {
	Addr    string `yaml:"addr"`
	Proxy   string `yaml:"proxy"`
	LogPath string `yaml:"log_path"`
	API     API    `yaml:"api"`
}

type API struct {
	APIKeyList      map[string]*APIKey `yaml:"apikey_list"`
	NoLimitApiList  []string           `yaml:"nolimit_api_list"`
	NoLimitHostList []string           `yaml:"nolimit_host_list"`
}

type APIKey struct {
	UserName  string     `yaml:"user_name"`
	RateLimit *RateLimit `yaml:"rate_limit"`
}

type RateLimit struct {
	PerSecond int `yaml:"per_second"`
	PerDay    int `yaml:"per_day"`
	Max       int `yaml:"max"`
	Burst     int `yaml:"burst"`
}

type Fee struct {
	MaxFeeRate   float64     `yaml:"max_fee_rate"`
	CacheSeconds int         `yaml:"cache_seconds"`
	Targets      []FeeTarget `yaml:"targets"`
	// served when the node cannot estimate at all, empty disables it
	Fallback []FeePreset `yaml:"fallback"`
}

type FeeTarget struct {
	Title      string `yaml:"title"`
	Desc       string `yaml:"desc"`
	ConfTarget int    `yaml:"conf_target"`
	Mode       string `yaml:"mode"` // ECONOMICAL or CONSERVATIVE
}

type FeePreset struct {
	Title   string  `yaml:"title"`
	Desc    string  `yaml:"desc"`
	FeeRate float64 `yaml:"fee_rate"`
}

func DefaultFeeTargets() []FeeTarget {
	return []FeeTarget{
		{Title: common.FEE_TITLE_SLOW, Desc: common.FEE_DESC_SLOW, ConfTarget: 6, Mode: "ECONOMICAL"},
		{Title: common.FEE_TITLE_NORMAL, Desc: common.FEE_DESC_NORMAL, ConfTarget: 3, Mode: "ECONOMICAL"},
		{Title: common.FEE_TITLE_FAST, Desc: common.FEE_DESC_FAST, ConfTarget: 1, Mode: "CONSERVATIVE"},
	}
}

func GetBaseDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "./."
	}
	return filepath.Dir(execPath)
}

// InitConfig loads the file named by the "-env" argument, falling back to
// ./.env next to the executable.
func InitConfig(configFile string) (*YamlConf, error) {
	if configFile == "" {
		for i, item := range os.Args {
			if item == "-env" && i+1 < len(os.Args) {
				configFile = os.Args[i+1]
				break
			}
		}
		if configFile == "" {
			configFile = "./.env"
		}
	}
	if !filepath.IsAbs(configFile) {
		configFile = filepath.Join(GetBaseDir(), configFile)
	}

	fmt.Printf("config file: %s\n", configFile)

	return LoadYamlConf(configFile)
}

func LoadYamlConf(cfgPath string) (*YamlConf, error) {
	confFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open cfg: %s", cfgPath)
	}
	defer confFile.Close()

	ret := &YamlConf{}
	decoder := yaml.NewDecoder(confFile)
	err = decoder.Decode(ret)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode cfg: %s", cfgPath)
	}

	if err := ret.normalize(); err != nil {
		return nil, errors.Wrapf(err, "invalid cfg: %s", cfgPath)
	}
	return ret, nil
}

func (ret *YamlConf) normalize() error {
	if ret.Chain == "" {
		ret.Chain = common.ChainMainnet
	}
	if _, err := common.GetChainParam(ret.Chain); err != nil {
		return err
	}

	_, err := logrus.ParseLevel(ret.Log.Level)
	if err != nil {
		ret.Log.Level = "info"
	}
	ret.Log.Path = dirPath(ret.Log.Path, "log")

	ret.DB.Path = dirPath(ret.DB.Path, "db")
	switch ret.DB.Engine {
	case "":
		ret.DB.Engine = DB_ENGINE_PEBBLE
	case DB_ENGINE_PEBBLE, DB_ENGINE_LEVELDB:
	default:
		return fmt.Errorf("unknown db engine %s", ret.DB.Engine)
	}

	rpcService := &ret.RPCService
	if rpcService.Addr == "" {
		rpcService.Addr = "0.0.0.0:80"
	}
	if rpcService.Proxy == "" {
		rpcService.Proxy = "/"
	}
	if rpcService.Proxy[0] != '/' {
		rpcService.Proxy = "/" + rpcService.Proxy
	}
	rpcService.Proxy = strings.TrimRight(rpcService.Proxy, "/")
	if rpcService.LogPath == "" {
		rpcService.LogPath = "log"
	}

	fee := &ret.Fee
	if fee.MaxFeeRate <= 0 || fee.MaxFeeRate > common.MAX_FEE_RATE {
		fee.MaxFeeRate = common.MAX_FEE_RATE
	}
	if fee.CacheSeconds <= 0 {
		fee.CacheSeconds = 60
	}
	if len(fee.Targets) == 0 {
		fee.Targets = DefaultFeeTargets()
	}
	for i, t := range fee.Targets {
		if t.ConfTarget <= 0 {
			return fmt.Errorf("fee target %d has conf_target %d", i, t.ConfTarget)
		}
		if t.Mode == "" {
			fee.Targets[i].Mode = "ECONOMICAL"
		}
	}
	return nil
}

func dirPath(path, def string) string {
	if path == "" {
		path = def
	}
	path = filepath.FromSlash(path)
	if path[len(path)-1] != filepath.Separator {
		path += string(filepath.Separator)
	}
	return path
}

func NewDefaultYamlConf(chain string) (*YamlConf, error) {
	bitcoinPort := 18332
	switch chain {
	case common.ChainMainnet:
		bitcoinPort = 8332
	case common.ChainTestnet:
		bitcoinPort = 18332
	case common.ChainTestnet4:
		bitcoinPort = 28332
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedChain, chain)
	}
	ret := &YamlConf{
		Chain: chain,
		DB: DB{
			Path:   "db",
			Engine: DB_ENGINE_PEBBLE,
		},
		ShareRPC: ShareRPC{
			Bitcoin: Bitcoin{
				Host:     "host",
				Port:     bitcoinPort,
				User:     "user",
				Password: "password",
			},
		},
		Log: Log{
			Level: "error",
			Path:  "log",
		},
		RPCService: RPCService{
			Addr:  "0.0.0.0:80",
			Proxy: chain,
			API: API{
				APIKeyList:      make(map[string]*APIKey),
				NoLimitApiList:  []string{"/health"},
				NoLimitHostList: []string{},
			},
		},
		Fee: Fee{
			MaxFeeRate:   common.MAX_FEE_RATE,
			CacheSeconds: 60,
			Targets:      DefaultFeeTargets(),
		},
	}

	return ret, nil
}

func SaveYamlConf(conf *YamlConf, filePath string) error {
	data, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
