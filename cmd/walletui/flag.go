package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/config"
)

type params struct {
	server        string
	apiKey        string
	chain         string
	address       string
	inscriptionId string
	readOnly      bool
	timeout       time.Duration
}

func parseCmdParams() *params {
	ret := &params{}
	init := flag.String("init", "", "generate server config file in current dir")
	flag.StringVar(&ret.server, "server", "http://127.0.0.1", "walletkit server url, including the proxy path")
	flag.StringVar(&ret.apiKey, "apikey", "", "api key sent as Authorization header")
	flag.StringVar(&ret.chain, "chain", common.ChainMainnet, "mainnet, testnet or testnet4")
	flag.StringVar(&ret.address, "address", "", "address of the current account")
	flag.StringVar(&ret.inscriptionId, "inscription", "", "inscription shown in the detail view")
	flag.BoolVar(&ret.readOnly, "readonly", false, "fee bar without custom input")
	flag.DurationVar(&ret.timeout, "timeout", 10*time.Second, "request timeout")
	help := flag.Bool("help", false, "show help.")
	flag.Parse()

	if *help {
		fmt.Println("walletui help:")
		fmt.Println("Usage: 'walletui -server http://127.0.0.1/mainnet -address bc1q...'")
		fmt.Println("Usage: 'walletui -init testnet4'")
		fmt.Println("Keys: tab switch view, left/right select, up/down move, enter open, q quit")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *init != "" {
		if err := generateDefaultCfg(*init); err != nil {
			common.Log.Fatal(err)
		}
		os.Exit(0)
	}

	if _, err := common.GetChainParam(ret.chain); err != nil {
		common.Log.Fatal(err)
	}
	return ret
}

func generateDefaultCfg(chain string) error {
	cfg, err := config.NewDefaultYamlConf(chain)
	if err != nil {
		return err
	}
	cfgPath, err := os.Getwd()
	if err != nil {
		return err
	}
	return config.SaveYamlConf(cfg, filepath.Join(cfgPath, "default.yaml"))
}
