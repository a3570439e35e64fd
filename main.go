package main

import (
	"path/filepath"

	"github.com/sat20-labs/walletkit/asset"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/config"
	"github.com/sat20-labs/walletkit/db"
	"github.com/sat20-labs/walletkit/fee"
	"github.com/sat20-labs/walletkit/rpcserver"
	"github.com/sat20-labs/walletkit/share/bitcoin_rpc"
)

func init() {
	config.InitSigInt()
}

func main() {
	yamlcfg, err := config.InitConfig("")
	if err != nil {
		common.Log.Fatal(err)
	}
	if err := config.InitLog(yamlcfg); err != nil {
		common.Log.Fatal(err)
	}

	common.Log.Infof("Starting walletkit %s, chain %s", common.WALLETKIT_VERSION, yamlcfg.Chain)
	defer func() {
		config.ReleaseRes()
		common.Log.Info("shut down")
	}()

	if err := InitRpc(yamlcfg); err != nil {
		common.Log.Error(err)
		return
	}

	kvdb, err := db.NewKVDB(yamlcfg.DB.Engine, filepath.Join(yamlcfg.DB.Path, yamlcfg.Chain))
	if err != nil {
		common.Log.Error(err)
		return
	}
	config.RegistReleaseFunc(func() {
		if err := kvdb.Close(); err != nil {
			common.Log.Errorf("close db failed, %v", err)
		}
	})

	if err := InitRpcService(yamlcfg, kvdb); err != nil {
		common.Log.Error(err)
		return
	}

	stopChan := make(chan bool)
	config.RegistSigIntFunc(func() {
		common.Log.Info("handle SIGINT for shutting down")
		stopChan <- true
	})
	<-stopChan

	common.Log.Info("prepare to release resource...")
}

func InitRpcService(conf *config.YamlConf, kvdb db.KVDB) error {
	summarizer := fee.NewSummarizer(conf.Chain, bitcoin_rpc.ShareBitconRpc, &conf.Fee)
	store := asset.NewStore(kvdb)

	rpc := rpcserver.NewRpc(conf.Chain, summarizer, store)
	if err := rpc.Start(&conf.RPCService); err != nil {
		return err
	}
	common.Log.Info("rpc started")
	return nil
}

func InitRpc(conf *config.YamlConf) error {
	bitcoin := conf.ShareRPC.Bitcoin
	return bitcoin_rpc.InitBitconRpc(
		bitcoin.Host,
		bitcoin.Port,
		bitcoin.User,
		bitcoin.Password,
		bitcoin.UseSSL,
	)
}
