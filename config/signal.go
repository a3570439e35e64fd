package config

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sat20-labs/walletkit/common"
)

var (
	SigInt          chan os.Signal
	sigIntFuncList  = []func(){}
	releaseFuncList = []func(){}
	releaseOnce     sync.Once
	mu              sync.Mutex
)

// InitSigInt runs the registered callbacks on the first SIGINT/SIGTERM and
// force exits on the third.
func InitSigInt() {
	count := 0
	SigInt = make(chan os.Signal, 100)
	signal.Notify(SigInt, os.Interrupt, syscall.SIGTERM)
	go func() {
		for {
			<-SigInt
			count++
			common.Log.Infof("Received SIGINT (CTRL+C), count %d, 3 times will close db and force exit", count)
			if count >= 3 {
				ReleaseRes()
				os.Exit(1)
			} else if count == 1 {
				mu.Lock()
				funcs := append([]func(){}, sigIntFuncList...)
				mu.Unlock()
				for index := range funcs {
					go funcs[index]()
				}
			}
		}
	}()
}

func RegistSigIntFunc(callback func()) {
	mu.Lock()
	defer mu.Unlock()
	sigIntFuncList = append(sigIntFuncList, callback)
}

// RegistReleaseFunc adds a resource release step; steps run in reverse order.
func RegistReleaseFunc(release func()) {
	mu.Lock()
	defer mu.Unlock()
	releaseFuncList = append(releaseFuncList, release)
}

func ReleaseRes() {
	releaseOnce.Do(func() {
		mu.Lock()
		funcs := append([]func(){}, releaseFuncList...)
		mu.Unlock()
		for i := len(funcs) - 1; i >= 0; i-- {
			funcs[i]()
		}
	})
}
