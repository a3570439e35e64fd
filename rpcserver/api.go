package rpcserver

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/config"
)

type RateLimit struct {
	limit *limiter.Limiter

	mutex    sync.Mutex
	day      string
	reqCount int
}

// countToday returns the number of requests seen on the current day,
// including this one.
func (p *RateLimit) countToday(now time.Time) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	day := now.Format("2006-01-02")
	if day != p.day {
		p.day = day
		p.reqCount = 0
	}
	p.reqCount++
	return p.reqCount
}

// InitApiConf installs the api key table, nil or an empty key list
// disables authorization.
func (s *Rpc) InitApiConf(conf *config.API) {
	s.apiConfMutex.Lock()
	defer s.apiConfMutex.Unlock()
	s.api = conf
	s.initApiConf = conf != nil && len(conf.APIKeyList) > 0
	s.apiLimitMap = &sync.Map{}
}

func localIpList() ([]net.IP, error) {
	ret := make([]net.IP, 0)
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok {
			ret = append(ret, ipNet.IP)
		}
	}
	return ret, nil
}

// isLocalPeer checks the address of the connection, never the Host
// header, which the client controls.
func isLocalPeer(remoteIp string, localIps []net.IP) bool {
	ip := net.ParseIP(remoteIp)
	if ip == nil {
		return false
	}
	if ip.IsLoopback() {
		return true
	}
	for _, local := range localIps {
		if local.Equal(ip) {
			return true
		}
	}
	return false
}

func (s *Rpc) applyApiConf(r *gin.Engine, basePath string) error {
	localIps, err := localIpList()
	if err != nil {
		return err
	}

	r.Use(func(c *gin.Context) {
		s.apiConfMutex.RLock()
		api, enabled, limits := s.api, s.initApiConf, s.apiLimitMap
		s.apiConfMutex.RUnlock()
		if !enabled || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if isLocalPeer(c.RemoteIP(), localIps) {
			c.Next()
			return
		}

		for _, apiUrl := range api.NoLimitApiList {
			if basePath+apiUrl == c.Request.URL.Path {
				c.Next()
				return
			}
		}

		clientIp := c.ClientIP()
		common.Log.Debugf("authorization client Ip: %s", clientIp)
		for _, h := range api.NoLimitHostList {
			if clientIp == h {
				c.Next()
				return
			}
		}

		authorization := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		apiKey := api.APIKeyList[authorization]
		if apiKey == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key"})
			c.Abort()
			return
		}
		if apiKey.RateLimit == nil || apiKey.RateLimit.PerSecond == 0 || apiKey.RateLimit.PerDay == 0 {
			c.Next()
			return
		}

		var rateLimit *RateLimit
		v, ok := limits.Load(authorization)
		if !ok {
			lmt := tollbooth.NewLimiter(float64(apiKey.RateLimit.PerSecond), &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
			if apiKey.RateLimit.Max > 0 {
				lmt.SetMax(float64(apiKey.RateLimit.Max))
			}
			if apiKey.RateLimit.Burst > 0 {
				lmt.SetBurst(apiKey.RateLimit.Burst)
			}
			lmt.SetTokenBucketExpirationTTL(time.Minute)
			v, _ = limits.LoadOrStore(authorization, &RateLimit{limit: lmt})
		}
		rateLimit = v.(*RateLimit)

		if rateLimit.countToday(time.Now()) > apiKey.RateLimit.PerDay {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		httpError := tollbooth.LimitByRequest(rateLimit.limit, c.Writer, c.Request)
		if httpError != nil {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	})

	return nil
}
