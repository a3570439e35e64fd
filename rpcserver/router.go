package rpcserver

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/config"
	"github.com/sat20-labs/walletkit/rpcserver/extension"
)

const (
	STRICT_TRANSPORT_SECURITY   = "strict-transport-security"
	CONTENT_SECURITY_POLICY     = "content-security-policy"
	VARY                        = "vary"
	ACCESS_CONTROL_ALLOW_ORIGIN = "access-control-allow-origin"
	CONTENT_ENCODING            = "content-encoding"
	ACCEPT_ENCODING             = "accept-encoding"
	CONTENT_LENGTH              = "content-length"
)

type Rpc struct {
	extensionService *extension.Service

	apiConfMutex sync.RWMutex
	api          *config.API
	initApiConf  bool
	apiLimitMap  *sync.Map
}

func NewRpc(chain string, fees extension.FeeSource, store extension.AssetStore) *Rpc {
	return &Rpc{
		extensionService: extension.NewService(chain, fees, store),
	}
}

// NewRouter builds the gin engine with all middleware and routes.
func (s *Rpc) NewRouter(rpcProxy string, apiConf *config.API) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.SetLogger(
		logger.WithWriter(gin.DefaultWriter),
		logger.WithLogger(logger.Fn(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			if c.Request.Header["Authorization"] == nil {
				return l
			}
			return l.With().
				Str("Authorization", maskKey(c.Request.Header["Authorization"][0])).
				Logger()
		})),
	))

	corsConf := cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	corsConf.OptionsResponseStatusCode = 200
	r.Use(cors.New(corsConf))

	s.InitApiConf(apiConf)
	if err := s.applyApiConf(r, rpcProxy); err != nil {
		return nil, err
	}

	// common header
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set(VARY, "Origin")
		c.Writer.Header().Add(VARY, "Access-Control-Request-Method")
		c.Writer.Header().Add(VARY, "Access-Control-Request-Headers")
		c.Writer.Header().Set(CONTENT_SECURITY_POLICY, "default-src 'self'")
		c.Writer.Header().Set(STRICT_TRANSPORT_SECURITY, "max-age=31536000; includeSubDomains; preload")
		c.Writer.Header().Set(ACCESS_CONTROL_ALLOW_ORIGIN, "*")
		c.Next()
	})

	r.Use(CompressionMiddleware())

	s.extensionService.InitRouter(r, rpcProxy)
	return r, nil
}

func (s *Rpc) Start(conf *config.RPCService) error {
	gin.SetMode(gin.ReleaseMode)
	writers := []io.Writer{os.Stdout}
	if conf.LogPath != "" {
		fileWriter, err := config.NewRotateWriter(conf.LogPath, config.ExecutableName()+".rpc", 7*24*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to create rpc log writer, error %s", err)
		}
		writers = append(writers, fileWriter)
	}
	gin.DefaultWriter = io.MultiWriter(writers...)

	r, err := s.NewRouter(conf.Proxy, &conf.API)
	if err != nil {
		return err
	}

	rpcUrl := conf.Addr
	parts := strings.Split(rpcUrl, ":")
	var port string
	if len(parts) < 2 {
		rpcUrl += ":80"
		port = "80"
	} else {
		port = parts[len(parts)-1]
	}

	// 先检查端口
	if err := checkPort(port); err != nil {
		return err
	}

	common.Log.Infof("rpc service listening on %s%s", rpcUrl, conf.Proxy)
	go func() {
		if err := r.Run(rpcUrl); err != nil {
			common.Log.Errorf("rpc service stopped, %v", err)
		}
	}()
	return nil
}

func checkPort(port string) error {
	l, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("port %s is in use: %v", port, err)
	}
	l.Close()
	return nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
