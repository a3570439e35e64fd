package extension

import (
	"github.com/gin-gonic/gin"
)

type Service struct {
	chain string
	fees  FeeSource
	store AssetStore
}

func NewService(chain string, fees FeeSource, store AssetStore) *Service {
	return &Service{
		chain: chain,
		fees:  fees,
		store: store,
	}
}

func (s *Service) InitRouter(r *gin.Engine, basePath string) {
	g := r.Group(basePath + "/extension")

	g.GET("/health", s.health)
	g.GET("/default/fee-summary", s.feeSummary)

	g.GET("/inscription/utxo", s.inscription_utxo)
	g.GET("/inscription/info", s.inscription_info)
	g.POST("/inscription/import", s.inscription_import)

	g.GET("/glittr/list", s.glittr_list)
	g.POST("/glittr/import", s.glittr_import)

	g.POST("/tx/fee", s.tx_fee)
}
