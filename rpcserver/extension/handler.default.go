package extension

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/walletkit/common"
	rpcwire "github.com/sat20-labs/walletkit/rpcserver/wire"
)

func (s *Service) health(c *gin.Context) {
	c.JSON(http.StatusOK, &HealthResp{
		BaseResp: rpcwire.OkResp(),
		Data: &HealthStatus{
			Status:  "ok",
			Version: common.WALLETKIT_VERSION,
			Chain:   s.chain,
		},
	})
}

func (s *Service) feeSummary(c *gin.Context) {
	resp := &FeeSummaryResp{
		BaseResp: rpcwire.OkResp(),
		Data:     &FeeSummaryList{List: []*FeeSummary{}},
	}

	list, err := s.fees.GetFeeSummary()
	if err != nil {
		common.Log.Errorf("GetFeeSummary failed, %v", err)
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	for _, option := range list {
		resp.Data.List = append(resp.Data.List, &FeeSummary{
			Title:   option.Title,
			Desc:    option.Desc,
			FeeRate: strconv.FormatFloat(option.FeeRate, 'f', 2, 64),
		})
	}
	c.JSON(http.StatusOK, resp)
}
