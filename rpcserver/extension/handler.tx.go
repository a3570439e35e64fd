package extension

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/walletkit/fee"
	rpcwire "github.com/sat20-labs/walletkit/rpcserver/wire"
)

func (s *Service) tx_fee(c *gin.Context) {
	resp := &TxFeeResp{
		BaseResp: rpcwire.OkResp(),
	}
	var req TxFeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}

	if err := fee.ValidateFeeRate(req.FeeRate, s.fees.MaxFeeRate()); err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	amount, err := fee.EstimateTxFee(req.VSize, req.FeeRate)
	if err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Data = &TxFee{
		VSize:   req.VSize,
		FeeRate: req.FeeRate,
		Fee:     int64(amount),
	}
	c.JSON(http.StatusOK, resp)
}
