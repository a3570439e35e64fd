package extension

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/walletkit/common"
	rpcwire "github.com/sat20-labs/walletkit/rpcserver/wire"
)

func (s *Service) inscription_utxo(c *gin.Context) {
	resp := &InscriptionUtxoResp{
		BaseResp: rpcwire.OkResp(),
	}
	var req rpcwire.InscriptionIdReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}

	utxo, err := s.store.GetUtxoByInscriptionId(req.InscriptionId)
	if err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Data = utxo
	c.JSON(http.StatusOK, resp)
}

func (s *Service) inscription_info(c *gin.Context) {
	resp := &InscriptionInfoResp{
		BaseResp: rpcwire.OkResp(),
	}
	var req rpcwire.InscriptionIdReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}

	ins, err := s.store.GetInscription(req.InscriptionId)
	if err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Data = ins
	c.JSON(http.StatusOK, resp)
}

func (s *Service) inscription_import(c *gin.Context) {
	resp := &ImportResp{
		BaseResp: rpcwire.OkResp(),
	}
	var req InscriptionImportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}

	for _, ins := range req.List {
		if ins == nil {
			continue
		}
		if err := s.store.PutInscription(ins); err != nil {
			common.Log.Warnf("import inscription %s failed, %v", ins.InscriptionId, err)
			resp.Code = -1
			resp.Msg = err.Error()
			c.JSON(http.StatusOK, resp)
			return
		}
		resp.Data++
	}
	c.JSON(http.StatusOK, resp)
}
