package extension

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sat20-labs/walletkit/common"
	rpcwire "github.com/sat20-labs/walletkit/rpcserver/wire"
)

const defaultPageSize = 100

func (s *Service) glittr_list(c *gin.Context) {
	resp := &AssetListResp{
		BaseResp: rpcwire.OkResp(),
		Data:     &AssetBalanceList{List: []*common.AssetBalance{}},
	}

	req := rpcwire.AddressRangeReq{
		RangeReq: rpcwire.RangeReq{Cursor: 0, Size: defaultPageSize},
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	if req.Size == 0 {
		req.Size = defaultPageSize
	}

	common.Log.Debugf("address: %v, cursor: %v, size: %v", req.Address, req.Cursor, req.Size)
	list, total, err := s.store.GetAssetList(req.Address, req.Cursor, req.Size)
	if err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Data.Start = int64(req.Cursor)
	resp.Data.Total = uint64(total)
	resp.Data.List = list
	c.JSON(http.StatusOK, resp)
}

func (s *Service) glittr_import(c *gin.Context) {
	resp := &ImportResp{
		BaseResp: rpcwire.OkResp(),
	}
	var req AssetImportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Code = -1
		resp.Msg = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	if ok, err := common.IsValidAddr(req.Address, s.chain); !ok {
		resp.Code = -1
		resp.Msg = fmt.Sprintf("invalid address %s, %v", req.Address, err)
		c.JSON(http.StatusOK, resp)
		return
	}

	for _, bal := range req.List {
		if bal == nil {
			continue
		}
		if err := s.store.PutAssetBalance(req.Address, bal); err != nil {
			resp.Code = -1
			resp.Msg = err.Error()
			c.JSON(http.StatusOK, resp)
			return
		}
		resp.Data++
	}
	c.JSON(http.StatusOK, resp)
}
