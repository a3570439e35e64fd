package wire

type AddressReq struct {
	Address string `form:"address" binding:"required"`
}

type InscriptionIdReq struct {
	InscriptionId string `form:"inscriptionId" binding:"required"`
}

type RangeReq struct {
	Cursor int `form:"cursor" binding:"omitempty,min=0"`
	Size   int `form:"size" binding:"omitempty,min=0"`
}

type AddressRangeReq struct {
	AddressReq
	RangeReq
}

type BaseResp struct {
	Code int    `json:"code" example:"0"`
	Msg  string `json:"msg" example:"ok"`
}

type ListResp struct {
	Start int64  `json:"start" example:"0"`
	Total uint64 `json:"total" example:"9992"`
}

func OkResp() BaseResp {
	return BaseResp{Code: 0, Msg: "ok"}
}
