package structure

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/molview/pkg/common"
	"github.com/scienceol/molview/pkg/common/code"
	core "github.com/scienceol/molview/pkg/core/structure"
	"github.com/scienceol/molview/pkg/middleware/logger"
	"github.com/scienceol/molview/pkg/repo/sdf"
)

const SourceHeader = "X-Structure-Source"

type Handle struct {
	svc core.Service
}

func NewHandle(svc core.Service) *Handle {
	return &Handle{svc: svc}
}

// View returns the resolved structure plus everything the viewer needs to
// render it.
func (h *Handle) View(ctx *gin.Context) {
	req := &core.DisplayConfig{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse structure View param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.View(ctx, req)
	common.Reply(ctx, err, resp)
}

// SDF streams the raw structure document.
func (h *Handle) SDF(ctx *gin.Context) {
	req := &core.DisplayConfig{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse structure SDF param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	resp, err := h.svc.View(ctx, &core.DisplayConfig{CID: req.CID, Regno: req.Regno})
	if err != nil {
		common.ReplyErr(ctx, err)
		return
	}
	ctx.Header(SourceHeader, string(resp.Source))
	ctx.Data(http.StatusOK, sdf.MimeType, []byte(resp.Data))
}

// Stream reports resolution progress as server-sent events: one "state"
// event per transition, then "view" with the payload or "error".
func (h *Handle) Stream(ctx *gin.Context) {
	req := &core.DisplayConfig{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse structure Stream param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	resp, err := h.svc.ViewWithProgress(ctx, req, func(s core.State) {
		ctx.SSEvent("state", s.String())
		ctx.Writer.Flush()
	})
	if err != nil {
		c := code.From(err)
		ctx.SSEvent("error", &common.Resp{Code: c.Code, Error: &common.Error{Msg: c.Msg}})
		ctx.Writer.Flush()
		return
	}
	ctx.SSEvent("view", &common.Resp{Code: code.Success.Code, Data: resp})
	ctx.Writer.Flush()
}
