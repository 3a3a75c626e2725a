package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/molview/pkg/common/code"
)

type Error struct {
	Msg  string `json:"msg"`
	Info string `json:"info,omitempty"`
}

type Resp struct {
	Code  int    `json:"code"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

func Reply(ctx *gin.Context, err error, data ...any) {
	if err != nil {
		ReplyErr(ctx, err)
		return
	}
	resp := &Resp{Code: code.Success.Code}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReplyErr writes err as an error envelope; extra strings are joined into Info.
func ReplyErr(ctx *gin.Context, err error, infos ...string) {
	c := code.From(err)
	e := &Error{Msg: c.Msg}
	if len(infos) > 0 {
		e.Info = infos[0]
	} else if cause := errors.Unwrap(c); cause != nil {
		e.Info = cause.Error()
	}
	_ = ctx.Error(err)
	ctx.JSON(httpStatus(c), &Resp{Code: c.Code, Error: e})
}

func httpStatus(c *code.ErrCode) int {
	switch {
	case errors.Is(c, code.ParamErr):
		return http.StatusBadRequest
	case errors.Is(c, code.StructureUnavailable):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
