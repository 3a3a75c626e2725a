package code

import (
	"errors"
	"fmt"
)

type ErrCode struct {
	Code int
	Msg  string
	err  error
}

func newCode(c int, msg string) *ErrCode {
	return &ErrCode{Code: c, Msg: msg}
}

var (
	Success     = newCode(0, "success")
	UnDefineErr = newCode(1, "undefined error")
	ParamErr    = newCode(1001, "parameter error")

	RPCHttpErr      = newCode(2001, "rpc http request error")
	RPCHttpCodeErr  = newCode(2002, "rpc http status code error")
	RPCHttpEmptyErr = newCode(2003, "rpc http empty response body")

	SourceUnreachable    = newCode(3001, "structure source unreachable")
	StructureUnavailable = newCode(3002, "structure unavailable from all sources")
)

func (e *ErrCode) Error() string {
	if e.err != nil {
		return fmt.Sprintf("code: %d, msg: %s, err: %v", e.Code, e.Msg, e.err)
	}
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

func (e *ErrCode) Unwrap() error {
	return e.err
}

// Is matches on Code so derived errors still compare equal to the base code.
func (e *ErrCode) Is(target error) bool {
	t, ok := target.(*ErrCode)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *ErrCode) WithMsg(msg string) *ErrCode {
	return &ErrCode{Code: e.Code, Msg: msg, err: e.err}
}

func (e *ErrCode) WithMsgf(format string, args ...any) *ErrCode {
	return e.WithMsg(fmt.Sprintf(format, args...))
}

func (e *ErrCode) WithErr(err error) *ErrCode {
	return &ErrCode{Code: e.Code, Msg: e.Msg, err: err}
}

// From returns the first *ErrCode in err's chain, or UnDefineErr wrapping err.
func From(err error) *ErrCode {
	if err == nil {
		return Success
	}
	var c *ErrCode
	if errors.As(err, &c) {
		return c
	}
	return UnDefineErr.WithErr(err)
}
