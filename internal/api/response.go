package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorCode int

const (
	ErrorCodeOk       ErrorCode = 200
	ErrorCodeInternal ErrorCode = 1001
	ErrorCodeInvalid  ErrorCode = 1002
	ErrorCodeNotExist ErrorCode = 1003
)

var err2msg = map[ErrorCode]string{
	ErrorCodeOk:       "success",
	ErrorCodeInternal: "internal error",
	ErrorCodeInvalid:  "invalid argument",
	ErrorCodeNotExist: "not exist",
}

func (c ErrorCode) String() string {
	msg, ok := err2msg[c]
	if ok {
		return msg
	}
	return fmt.Sprintf("unknown error(%d)", c)
}

type Response struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Data    any       `json:"data"`
}

func Error(c *gin.Context, code ErrorCode, err error) {
	var msg string
	if err != nil {
		msg = fmt.Sprintf("%s: %s", code.String(), err)
	} else {
		msg = code.String()
	}
	c.JSON(http.StatusInternalServerError, Response{
		Code:    code,
		Message: msg,
	})
}

func Success(c *gin.Context, v any) {
	c.JSON(http.StatusOK, Response{
		Code:    ErrorCodeOk,
		Message: ErrorCodeOk.String(),
		Data:    v,
	})
}

// GetBodyData unwraps the Data payload of a Response body.
func GetBodyData[T any](data []byte) (*T, error) {
	var (
		resp Response
		v    T
	)
	err := json.Unmarshal(data, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Code != ErrorCodeOk {
		return nil, fmt.Errorf("%s", resp.Message)
	}

	data, err = json.Marshal(resp.Data)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(data, &v)
	return &v, err
}
