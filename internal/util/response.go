package util

import (
	"errors"
	"net/http"

	"stackit_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 统一错误结构，成功响应直接返回实体本身
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// StatusResponse 动作类接口(accept / mark_read)的返回
type StatusResponse struct {
	Status string `json:"status"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, ErrUnauthorized.Error())
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, ErrForbidden.Error())
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Not found.")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	InternalServerError(c)
}

func ValidationFailed(c *gin.Context, verr *ValidationError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:  "validation failed",
		Fields: verr.Fields,
	})
}

// HandleError 将 service 层错误映射为 HTTP 响应
func HandleError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr)
	case errors.Is(err, ErrNotFound):
		NotFound(c)
	case errors.Is(err, ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrUnauthorized):
		Unauthorized(c)
	case errors.Is(err, ErrNotQuestionOwner):
		Error(c, http.StatusForbidden, MsgNotQuestionOwner)
	case errors.Is(err, ErrForbidden):
		Forbidden(c)
	default:
		LogInternalError(c, err)
	}
}
