package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anandha-scraper/HarvestChain/internal/error/code"
)

// Response is the fixed wire envelope. Every handler, success or failure,
// replies with this shape; a bare HTML error page is never emitted.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
}

// Success writes a 200 envelope
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 envelope
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessPaged writes a 200 envelope carrying a pagination block
func SuccessPaged(c *gin.Context, data interface{}, pagination interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

// Fail writes a failure envelope with the code's default message
func Fail(c *gin.Context, errorCode int) {
	FailWithMessage(c, errorCode, code.GetMessage(errorCode))
}

// FailWithMessage writes a failure envelope with a custom message
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), Response{
		Success: false,
		Message: message,
	})
}

// ParamError writes a 400 validation failure
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message)
}

// NotFound writes a 404 failure
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, Response{
		Success: false,
		Message: message,
	})
}

// ServerError writes a 500 failure passing the error message through
func ServerError(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrUnknown)
	}
	FailWithMessage(c, code.ErrUnknown, message)
}
