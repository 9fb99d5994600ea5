package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error type tags echoed in the response body. Each maps to exactly one
// HTTP status.
const (
	ErrTypeServer   = "SERVER ERROR"
	ErrTypeDB       = "DB ERROR"
	ErrTypeSecurity = "SECURITY ERROR"
	ErrTypeMethod   = "METHOD ERROR"
	ErrTypeInput    = "INPUT ERROR"
	ErrTypeJSON     = "JSON ERROR"
	ErrTypeNotFound = "NOT FOUND"
)

// Response is the envelope for every JSON body the gateway returns.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ErrorType string `json:"errorType,omitempty"`
	Data      any    `json:"data,omitempty"`
	InsertID  int64  `json:"insertId,omitempty"`
}

func NewSuccessResponse(message string) *Response {
	return &Response{Success: true, Message: message}
}

func NewDataResponse(data any, message string) *Response {
	return &Response{Success: true, Message: message, Data: data}
}

func NewInsertResponse(insertID int64, message string) *Response {
	return &Response{Success: true, Message: message, InsertID: insertID}
}

func NewErrorResponse(errType, message string) *Response {
	return &Response{Success: false, ErrorType: errType, Message: message}
}

// StatusFor maps an error type tag to its HTTP status.
func StatusFor(errType string) int {
	switch errType {
	case ErrTypeSecurity:
		return http.StatusForbidden
	case ErrTypeMethod:
		return http.StatusMethodNotAllowed
	case ErrTypeInput, ErrTypeJSON:
		return http.StatusBadRequest
	case ErrTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error envelope with the status implied by the
// error type and ends the request.
func RespondError(c *gin.Context, errType, message string) {
	c.AbortWithStatusJSON(StatusFor(errType), NewErrorResponse(errType, message))
}
