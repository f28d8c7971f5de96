package api

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonrpc"
)

// ErrorCode is the JSON-RPC error code carried by a ToolError.
type ErrorCode int64

const (
	CodeInvalidParams ErrorCode = -32602
	CodeInternalError ErrorCode = -32603
)

// String returns the short name used in logs and metric labels.
func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidParams:
		return "invalid_params"
	case CodeInternalError:
		return "internal_error"
	default:
		return fmt.Sprintf("code_%d", int64(c))
	}
}

// ToolError is the structured failure of a tool call.
type ToolError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// JSONRPC converts the error into a protocol-level JSON-RPC error.
func (e *ToolError) JSONRPC() *jsonrpc.Error {
	return &jsonrpc.Error{
		Code:    int64(e.Code),
		Message: e.Message,
	}
}

// NewInvalidParamsError creates a ToolError for a caller constraint violation.
func NewInvalidParamsError(message string) *ToolError {
	return &ToolError{Code: CodeInvalidParams, Message: message}
}

// NewInternalError creates a ToolError for a transport or unexpected failure.
func NewInternalError(message string) *ToolError {
	return &ToolError{Code: CodeInternalError, Message: message}
}
