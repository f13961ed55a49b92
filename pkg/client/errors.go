package client

import (
	"errors"
	"strconv"
)

// Generic messages used when the server supplies none.
const (
	msgRequestFailed = "请求失败"
	msgBadResponse   = "响应解析失败"
)

// APIError represents a non-2xx HTTP response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError means no usable response came back: the connection failed,
// the body could not be read, or a success body was not valid JSON.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// statusMessage is the fallback message for a non-2xx response without a
// usable server message.
func statusMessage(code int) string {
	return msgRequestFailed + ": " + strconv.Itoa(code)
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsTransport reports whether err (or any wrapped error) is a TransportError.
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}
