package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrValidation
	ErrNetwork
	ErrTimeout
	ErrServer
	ErrMalformedResponse
	ErrPermissionDenied
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:           "success",
	ErrInternal:          "error internal",
	ErrNotFound:          "data not found",
	ErrInvalidRequest:    "invalid request",
	ErrValidation:        "please fix the highlighted fields",
	ErrNetwork:           "Network error. Please check your connection and try again.",
	ErrTimeout:           "Request timed out. Please try again.",
	ErrServer:            "Server error. Please try again later.",
	ErrMalformedResponse: "Unexpected response from server.",
	ErrPermissionDenied:  "Please allow access to your photo library to attach an image.",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:           http.StatusOK,
	ErrInternal:          http.StatusInternalServerError,
	ErrNotFound:          http.StatusNotFound,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrValidation:        http.StatusBadRequest,
	ErrNetwork:           http.StatusBadGateway,
	ErrTimeout:           http.StatusGatewayTimeout,
	ErrServer:            http.StatusBadGateway,
	ErrMalformedResponse: http.StatusBadGateway,
	ErrPermissionDenied:  http.StatusForbidden,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:           "0000",
	ErrInternal:          "0001",
	ErrNotFound:          "0002",
	ErrInvalidRequest:    "0003",
	ErrValidation:        "0004",
	ErrNetwork:           "0005",
	ErrTimeout:           "0006",
	ErrServer:            "0007",
	ErrMalformedResponse: "0008",
	ErrPermissionDenied:  "0009",
}
