package constant

import "time"

const (
	// RequestTimeout bounds every call to the requests API.
	RequestTimeout = 30 * time.Second

	SearchDebounce   = 300 * time.Millisecond
	SuccessFlashTime = 3 * time.Second
	RecentWindow     = 24 * time.Hour

	DefaultPageSize = 5
	MaxPageSize     = 100

	// RequestsQueryPrefix is shared by every cached list query key.
	RequestsQueryPrefix = "requests"
)

const (
	MsgSubmitSuccess = "Request submitted successfully!"
	MsgSubmitFailed  = "Failed to submit request. Please try again."
	MsgDeleteSuccess = "Request deleted"
	MsgDeleteFailed  = "Failed to delete request. Please try again."
	MsgPickFailed    = "Failed to pick image"
	MsgUnknownError  = "Unknown error"
)

const (
	EventRequestCreated = "request.created"
	EventRequestDeleted = "request.deleted"
)
