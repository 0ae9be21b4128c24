package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/eduzap/eduzap/constant"
	cerr "github.com/eduzap/eduzap/utils/errors"
)

func TestCustomError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantType   constant.ErrorType
		wantMsg    string
		wantStatus int
	}{
		{
			name:       "default message",
			err:        cerr.SetCustomError(constant.ErrTimeout),
			wantType:   constant.ErrTimeout,
			wantMsg:    constant.ErrorTypeMessage[constant.ErrTimeout],
			wantStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "server message and status",
			err:        cerr.SetCustomError(constant.ErrServer).WithMessage("phone already used").WithStatus(http.StatusConflict),
			wantType:   constant.ErrServer,
			wantMsg:    "phone already used",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "wrapped",
			err:        fmt.Errorf("create: %w", cerr.SetCustomError(constant.ErrNetwork)),
			wantType:   constant.ErrNetwork,
			wantMsg:    constant.ErrorTypeMessage[constant.ErrNetwork],
			wantStatus: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var ce cerr.CustomError
			if !errors.As(tt.err, &ce) {
				t.Fatalf("error type = %T, want CustomError", tt.err)
			}
			if ce.Type() != tt.wantType {
				t.Fatalf("Type() = %v, want %v", ce.Type(), tt.wantType)
			}
			if got := cerr.UserMessage(tt.err); got != tt.wantMsg {
				t.Fatalf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
			if ce.ErrorHTTPCode() != tt.wantStatus {
				t.Fatalf("ErrorHTTPCode() = %d, want %d", ce.ErrorHTTPCode(), tt.wantStatus)
			}
			if !cerr.IsType(tt.err, tt.wantType) {
				t.Fatalf("IsType(%v) = false", tt.wantType)
			}
		})
	}
}

func TestUserMessage_Plain(t *testing.T) {
	if got := cerr.UserMessage(errors.New("boom")); got != constant.MsgUnknownError {
		t.Fatalf("UserMessage() = %q, want %q", got, constant.MsgUnknownError)
	}
	if got := cerr.UserMessage(nil); got != "" {
		t.Fatalf("UserMessage(nil) = %q, want empty", got)
	}
}

func TestCustomError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := cerr.SetCustomError(constant.ErrNetwork).WithCause(cause)
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(err, cause) = false, want true")
	}
}
