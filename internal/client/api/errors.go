package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels matched with errors.Is against an *Error.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrThemeNotFound = errors.New("theme not found")
	ErrNetwork       = errors.New("network unavailable")
	ErrDecode        = errors.New("malformed response body")
)

// Fallback and catalog messages.
const (
	MsgLoginFailed    = "로그인에 실패했습니다."
	MsgOrderFailed    = "주문에 실패했습니다."
	MsgProductFailed  = "제품 정보를 불러오는데 실패했습니다."
	MsgAPIError       = "API Error"
	MsgThemeNotFound  = "Theme not found"
	MsgNetwork        = "네트워크 연결을 확인해주세요."
	MsgServerError    = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MsgUnauthorized   = "로그인이 필요합니다."
	MsgOrderSucceeded = "주문이 성공적으로 완료되었습니다!"
)

// Error is the normalized failure of an API call: a message suitable for the
// user and the HTTP status, 0 when no response was received.
type Error struct {
	Op      string
	Message string
	Status  int

	kind  error
	cause error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

// Unwrap exposes the sentinel of the status, an operation specific
// sentinel such as ErrThemeNotFound, and the transport or decode cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 3)
	if k := statusKind(e.Status); k != nil {
		errs = append(errs, k)
	}
	if e.kind != nil && e.kind != statusKind(e.Status) {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// NewError builds the error of a response with the given status. The status
// sentinel is always matched; kind, when set, is matched on top of it.
func NewError(op string, status int, message string, kind error) *Error {
	return &Error{Op: op, Message: message, Status: status, kind: kind}
}

// IsClientError reports a 4xx status.
func (e *Error) IsClientError() bool {
	return e.Status >= 400 && e.Status < 500
}

func statusKind(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// StatusOf returns the HTTP status carried by err, or -1 when err is not an
// API error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// UserMessage picks the text shown for a failed call: the server's own
// message for client errors and the generic server error text for anything
// else, network and decode failures included.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.IsClientError() {
		return apiErr.Message
	}
	return MsgServerError
}
