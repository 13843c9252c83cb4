package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	ValidationFailed
	UpstreamFailure
	Unauthorized
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ValidationFailed:
		return "validation_failed"
	case UpstreamFailure:
		return "upstream_failure"
	case Unauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Status HTTP 状态码映射
func (k Kind) Status() int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case ValidationFailed:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is 同种类的 *Error 视为相等，便于 errors.Is(err, apperr.ErrNotFound)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// 哨兵值，仅用于 errors.Is 比较种类
var (
	ErrNotFound         = &Error{Kind: NotFound}
	ErrValidationFailed = &Error{Kind: ValidationFailed}
	ErrUpstreamFailure  = &Error{Kind: UpstreamFailure}
	ErrUnauthorized     = &Error{Kind: Unauthorized}
)

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: ValidationFailed, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Kind: Unauthorized, Message: fmt.Sprintf(format, args...)}
}

// Upstream 包装 AI 等外部服务的失败，消息沿用原始错误文本
func Upstream(err error) *Error {
	msg := "upstream request failed"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Kind: UpstreamFailure, Message: msg, Err: err}
}

func Wrap(err error, message string) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

// KindOf 非 *Error 的错误一律视为 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
