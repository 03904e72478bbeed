package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateEmail 存储层唯一索引冲突（并发兜底）
var ErrDuplicateEmail = errors.New("duplicate email")

// Kind 错误类别，由 HTTP 层统一映射状态码
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindInvalid
	KindBadRequest
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindBadRequest:
		return "bad_request"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "unexpected"
	}
}

// Error 统一错误对象
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]string // 仅 KindInvalid：字段 -> 提示
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Msg: fmt.Sprintf(format, args...)}
}

func MethodNotAllowed(msg string) error { return &Error{Kind: KindMethodNotAllowed, Msg: msg} }

func Invalid(fields map[string]string) error { return &Error{Kind: KindInvalid, Fields: fields} }

func Internal(msg string, err error) error { return &Error{Kind: KindUnexpected, Msg: msg, Err: err} }

// KindOf 非 *Error 一律视为 KindUnexpected
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
