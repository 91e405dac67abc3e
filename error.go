package minigame

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误分类
type Kind int

const (
	KindOther      Kind = iota // 其它错误(含网络错误、解析错误)
	KindPermission             // 无权限(401/403、凭证错误)
	KindNotFound               // 资源不存在(404)
)

func (k Kind) String() string {
	switch k {
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	default:
		return "other"
	}
}

var (
	// ErrPermission 可通过 errors.Is 判断无权限错误
	ErrPermission = errors.New("minigame: permission denied")
	// ErrNotFound 可通过 errors.Is 判断资源不存在错误
	ErrNotFound = errors.New("minigame: not found")
	// ErrOther 可通过 errors.Is 判断其它错误
	ErrOther = errors.New("minigame: request failed")
)

// Error 请求失败时返回的错误
type Error struct {
	Kind       Kind
	StatusCode int // HTTP状态码，未收到HTTP响应(网络错误、请求编码失败)时为0
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("minigame: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("minigame: %s (%d): %v", e.Kind, e.StatusCode, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is(err, ErrPermission) 等判断
func (e *Error) Is(target error) bool {
	switch target {
	case ErrPermission:
		return e.Kind == KindPermission
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrOther:
		return e.Kind == KindOther
	}
	return false
}

// Classify 根据HTTP状态码对失败请求分类
//
//	401/403 => Permission
//	404     => NotFound
//	其它(含无状态码的网络错误) => Other
func Classify(status int, err error) *Error {
	e := &Error{
		Kind:       KindOther,
		StatusCode: status,
		Err:        err,
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.Kind = KindPermission
	case http.StatusNotFound:
		e.Kind = KindNotFound
	}
	return e
}

// KindOf 返回错误分类，非 *Error 一律视为 Other
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// APIError 微信接口返回的业务错误(errcode != 0)
type APIError struct {
	Code int64
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d | %s", e.Code, e.Msg)
}

// 凭证相关的错误码
//
//	[参考](https://developers.weixin.qq.com/minigame/dev/api-backend/open-api/access-token/auth.getStableAccessToken.html)
var credentialCodes = map[int64]struct{}{
	40001: {}, // 不合法的 secret
	40013: {}, // 不合法的 AppID
	40125: {}, // 不合法的 secret
	40164: {}, // 调用接口的IP地址不在白名单中
}

// classifyAPIError HTTP 2xx 但 errcode 非0 的情况
func classifyAPIError(status int, err *APIError) *Error {
	e := Classify(status, err)
	if _, ok := credentialCodes[err.Code]; ok {
		e.Kind = KindPermission
	}
	return e
}
