package internal

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// LogFunc 请求日志回调
type LogFunc func(ctx context.Context, err error, data map[string]string)

// 日志中需要脱敏的 JSON 字段
var maskedFields = []string{"secret", "access_token"}

// ReqLog 请求日志
type ReqLog struct {
	err  error
	data map[string]string
}

func (l *ReqLog) SetError(err error) {
	l.err = err
}

// SetReqHeader 设置请求头
func (l *ReqLog) SetReqHeader(h http.Header) {
	if len(h) == 0 {
		return
	}
	l.data["req_header"] = HeaderEncode(h)
}

// SetReqBody 设置请求Body
func (l *ReqLog) SetReqBody(b []byte) {
	if b == nil {
		return
	}
	l.data["req_body"] = Mask(b)
}

// SetRespHeader 设置返回头
func (l *ReqLog) SetRespHeader(h http.Header) {
	l.data["resp_header"] = HeaderEncode(h)
}

// SetRespBody 设置返回报文
func (l *ReqLog) SetRespBody(b []byte) {
	l.data["resp_body"] = Mask(b)
}

// SetStatusCode 设置HTTP状态码
func (l *ReqLog) SetStatusCode(code int) {
	l.data["status_code"] = strconv.Itoa(code)
}

// Do 日志记录
func (l *ReqLog) Do(ctx context.Context, log LogFunc) {
	if log == nil {
		return
	}
	log(ctx, l.err, l.data)
}

// NewReqLog 生成请求日志
func NewReqLog(method, reqURL string) *ReqLog {
	return &ReqLog{
		data: map[string]string{
			"method":     method,
			"url":        maskURL(reqURL),
			"request_id": uuid.NewString(),
		},
	}
}

// HeaderEncode 按 key 排序输出，如：Accept=application/json;User-Agent=xxx
func HeaderEncode(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf strings.Builder
	for _, k := range keys {
		if buf.Len() > 0 {
			buf.WriteString(";")
		}
		buf.WriteString(k)
		buf.WriteString("=")
		buf.WriteString(strings.Join(h[k], ","))
	}
	return buf.String()
}

// Mask 对 JSON 报文中的敏感字段脱敏，非 JSON 原样返回
func Mask(b []byte) string {
	s := string(b)
	if !gjson.ValidBytes(b) {
		return s
	}
	for _, field := range maskedFields {
		v := gjson.Get(s, field)
		if v.Type != gjson.String || v.Index <= 0 {
			continue
		}
		s = s[:v.Index] + `"******"` + s[v.Index+len(v.Raw):]
	}
	return s
}

func maskURL(reqURL string) string {
	u, err := url.Parse(reqURL)
	if err != nil || len(u.RawQuery) == 0 {
		return reqURL
	}
	query := u.Query()
	for _, field := range maskedFields {
		if query.Has(field) {
			query.Set(field, "******")
		}
	}
	u.RawQuery = query.Encode()
	return u.String()
}
