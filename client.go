package minigame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/noble-gase/minigame/internal"
)

// DefaultHost 微信小游戏服务端API基础地址
const DefaultHost = "https://api.weixin.qq.com"

// Client 小游戏
type Client struct {
	host   string
	client *resty.Client
	logger internal.LogFunc
}

// Option 客户端选项
type Option func(c *Client)

// WithHttpClient 使用自定义的 http.Client
func WithHttpClient(cli *http.Client) Option {
	return func(c *Client) {
		if cli != nil {
			c.client = internal.NewClientWith(cli)
		}
	}
}

// WithHost 设置API基础地址(如：代理网关、测试服务)
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = strings.TrimRight(host, "/")
	}
}

// WithLogger 设置请求日志回调
func WithLogger(fn func(ctx context.Context, err error, data map[string]string)) Option {
	return func(c *Client) {
		c.logger = fn
	}
}

// Host 返回API基础地址
func (c *Client) Host() string {
	return c.host
}

// Request 可发送的API请求
type Request interface {
	// Method HTTP方法
	Method() string
	// Path 请求路径，如：/cgi-bin/stable_token
	Path() string
	// Query URL参数，可为nil
	Query() url.Values
	// Body JSON请求体，nil表示无请求体
	Body() any
}

func (c *Client) url(path string, query url.Values) string {
	var builder strings.Builder

	builder.WriteString(c.host)
	if len(path) != 0 && path[0] != '/' {
		builder.WriteString("/")
	}
	builder.WriteString(path)
	if len(query) != 0 {
		builder.WriteString("?")
		builder.WriteString(query.Encode())
	}

	return builder.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, params any) (int, []byte, error) {
	var (
		body []byte
		err  error
	)

	header := http.Header{}
	if params != nil {
		body, err = internal.MarshalNoEscapeHTML(params)
		if err != nil {
			return 0, nil, Classify(0, fmt.Errorf("encode request: %w", err))
		}
		header.Set(internal.HeaderContentType, internal.ContentJSON)
	}

	reqURL := c.url(path, query)

	log := internal.NewReqLog(method, reqURL)
	defer log.Do(ctx, c.logger)

	reqHeader := c.client.Header.Clone()
	for k, vs := range header {
		reqHeader[k] = vs
	}
	log.SetReqHeader(reqHeader)
	log.SetReqBody(body)

	timeoutCtx, cancel := context.WithTimeout(ctx, internal.RequestTimeout)
	defer cancel()

	r := c.client.R().
		SetContext(timeoutCtx).
		SetHeaderMultiValues(header)
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Execute(method, reqURL)
	if err != nil {
		log.SetError(err)
		return 0, nil, Classify(0, err)
	}

	log.SetRespHeader(resp.Header())
	log.SetStatusCode(resp.StatusCode())
	log.SetRespBody(resp.Body())

	if !resp.IsSuccess() {
		e := Classify(resp.StatusCode(), errors.New(resp.Status()))
		log.SetError(e)
		return resp.StatusCode(), nil, e
	}
	if apiErr := checkErrCode(resp.Body()); apiErr != nil {
		e := classifyAPIError(resp.StatusCode(), apiErr)
		log.SetError(e)
		return resp.StatusCode(), nil, e
	}
	return resp.StatusCode(), resp.Body(), nil
}

// Decode 将JSON报文解析为指定类型，失败时返回 KindOther 的 *Error
//
//	经 Do 调用时 StatusCode 为返回的HTTP状态码
func Decode[T any](b []byte) (*T, error) {
	v := new(T)
	if err := json.Unmarshal(b, v); err != nil {
		return nil, &Error{
			Kind: KindOther,
			Err:  fmt.Errorf("decode response: %w", err),
		}
	}
	return v, nil
}

// Do 发送请求并将返回解析为指定类型
//
//	失败时返回 *Error，可通过 errors.Is(err, ErrPermission) 等判断分类
func Do[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	status, b, err := c.do(ctx, req.Method(), req.Path(), req.Query(), req.Body())
	if err != nil {
		return nil, err
	}

	v, err := Decode[T](b)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.StatusCode = status
		}
		return nil, err
	}
	return v, nil
}

// NewClient 生成一个小游戏客户端实例
func NewClient(options ...Option) *Client {
	c := &Client{
		host:   DefaultHost,
		client: internal.NewClient(),
	}
	for _, f := range options {
		f(c)
	}
	return c
}
