package internal

import (
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"
)

const ContentJSON = "application/json"

// UserAgent 请求固定携带的 User-Agent
const UserAgent = "noble-gase-minigame/1.0 (+https://github.com/noble-gase/minigame)"

// RequestTimeout 单次请求超时时间
const RequestTimeout = 10 * time.Second

// NewClient 默认的 HTTP Client
func NewClient() *resty.Client {
	return NewClientWith(&http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:          0,
			MaxIdleConnsPerHost:   1000,
			MaxConnsPerHost:       1000,
			IdleConnTimeout:       60 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	})
}

// NewClientWith 基于已有的 http.Client 生成，并附加固定请求头
func NewClientWith(cli *http.Client) *resty.Client {
	return resty.NewWithClient(cli).
		SetHeader(HeaderAccept, ContentJSON).
		SetHeader(HeaderUserAgent, UserAgent)
}
