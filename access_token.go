package minigame

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/noble-gase/minigame/internal"
)

// StableAccessTokenOptions 获取稳定版接口调用凭据的参数
type StableAccessTokenOptions struct {
	// AppID 账号唯一凭证
	AppID string
	// Secret 账号唯一凭证密钥
	Secret string
	// ForceRefresh 是否强制刷新，nil 等同于 false
	//
	//	false: 普通模式，access_token 有效期内重复调用不会更新 access_token
	//	true:  强制刷新模式，上次获取的 access_token 失效并返回新的 access_token
	ForceRefresh *bool
}

// StableAccessTokenRequest 获取稳定版接口调用凭据
//
//	[参考](https://developers.weixin.qq.com/minigame/dev/api-backend/open-api/access-token/auth.getStableAccessToken.html)
type StableAccessTokenRequest struct {
	grantType    string
	appid        string
	secret       string
	forceRefresh bool
}

// NewStableAccessTokenRequest 生成请求，grant_type 固定为 client_credential
//
//	不校验 appid/secret 是否为空，凭证错误由微信服务端返回
func NewStableAccessTokenRequest(opts StableAccessTokenOptions) StableAccessTokenRequest {
	req := StableAccessTokenRequest{
		grantType: GrantClientCredential,
		appid:     opts.AppID,
		secret:    opts.Secret,
	}
	if opts.ForceRefresh != nil {
		req.forceRefresh = *opts.ForceRefresh
	}
	return req
}

func (r StableAccessTokenRequest) GrantType() string { return r.grantType }

func (r StableAccessTokenRequest) AppID() string { return r.appid }

func (r StableAccessTokenRequest) Secret() string { return r.secret }

func (r StableAccessTokenRequest) ForceRefresh() bool { return r.forceRefresh }

func (StableAccessTokenRequest) Method() string { return http.MethodPost }

func (StableAccessTokenRequest) Path() string { return "/cgi-bin/stable_token" }

func (StableAccessTokenRequest) Query() url.Values { return nil }

func (r StableAccessTokenRequest) Body() any { return r }

// MarshalJSON 字段顺序：grant_type, appid, secret, force_refresh
func (r StableAccessTokenRequest) MarshalJSON() ([]byte, error) {
	return internal.MarshalNoEscapeHTML(struct {
		GrantType    string `json:"grant_type"`
		AppID        string `json:"appid"`
		Secret       string `json:"secret"`
		ForceRefresh bool   `json:"force_refresh"`
	}{
		GrantType:    r.grantType,
		AppID:        r.appid,
		Secret:       r.secret,
		ForceRefresh: r.forceRefresh,
	})
}

// AccessTokenRequest 获取接口调用凭据(普通版)
//
//	[参考](https://developers.weixin.qq.com/minigame/dev/api-backend/open-api/access-token/auth.getAccessToken.html)
type AccessTokenRequest struct {
	appid  string
	secret string
}

// NewAccessTokenRequest 生成请求，grant_type 固定为 client_credential
func NewAccessTokenRequest(appid, secret string) AccessTokenRequest {
	return AccessTokenRequest{
		appid:  appid,
		secret: secret,
	}
}

func (AccessTokenRequest) Method() string { return http.MethodGet }

func (AccessTokenRequest) Path() string { return "/cgi-bin/token" }

func (r AccessTokenRequest) Query() url.Values {
	query := url.Values{}

	query.Set("grant_type", GrantClientCredential)
	query.Set("appid", r.appid)
	query.Set("secret", r.secret)

	return query
}

func (AccessTokenRequest) Body() any { return nil }

// AccessTokenResponse 接口调用凭据
type AccessTokenResponse struct {
	// AccessToken 获取到的凭证
	AccessToken string `json:"access_token"`
	// ExpiresIn 凭证有效时间，单位：秒。目前是7200秒之内的值。
	ExpiresIn int `json:"expires_in"`
}

// TTL 凭证有效时长
func (r *AccessTokenResponse) TTL() time.Duration {
	return time.Duration(r.ExpiresIn) * time.Second
}

// StableAccessToken 获取稳定版接口调用凭据
//
//	有两种调用模式:
//	[普通模式] access_token有效期内重复调用该接口不会更新access_token，绝大部分场景下使用该模式；
//	[强制刷新模式] 会导致上次获取的access_token失效，并返回新的access_token
func (c *Client) StableAccessToken(ctx context.Context, req StableAccessTokenRequest) (*AccessTokenResponse, error) {
	return Do[AccessTokenResponse](ctx, c, req)
}

// AccessToken 获取接口调用凭据
func (c *Client) AccessToken(ctx context.Context, req AccessTokenRequest) (*AccessTokenResponse, error) {
	return Do[AccessTokenResponse](ctx, c, req)
}
