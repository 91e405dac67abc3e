package minigame

import "github.com/tidwall/gjson"

const GrantClientCredential = "client_credential"

// checkErrCode 微信接口出错时 HTTP 状态码仍为200，需检查 errcode
func checkErrCode(b []byte) *APIError {
	ret := gjson.ParseBytes(b)
	if code := ret.Get("errcode").Int(); code != 0 {
		return &APIError{
			Code: code,
			Msg:  ret.Get("errmsg").String(),
		}
	}
	return nil
}
