package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noble-gase/minigame"
)

func Test_RootCmd_StableToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "/cgi-bin/stable_token", r.URL.Path)
		assert.Equal(t, "wx123", body["appid"])
		assert.Equal(t, true, body["force_refresh"])

		_, _ = w.Write([]byte(`{"access_token":"ABC123","expires_in":7200}`))
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--host", srv.URL, "--appid", "wx123", "--secret", "s3cr3t", "--force-refresh", "-v"})

	require.NoError(t, cmd.Execute())

	var ret minigame.AccessTokenResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &ret))
	assert.Equal(t, "ABC123", ret.AccessToken)
	assert.Equal(t, 7200, ret.ExpiresIn)

	assert.Contains(t, stderr.String(), "status_code: 200")
	assert.NotContains(t, stderr.String(), "s3cr3t")
}

func Test_RootCmd_Classic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi-bin/token", r.URL.Path)
		_, _ = w.Write([]byte(`{"access_token":"XYZ","expires_in":7200}`))
	}))
	defer srv.Close()

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--host", srv.URL, "--appid", "wx123", "--secret", "s3cr3t", "--classic"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), `"access_token": "XYZ"`)
}

func Test_RootCmd_EnvCredentials(t *testing.T) {
	t.Setenv(EnvAppID, "wxenv")
	t.Setenv(EnvAppSecret, "envsecret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "wxenv", body["appid"])
		assert.Equal(t, "envsecret", body["secret"])
		_, _ = w.Write([]byte(`{"access_token":"ENV","expires_in":7200}`))
	}))
	defer srv.Close()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--host", srv.URL})
	require.NoError(t, cmd.Execute())
}

func Test_RootCmd_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--host", srv.URL, "--appid", "wx123", "--secret", "bad"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
}

func Test_ExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 3, ExitCode(minigame.Classify(401, errors.New("401 Unauthorized"))))
	assert.Equal(t, 4, ExitCode(minigame.Classify(404, errors.New("404 Not Found"))))
	assert.Equal(t, 1, ExitCode(minigame.Classify(0, errors.New("dial tcp: refused"))))
	assert.Equal(t, 1, ExitCode(errors.New("unknown flag")))
}
