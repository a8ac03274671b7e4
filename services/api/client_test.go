package apisvc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaimtop/studygo/core"
	apisvc "github.com/chaimtop/studygo/services/api"
	testutil "github.com/chaimtop/studygo/tests"
)

// fakeTokens is a minimal TokenSource with a clear counter.
type fakeTokens struct {
	mu     sync.Mutex
	token  string
	clears int
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) ClearToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.clears++
}

func newClient(t *testing.T, handler http.HandlerFunc, token string) (*apisvc.Client, *fakeTokens, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := core.NewConfig()
	conf.API.BaseURL = srv.URL
	tokens := &fakeTokens{token: token}
	return apisvc.NewClient(conf, tokens, testutil.NopLogger{}), tokens, srv
}

func Test_Client_ok(t *testing.T) {
	var gotAuth, gotReqID string
	client, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"success": true, "data": {"name": "小王"}}`))
	}, "tok-1")

	data, err := client.Get(context.Background(), "/students/me", nil)
	require.NoError(t, err)

	var body struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "小王", body.Name)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func Test_Client_noTokenNoHeader(t *testing.T) {
	var gotAuth string
	got := false
	client, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = true
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success": true, "data": null}`))
	}, "")

	_, err := client.Post(context.Background(), "/wx/login", map[string]string{"code": "abc"})
	require.NoError(t, err)
	require.True(t, got)
	assert.Empty(t, gotAuth, "no credential when logged out")
}

func Test_Client_businessError(t *testing.T) {
	client, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "已提交过该作业", "error_code": "ALREADY_SUBMITTED"}`))
	}, "tok-1")

	_, err := client.Post(context.Background(), "/students/me/homework/3/complete", struct{}{})
	require.Error(t, err)

	var bErr *core.BusinessError
	require.ErrorAs(t, err, &bErr)
	assert.Equal(t, "已提交过该作业", bErr.Message)
	assert.Equal(t, "ALREADY_SUBMITTED", bErr.Code)
	assert.False(t, core.IsTransportError(err))
}

func Test_Client_sessionExpired(t *testing.T) {
	client, tokens, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "tok-1")

	var hooked int
	client.OnSessionExpired = func() { hooked++ }

	_, err := client.Get(context.Background(), "/students/me", nil)
	assert.ErrorIs(t, err, core.ErrSessionExpired)
	assert.Empty(t, tokens.Token(), "401 clears the token")
	assert.Equal(t, 1, tokens.clears)
	assert.Equal(t, 1, hooked)

	// the same call with the token already gone still classifies cleanly
	_, err = client.Get(context.Background(), "/students/me", nil)
	assert.ErrorIs(t, err, core.ErrSessionExpired)
	assert.Equal(t, 2, hooked)
}

func Test_Client_httpErrorIsTransport(t *testing.T) {
	client, tokens, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "tok-1")

	_, err := client.Get(context.Background(), "/students/me", nil)
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
	assert.Equal(t, "network error", err.Error())
	assert.Equal(t, "tok-1", tokens.Token(), "only a 401 clears the token")
}

func Test_Client_malformedBodyIsTransport(t *testing.T) {
	client, _, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json`))
	}, "tok-1")

	_, err := client.Get(context.Background(), "/students/me", nil)
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err))
}

func Test_Client_connectionFailureIsTransport(t *testing.T) {
	client, _, srv := newClient(t, func(w http.ResponseWriter, r *http.Request) {}, "tok-1")
	srv.Close() // nothing listening anymore

	_, err := client.Get(context.Background(), "/students/me", nil)
	require.Error(t, err)
	assert.True(t, core.IsTransportError(err), "raw transport errors never escape unwrapped")
	assert.False(t, core.IsBusinessError(err))
}
