// Package apisvc implements the request pipeline: it attaches the session
// token to every call, dispatches it to the remote backend and reduces the
// raw transport outcome into one of the classified results declared in core
// (nil error + data, *core.BusinessError, core.ErrSessionExpired,
// *core.TransportError). No raw transport error ever escapes unwrapped.
package apisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/chaimtop/studygo/core"
)

// TokenSource supplies the bearer credential and absorbs the expiry signal.
// The session store satisfies it.
type TokenSource interface {
	Token() string
	ClearToken()
}

// Descriptor describes one backend operation. It is constructed per call and
// never retained.
type Descriptor struct {
	Path   string
	Method string // http.MethodGet | http.MethodPost
	Query  url.Values
	Body   interface{}
}

// envelope is the backend's uniform response body.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  core.Logger

	// OnSessionExpired is invoked (synchronously, without delay) after a 401
	// has cleared the token, so the host can show its login flow. Optional.
	OnSessionExpired func()
}

func NewClient(conf *core.Config, tokens TokenSource, logger core.Logger) *Client {
	return &Client{
		baseURL: conf.API.BaseURL,
		http:    &http.Client{Timeout: conf.API.Timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// Do executes a single logical attempt of the described operation. Retry
// policy is left to the caller: a transient failure surfaces as a
// *core.TransportError and nothing is retried here.
func (c *Client) Do(ctx context.Context, desc Descriptor) (json.RawMessage, error) {
	reqID := uuid.NewString()

	var body io.Reader
	if desc.Body != nil {
		data, err := json.Marshal(desc.Body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(data)
	}

	u := c.baseURL + "/" + strings.TrimLeft(desc.Path, "/")
	if len(desc.Query) > 0 {
		u += "?" + desc.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, u, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building request %s %s", desc.Method, desc.Path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api: dispatch", desc.Method, desc.Path, reqID)

	res, err := c.http.Do(req)
	if err != nil {
		// the call never reached a valid HTTP response
		c.logger.Warn("api: transport failure", desc.Path, reqID, err)
		return nil, core.NewTransportError("network connection failed", err)
	}
	defer func() { _ = res.Body.Close() }()

	return c.classify(res, desc, reqID)
}

func (c *Client) classify(res *http.Response, desc Descriptor, reqID string) (json.RawMessage, error) {
	if res.StatusCode == http.StatusUnauthorized {
		// the sole path that clears the token outside an explicit logout;
		// clearing an already-absent token is a harmless no-op
		c.tokens.ClearToken()
		c.logger.Info("api: session expired", desc.Path, reqID)
		if c.OnSessionExpired != nil {
			c.OnSessionExpired()
		}
		return nil, core.ErrSessionExpired
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.Warn("api: unexpected status", desc.Path, reqID, res.StatusCode)
		return nil, core.NewTransportError("network error", nil)
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, core.NewTransportError("malformed response", err)
	}

	if !env.Success {
		return nil, &core.BusinessError{Message: env.Message, Code: env.ErrorCode}
	}
	return env.Data, nil
}

// Get runs a GET operation.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.Do(ctx, Descriptor{Path: path, Method: http.MethodGet, Query: query})
}

// Post runs a POST operation with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	return c.Do(ctx, Descriptor{Path: path, Method: http.MethodPost, Body: body})
}
