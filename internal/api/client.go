package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/lcaruso/corkboard/internal/logger"
)

// genericError is what callers see for any transport-level failure. The
// underlying cause only goes to the log.
const genericError = "network error, please try again"

// TokenSource supplies the current session token, or "" when there is none.
type TokenSource func() string

// Client is the remote call gateway: a single-channel request/response
// wrapper around the board service endpoint. Call never returns a Go error
// and never panics on transport problems; every failure is normalized into
// Response{Success: false} so callers only ever branch on Success.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
	token    TokenSource
}

type ClientOptions struct {
	Timeout time.Duration
	// RPS and Burst configure the client-side token bucket pacing calls
	// to the remote endpoint. RPS of 0 disables pacing.
	RPS   float64
	Burst int
}

func NewClient(endpoint string, token TokenSource, opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	var limiter *rate.Limiter
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		limiter:  limiter,
		token:    token,
	}
}

// Call issues action with the current session token.
func (c *Client) Call(ctx context.Context, action string, params map[string]any) Response {
	var tok *string
	if c.token != nil {
		if t := c.token(); t != "" {
			tok = &t
		}
	}
	return c.call(ctx, action, params, tok)
}

// CallAs issues action with an explicit token, overriding the token
// source. Needed during the login to initial-data bootstrap window before
// the session state holds the token.
func (c *Client) CallAs(ctx context.Context, action string, params map[string]any, token string) Response {
	var tok *string
	if token != "" {
		tok = &token
	}
	return c.call(ctx, action, params, tok)
}

func (c *Client) call(ctx context.Context, action string, params map[string]any, token *string) Response {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return c.fail(action, err)
		}
	}
	if params == nil {
		params = map[string]any{}
	}
	body, err := json.Marshal(Request{Action: action, Params: params, SessionToken: token})
	if err != nil {
		return c.fail(action, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(action, err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return c.fail(action, err)
	}
	// Well-formed server responses pass through unchanged, success or not.
	return out
}

func (c *Client) fail(action string, err error) Response {
	logger.Warnf("api: %s: %v", action, err)
	return Response{Success: false, Error: genericError}
}
