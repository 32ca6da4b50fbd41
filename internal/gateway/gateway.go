// Package gateway is the single outbound channel to the ZippGo service. It
// injects the bearer credential into every request, runs the forced-logout
// protocol on a rejected session, and passes every other failure through to
// the caller untouched.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"zippgo/internal/common/contextx"
	logx "zippgo/internal/common/log"
)

const maxResponseBytes = 4 << 20 // 4 MiB

// SessionHooks is the narrow capability the gateway gets into the session:
// read the current token, and tear the session down. The gateway never sees
// the session's internals and never writes principal or token itself.
type SessionHooks interface {
	// CurrentToken returns the bearer token of the live session, if any.
	CurrentToken() (string, bool)
	// ForceLogout clears the credential store and the in-memory session.
	ForceLogout(ctx context.Context)
}

// envelope is the service's response wrapper: {success, message, data}.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Gateway dispatches requests against one base URL.
type Gateway struct {
	baseURL string
	client  *http.Client
	hooks   SessionHooks
	log     *slog.Logger

	// onForcedLogout tells the presentation layer to navigate to the
	// unauthenticated entry point. Optional.
	onForcedLogout func()
}

// New builds a gateway. baseURL has no trailing slash (e.g.
// "http://localhost:5000/api").
func New(baseURL string, timeout time.Duration, hooks SessionHooks, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		hooks:   hooks,
		log:     logger,
	}
}

// OnForcedLogout registers the UI-side redirect hook. Call before use, not
// concurrently with requests.
func (g *Gateway) OnForcedLogout(fn func()) {
	g.onForcedLogout = fn
}

// RequestOption mutates an outbound request before dispatch.
type RequestOption func(*http.Request)

// WithHeader sets an extra header on the request.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// WithIdempotencyKey marks the request with a client-generated key so the
// service can deduplicate a resubmitted booking.
func WithIdempotencyKey(key string) RequestOption {
	return WithHeader("X-Idempotency-Key", key)
}

// Get issues a GET and decodes the response payload into out (out may be nil).
func (g *Gateway) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return g.do(ctx, http.MethodGet, path, nil, "", out, opts...)
}

// Post issues a JSON POST. in may be nil for bodyless calls.
func (g *Gateway) Post(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	body, contentType, err := jsonBody(in)
	if err != nil {
		return err
	}
	return g.do(ctx, http.MethodPost, path, body, contentType, out, opts...)
}

// Put issues a JSON PUT.
func (g *Gateway) Put(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	body, contentType, err := jsonBody(in)
	if err != nil {
		return err
	}
	return g.do(ctx, http.MethodPut, path, body, contentType, out, opts...)
}

func jsonBody(in any) (io.Reader, string, error) {
	if in == nil {
		return nil, "", nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, "", fmt.Errorf("gateway: encode request: %w", err)
	}
	return bytes.NewReader(raw), "application/json", nil
}

// do runs one request end to end: credential injection, dispatch, and the
// 401 chokepoint. Every outbound call in the client funnels through here.
func (g *Gateway) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any, opts ...RequestOption) error {
	if contextx.GetRequestID(ctx) == "" {
		ctx = contextx.WithNewRequestID(ctx)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	req.Header.Set("X-Request-Id", contextx.GetRequestID(ctx))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Token comes from the session, not from storage, so an in-flight logout
	// cannot resurrect a cleared credential.
	if token, ok := g.hooks.CurrentToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	for _, opt := range opts {
		opt(req)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logx.Error(ctx, g.log, "gateway_dispatch", method+" "+path+" failed", err)
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("gateway: read response for %s %s: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.forceLogout(ctx, method, path)
		return ErrSessionInvalid
	}

	var env envelope
	envOK := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if envOK {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	payload := raw
	if envOK && len(env.Data) > 0 {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("gateway: decode response for %s %s: %w", method, path, err)
	}
	return nil
}

// forceLogout runs the forced-logout protocol exactly once per rejected
// response: session teardown first (store and memory), then the UI signal.
// It completes before do returns, so no later call can observe the stale
// token.
func (g *Gateway) forceLogout(ctx context.Context, method, path string) {
	logx.Info(ctx, g.log, "forced_logout", "session rejected on "+method+" "+path+", clearing credentials")
	g.hooks.ForceLogout(ctx)
	if g.onForcedLogout != nil {
		g.onForcedLogout()
	}
}
