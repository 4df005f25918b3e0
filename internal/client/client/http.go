package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/celerix-dev/flowclient/internal/common"
	"github.com/celerix-dev/flowclient/internal/logging"
)

const maxBodyBytes = 32 << 20

// Request describes one call against the backend. Path is resolved against
// the client's base URL. A nil Body sends no body; []byte and
// json.RawMessage are sent verbatim, anything else is JSON-encoded and
// Content-Type is set accordingly.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   any
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	StatusText string
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Err returns nil for 2xx responses and a *StatusError otherwise. The
// backend's {"error": "..."} body, when present, becomes the Message.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	se := &StatusError{Code: r.StatusCode, Status: r.StatusText}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(r.Body, &body) == nil {
		se.Message = body.Error
	}
	return se
}

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. The default has no
// timeout; callers bound requests through the context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{baseURL: u, http: &http.Client{}, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// resolve joins the base URL and an already-escaped request path.
func (c *HTTPClient) resolve(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL.String() + path
	if _, err := url.Parse(target); err != nil {
		return "", err
	}
	return target, nil
}

// Do sends req and reads the whole response. The returned error is non-nil
// only when no HTTP response was obtained; it then wraps ErrUnavailable
// (or the context error). Non-2xx statuses are reported through the
// Response, see (*Response).Err.
func (c *HTTPClient) Do(ctx context.Context, req Request) (*Response, error) {
	target, err := c.resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", req.Path, err)
	}

	var body io.Reader
	isJSON := false
	switch b := req.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(b)
	case json.RawMessage:
		body = bytes.NewReader(b)
		isJSON = true
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
		isJSON = true
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if isJSON && httpReq.Header.Get(common.HeaderContentType) == "" {
		httpReq.Header.Set(common.HeaderContentType, common.ContentTypeJSON)
	}

	c.log.Debug(ctx, "http request", "method", method, "url", target)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w: %w", method, req.Path, ErrUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%s %s: %w: %v", method, req.Path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w: %v", method, req.Path, ErrUnavailable, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       data,
	}, nil
}

// statusText returns the reason phrase without the numeric code.
func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// Version asks the backend for its build version (GET /api/version). It
// doubles as the liveness probe of the CLI's online-status watcher.
func (c *HTTPClient) Version(ctx context.Context) (string, error) {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/api/version"})
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}
	var v struct {
		Version string `json:"version"`
	}
	if err := resp.DecodeJSON(&v); err != nil {
		return "", fmt.Errorf("decode version: %w", err)
	}
	return v.Version, nil
}
