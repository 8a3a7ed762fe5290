// Package http implements the authenticated transport shared by all resource
// clients.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
	"github.com/fivetwenty-io/pipedrive-client/pkg/pipedrive"
)

// TokenParam is the query parameter carrying the API token.
const TokenParam = "api_token"

const redacted = "REDACTED"

// Logger interface for the HTTP layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client issues authenticated requests and classifies the responses.
type Client struct {
	baseURL    string
	token      string
	httpClient *retryablehttp.Client
	logger     Logger
	debug      bool
	userAgent  string
	timeout    time.Duration
	timeoutSet bool
	customHTTP bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTimeout sets the per-request timeout. It also applies to a client
// passed with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
			c.timeoutSet = true
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client. The client is copied
// and keeps its own Timeout unless WithTimeout is also given.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient == nil {
			return
		}

		copied := *httpClient
		c.httpClient.HTTPClient = &copied
		c.customHTTP = true
	}
}

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   map[string]interface{}
	Body    map[string]interface{}
	Headers map[string]string
}

// Response holds the raw response and its unwrapped envelope.
type Response struct {
	StatusCode     int
	Header         http.Header
	Body           []byte
	Data           json.RawMessage
	AdditionalData json.RawMessage
}

type envelope struct {
	Success        *bool           `json:"success"`
	Data           json.RawMessage `json:"data"`
	AdditionalData json.RawMessage `json:"additional_data"`
}

// NewClient creates a transport for baseURL authenticated with token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
		timeout:    constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeoutSet || !client.customHTTP {
		client.httpClient.HTTPClient.Timeout = client.timeout
	}

	if client.logger != nil && client.debug {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// neverRetry stops after the first attempt. Context errors are surfaced so a
// cancelled call reports the cancellation.
func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request. Absent values are dropped from the query and body.
// Non-2xx responses become *pipedrive.APIError. Network errors keep the type
// net/http produced, with the token redacted from the URL they carry.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	query := encodeQuery(req.Query)
	logURL := c.buildURL(req.Path, query)

	if c.token != "" {
		query.Set(TokenParam, c.token)
	}

	reqURL := c.buildURL(req.Path, query)

	var rawBody interface{}

	if req.Body != nil {
		payload, err := json.Marshal(Compact(req.Body))
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = payload
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, reqURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    logURL,
	})

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = RedactURL(urlErr.URL)
		}

		return nil, err //nolint:wrapcheck // transport failures keep their original type
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"url":         logURL,
		"status_code": httpResp.StatusCode,
		"duration":    time.Since(start).String(),
	})

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, &pipedrive.APIError{
			Kind:       pipedrive.KindForStatus(httpResp.StatusCode),
			StatusCode: httpResp.StatusCode,
			Method:     req.Method,
			Path:       req.Path,
			Message:    pipedrive.ParseErrorBody(body),
		}
	}

	err = resp.unwrap()
	if err != nil {
		return resp, err
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query map[string]interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body map[string]interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body map[string]interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

func (c *Client) buildURL(path string, query url.Values) string {
	full := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	return full
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger == nil || !c.debug {
		return
	}

	c.logger.Debug(msg, fields)
}

// unwrap extracts data and additional_data. An empty body or a missing data
// member leaves Data nil.
func (r *Response) unwrap() error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}

	var env envelope

	err := json.Unmarshal(r.Body, &env)
	if err != nil {
		return fmt.Errorf("%w: %w", pipedrive.ErrInvalidResponse, err)
	}

	if !isNull(env.Data) {
		r.Data = env.Data
	}

	if !isNull(env.AdditionalData) {
		r.AdditionalData = env.AdditionalData
	}

	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// RedactURL hides the API token in a URL string.
func RedactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := parsed.Query()
	if !query.Has(TokenParam) {
		return raw
	}

	query.Set(TokenParam, redacted)
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
