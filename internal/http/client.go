package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/ybcloud-client/internal/auth"
	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/propagation"
)

// Request is a single HTTP call against the API.
type Request struct {
	Operation string
	Method    string
	Path      string
	Query     url.Values
	Body      interface{}
	Headers   map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport. It implements ybapi.Transport.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	httpClient   *retryablehttp.Client
	userAgent    string
	logger       ybapi.Logger
	debug        bool
	interceptors *ybapi.InterceptorChain
	propagator   propagation.TextMapPropagator
}

// Option configures the HTTP client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger ybapi.Logger) Option {
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

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets retry count and backoff bounds. Retries apply to
// connection errors, 429 and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors sets the request/response interceptor chain.
func WithInterceptors(chain *ybapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithPropagator sets how trace context is written into outgoing headers.
func WithPropagator(propagator propagation.TextMapPropagator) Option {
	return func(c *Client) {
		c.propagator = propagator
	}
}

// NewClient creates an HTTP client for baseURL. tokenManager may be nil for
// unauthenticated endpoints.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.ExtendedRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    constants.DefaultUserAgent,
		logger:       ybapi.NoopLogger{},
		interceptors: ybapi.NewInterceptorChain(),
		propagator:   propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Execute sends a resolved query-layer request and returns the raw payload.
func (c *Client) Execute(ctx context.Context, req *ybapi.Request) (json.RawMessage, error) {
	resp, err := c.Do(ctx, &Request{
		Operation: req.Operation,
		Method:    req.Method,
		Path:      req.Path,
		Query:     req.Values(),
		Body:      req.Body,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}

	return json.RawMessage(resp.Body), nil
}

// Do performs the request. For non-2xx responses the response is returned
// together with a *ybapi.APIError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	wire, err := c.newWireRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, wire)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     wire.Method,
			"url":        wire.URL,
			"request_id": wire.Headers.Get(constants.HeaderRequestID),
		})
	}

	var rawBody interface{}
	if wire.Body != nil {
		rawBody = wire.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, wire.Method, wire.URL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = wire.Headers

	startTime := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		_ = c.interceptors.ExecuteResponseInterceptors(ctx, wire, &ybapi.WireResponse{Error: err})

		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, wire, &ybapi.WireResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	})
	if err != nil {
		return resp, err
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status_code": resp.StatusCode,
			"url":         wire.URL,
			"duration":    time.Since(startTime).String(),
		})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, ybapi.ParseAPIError(resp.StatusCode, resp.Body)
	}

	return resp, nil
}

func (c *Client) newWireRequest(ctx context.Context, req *Request) (*ybapi.WireRequest, error) {
	target, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return nil, fmt.Errorf("parsing request URL: %w", err)
	}

	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	headers := make(http.Header)
	headers.Set("Accept", constants.ContentTypeJSON)
	headers.Set("User-Agent", c.userAgent)
	headers.Set(constants.HeaderRequestID, uuid.NewString())

	var body []byte

	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		headers.Set("Content-Type", constants.ContentTypeJSON)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		headers.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	c.propagator.Inject(ctx, propagation.HeaderCarrier(headers))

	return &ybapi.WireRequest{
		Operation: req.Operation,
		Method:    req.Method,
		URL:       target.String(),
		Headers:   headers,
		Body:      body,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
