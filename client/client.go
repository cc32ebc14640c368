// Package client is the HTTP side of the contract tests: it sends requests to the API under
// test and captures everything the assertions need to look at in the response.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kasir-api/pos-contract-tests/framework"

	"github.com/jmespath/go-jmespath"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const jsonMediaType = "application/json"

// Client sends requests to one fixed base URL. It never retries; a transport error is returned
// to the caller as-is.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets an overall timeout per request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = timeout
		c.httpClient = &hc
	}
}

// New creates a Client for the given base URL, such as "https://kasir-api.zelz.my.id".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     framework.NullLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithLogger returns a copy of the client that writes request and response details to the
// specified logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOption adds something to a single request.
type RequestOption func(*http.Request)

// WithBearerToken sets the Authorization header.
func WithBearerToken(token string) RequestOption {
	return WithHeader("Authorization", "Bearer "+token)
}

func WithHeader(name, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(name, value) }
}

func (c *Client) Post(path string, payload interface{}, opts ...RequestOption) (*Response, error) {
	return c.Do(http.MethodPost, path, payload, opts...)
}

func (c *Client) Get(path string, opts ...RequestOption) (*Response, error) {
	return c.Do(http.MethodGet, path, nil, opts...)
}

func (c *Client) Put(path string, payload interface{}, opts ...RequestOption) (*Response, error) {
	return c.Do(http.MethodPut, path, payload, opts...)
}

func (c *Client) Delete(path string, opts ...RequestOption) (*Response, error) {
	return c.Do(http.MethodDelete, path, nil, opts...)
}

// Do sends a request and reads the whole response. If payload is non-nil it is sent as a
// JSON body. The elapsed time covers sending the request and reading the response body.
func (c *Client) Do(method, path string, payload interface{}, opts ...RequestOption) (*Response, error) {
	var body io.Reader
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("can't encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", jsonMediaType)
	if payload != nil {
		req.Header.Set("Content-Type", jsonMediaType)
	}
	for _, o := range opts {
		o(req)
	}

	if payload != nil {
		c.logger.Printf("%s %s %s", method, url, string(data))
	} else {
		c.logger.Printf("%s %s", method, url)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("Request failed: %s", err)
		return nil, err
	}
	respData, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("error reading response body from %s %s: %w", method, path, err)
	}

	c.logger.Printf("Response %d after %s: %s", resp.StatusCode, elapsed, string(respData))
	return newResponse(resp.StatusCode, resp.Header, respData, elapsed), nil
}

// Response is everything a test needs to know about one HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// JSON is the parsed body, or a null value if the body was empty or not valid JSON.
	JSON    ldvalue.Value
	Elapsed time.Duration
}

func newResponse(status int, header http.Header, body []byte, elapsed time.Duration) *Response {
	r := &Response{
		StatusCode: status,
		Header:     header,
		Body:       body,
		JSON:       ldvalue.Null(),
		Elapsed:    elapsed,
	}
	if len(bytes.TrimSpace(body)) > 0 && json.Valid(body) {
		r.JSON = ldvalue.Parse(body)
	}
	return r
}

// ContentType returns the Content-Type header of the response.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Search evaluates a JMESPath expression against the response body, such as
// "data.accessToken".
func (r *Response) Search(expression string) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(r.Body, &doc); err != nil {
		return nil, fmt.Errorf("response body is not valid JSON: %w", err)
	}
	result, err := jmespath.Search(expression, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expression, err)
	}
	return result, nil
}

// SearchString is like Search, but requires the result to be a non-empty string.
func (r *Response) SearchString(expression string) (string, error) {
	result, err := r.Search(expression)
	if err != nil {
		return "", err
	}
	s, ok := result.(string)
	if !ok {
		if result == nil {
			return "", fmt.Errorf("%s was not found in the response", expression)
		}
		return "", fmt.Errorf("%s was not a string: %v", expression, result)
	}
	if s == "" {
		return "", fmt.Errorf("%s was an empty string", expression)
	}
	return s, nil
}
