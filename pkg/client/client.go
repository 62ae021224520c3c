package client

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	"github.com/investorion/cli/pkg/config"
	"github.com/investorion/cli/pkg/credentials"
	cerrors "github.com/investorion/cli/pkg/errors"
	"github.com/investorion/cli/pkg/logger"
)

// Client is the single choke point for Investorion API calls. It resolves
// paths against the configured base URL, injects the bearer token, and on a
// 401 performs one token refresh followed by one retry of the original
// request. Concurrent 401s share a single refresh call.
type Client struct {
	http    *resty.Client
	store   credentials.Store
	refresh singleflight.Group
}

// FileUpload describes a multipart file field. Content is buffered so the
// request can be re-issued after a token refresh.
type FileUpload struct {
	Param   string
	Name    string
	Content []byte
}

// Options configures a single request.
type Options struct {
	Body    interface{} // JSON-encoded unless Form or File is set
	Form    url.Values  // sent as application/x-www-form-urlencoded
	File    *FileUpload // sent as multipart/form-data
	Query   url.Values
	Headers map[string]string
	NoAuth  bool // skip bearer injection (token grant, refresh)
}

// New creates a client against the given base URL using the given token
// store.
func New(baseURL string, timeout time.Duration, store credentials.Store) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", "Investorion-CLI/0.1.0")

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode())
		return nil
	})

	return &Client{http: httpClient, store: store}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Store returns the token store backing this client.
func (c *Client) Store() credentials.Store {
	return c.store
}

// apiPath namespaces a path under the version prefix unless the caller
// already passed a fully qualified API path.
func apiPath(path string) string {
	if strings.HasPrefix(path, "/api") {
		return path
	}
	return "/api/v1" + path
}

// Do issues a request and returns the raw response body. A 204 or empty body
// yields nil bytes without error.
func (c *Client) Do(method, path string, opts *Options) ([]byte, error) {
	return c.do(method, path, opts, true)
}

// DoJSON issues a request and decodes a JSON response body into out. A nil
// out or an empty body is accepted; when out is a *string the raw body text
// is assigned without JSON parsing.
func (c *Client) DoJSON(method, path string, opts *Options, out interface{}) error {
	body, err := c.do(method, path, opts, true)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if raw, ok := out.(*string); ok {
		*raw = string(body)
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) do(method, path string, opts *Options, allowRetry bool) ([]byte, error) {
	if opts == nil {
		opts = &Options{}
	}

	req := c.http.R()
	for k, v := range opts.Headers {
		req.SetHeader(k, v)
	}
	if opts.Query != nil {
		req.SetQueryParamsFromValues(opts.Query)
	}

	switch {
	case opts.Form != nil:
		req.SetHeader("Content-Type", "application/x-www-form-urlencoded")
		req.SetBody(opts.Form.Encode())
	case opts.File != nil:
		req.SetFileReader(opts.File.Param, opts.File.Name, bytes.NewReader(opts.File.Content))
	case opts.Body != nil:
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, err
		}
		if req.Header.Get("Content-Type") == "" {
			req.SetHeader("Content-Type", "application/json")
		}
		req.SetBody(data)
	}

	if !opts.NoAuth && req.Header.Get("Authorization") == "" {
		if pair := c.store.Get(); pair != nil {
			req.SetHeader("Authorization", "Bearer "+pair.AccessToken)
		}
	}

	resp, err := req.Execute(method, apiPath(path))
	if err != nil {
		// Transport failure, surfaced as-is.
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized && allowRetry {
		pair := c.store.Get()
		if pair != nil && pair.RefreshToken != "" {
			if rerr := c.refreshTokens(); rerr == nil {
				// Exactly one retry; a second 401 surfaces as failure.
				return c.do(method, path, opts, false)
			}
			c.store.Clear()
			return nil, cerrors.SessionExpiredError()
		}
	}

	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}

	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	return resp.Body(), nil
}

// refreshTokens exchanges the stored refresh token for a fresh pair. The
// exchange is single-flight: concurrent callers share one refresh call and
// its outcome. Any non-success response clears the stored pair.
func (c *Client) refreshTokens() error {
	_, err, _ := c.refresh.Do("refresh", func() (interface{}, error) {
		pair := c.store.Get()
		if pair == nil {
			return nil, cerrors.SessionExpiredError()
		}

		logger.Debug("Refreshing access token")

		data, err := json.Marshal(map[string]string{"refresh_token": pair.RefreshToken})
		if err != nil {
			return nil, err
		}

		resp, err := c.http.R().
			SetHeader("Content-Type", "application/json").
			SetBody(data).
			Post(apiPath("/auth/refresh"))
		if err != nil {
			return nil, err
		}

		if !resp.IsSuccess() {
			c.store.Clear()
			return nil, cerrors.SessionExpiredError()
		}

		var refreshed credentials.TokenPair
		if err := json.Unmarshal(resp.Body(), &refreshed); err != nil {
			c.store.Clear()
			return nil, cerrors.SessionExpiredError()
		}
		if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
			c.store.Clear()
			return nil, cerrors.SessionExpiredError()
		}

		if err := c.store.Save(refreshed); err != nil {
			return nil, err
		}

		logger.Debug("Access token refreshed")
		return nil, nil
	})
	return err
}

var defaultClient *Client

// Init initializes the default client from configuration. A client already
// installed with SetDefault is kept.
func Init() {
	if defaultClient != nil {
		return
	}
	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second
	defaultClient = New(baseURL, timeout, credentials.Default())
}

// Default returns the default client, initializing it on first use.
func Default() *Client {
	if defaultClient == nil {
		Init()
	}
	return defaultClient
}

// SetDefault replaces the default client.
func SetDefault(c *Client) {
	defaultClient = c
}
