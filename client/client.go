package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/acat-interview/interview-contract-tests/config"
	"github.com/acat-interview/interview-contract-tests/framework"
	"github.com/acat-interview/interview-contract-tests/servicedef"

	"github.com/alessio/shellescape"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	maxRedirects    = 10
)

// Client sends requests to the interview service. Cookies are not kept here but in a
// Session, so a single Client can be shared by every test.
type Client struct {
	cfg       *config.Config
	transport *http.Transport
	logger    framework.Logger
}

// Request describes one call to the service.
type Request struct {
	// Method defaults to POST.
	Method string
	// Endpoint is resolved to a path through the configuration. If it is empty, Path is
	// used as is.
	Endpoint servicedef.EndpointName
	Path     string
	// Payload is encoded as the JSON body. RawBody, if not nil, is sent instead, still
	// labeled as JSON.
	Payload interface{}
	RawBody []byte
	// FollowRedirects makes the client follow 3xx responses. By default the redirect
	// response itself is returned.
	FollowRedirects bool
}

// NewClient creates a Client for the service described by cfg. Requests and responses
// are logged to logger.
func NewClient(cfg *config.Config, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		cfg:       cfg,
		transport: http.DefaultTransport.(*http.Transport).Clone(),
		logger:    logger,
	}
}

// WithLogger returns a Client that shares this one's configuration and connections but
// logs to a different logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

// Config returns the configuration the client was created with.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// Close releases idle connections used for anonymous requests.
func (c *Client) Close() {
	c.transport.CloseIdleConnections()
}

// Send issues a request. If session is nil the request is anonymous: no cookies are sent
// and any that the service sets are only visible on the Response. Otherwise cookies are
// read from and stored into the session.
//
// The request is bounded by the configured request timeout. An error is returned only if
// no response was received; a 4xx status is not an error.
func (c *Client) Send(ctx context.Context, session *Session, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}
	path := req.Path
	if req.Endpoint != "" {
		path = c.cfg.Endpoint(req.Endpoint)
	}
	url := c.cfg.BaseURL() + path

	var body []byte
	switch {
	case req.RawBody != nil:
		body = req.RawBody
	case req.Payload != nil:
		data, err := json.Marshal(req.Payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request body for %s: %w", path, err)
		}
		body = data
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	hr, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	hr.Header.Set(requestIDHeader, uuid.NewString())

	logger := c.logger
	httpClient := &http.Client{
		Transport:     c.transport,
		CheckRedirect: checkRedirect(req.FollowRedirects),
	}
	if session != nil {
		logger = session.logger
		httpClient.Transport = session.transport
		httpClient.Jar = session.jar
	}

	logger.Printf(">> %s", curlCommand(hr, body))
	resp, err := httpClient.Do(hr)
	if err != nil {
		logger.Printf("<< error: %s", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}
	logger.Printf("<< %d %s", resp.StatusCode, string(respBody))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		cookies:    resp.Cookies(),
	}, nil
}

func checkRedirect(follow bool) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if !follow {
			return http.ErrUseLastResponse
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}
}

// curlCommand renders a request as a command line that reproduces it.
func curlCommand(req *http.Request, body []byte) string {
	args := []string{"curl", "-i", "-X", req.Method}
	for _, name := range []string{"Content-Type", requestIDHeader} {
		if v := req.Header.Get(name); v != "" {
			args = append(args, "-H", name+": "+v)
		}
	}
	if body != nil {
		args = append(args, "--data-raw", string(body))
	}
	args = append(args, req.URL.String())

	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
