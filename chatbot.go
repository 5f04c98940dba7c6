// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package chatopera

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Version is the version of this package.
const Version = "0.1.0"

// DefaultBaseURL is the Chatopera endpoint used when WithBaseURL is not
// provided.
const DefaultBaseURL = "https://bot.chatopera.com"

const chatbotPath = "/api/v1/chatbot/"

// HTTPClient represents the functionality we need from an *http.Client, or
// similar.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a client for the Chatopera chatbot API. Each method maps to a
// single HTTP endpoint, and every request carries a freshly signed
// Authorization token derived from the client ID and secret.
//
// A Client holds no mutable state after New returns, so one value can be used
// from multiple goroutines.
type Client struct {
	clientID     string
	clientSecret string

	c        HTTPClient
	endpoint string
	log      zerolog.Logger

	now   func() time.Time
	nonce func() int64
}

// Option configures optional fields of a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTPClient used to issue requests. If this option is
// not provided, http.DefaultClient is used. Any timeouts or cancellation beyond
// the request context are the responsibility of this client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		if hc != nil {
			c.c = hc
		}
	}
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(u, "/"); len(u) > 0 {
			c.endpoint = u
		}
	}
}

// WithLogger sets the logger used for per-request debug output. Tokens and
// secrets are never logged.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithClock replaces the time source used for the signature timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithNonce replaces the generator of the 10-digit random value included in
// each signature.
func WithNonce(nonce func() int64) Option {
	return func(c *Client) {
		if nonce != nil {
			c.nonce = nonce
		}
	}
}

// New returns a new *Client for the chatbot identified by clientID. It never
// fails: missing credentials result in requests with an empty Authorization
// header, which the service rejects with a non-200 status.
func New(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		c:            http.DefaultClient,
		endpoint:     DefaultBaseURL,
		log:          zerolog.Nop(),
		now:          time.Now,
		nonce:        randomNonce,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClientID returns the chatbot client ID this Client was built with.
func (c *Client) ClientID() string { return c.clientID }

// BaseURL returns the endpoint requests are sent to.
func (c *Client) BaseURL() string { return c.endpoint }

// botPath returns the path of a resource under this chatbot, for example
// botPath("faq", "query") returns "/api/v1/chatbot/<id>/faq/query".
func (c *Client) botPath(elem ...string) string {
	if len(elem) == 0 {
		return chatbotPath + c.clientID
	}

	return chatbotPath + c.clientID + "/" + strings.Join(elem, "/")
}

// do signs and sends the request, and reads the full response body. Any status
// other than 200 is returned as a *RemoteError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	req, err := newReq(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s request for %q", method, path)
	}

	setHeaders(req, c.Sign(method, path))

	start := time.Now()

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to make %s request to %q", method, path)
	}

	defer func() {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	p, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body of %s %q", method, path)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("bytes", len(p)).
		Dur("duration", time.Since(start)).
		Msg("chatopera request")

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       p,
		}
	}

	return p, nil
}

// request is do followed by parsing the body as a JSON Response.
func (c *Client) request(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	p, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	return parseResponse(p)
}

func (c *Client) get(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}
