// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"log/slog"
	"time"

	"github.com/gogama/httpredir/redirect"
	"github.com/gogama/httpredir/request"
	"github.com/gogama/httpredir/timeout"
	"github.com/google/uuid"
)

// A Client sends HTTP requests and resolves their redirect chains
// according to a redirect policy.
//
// A Client is safe for concurrent use by multiple goroutines. Copies
// of a *Client share one configuration, so settings changed through
// one are seen by all. Configuration changes never affect an execution
// already in progress: each call to Do takes a snapshot of the
// configuration when it starts.
//
// Client builds on an HTTPDoer, which sends exactly one wire request
// per hop. On top of it Client adds:
//
// • redirect following governed by a redirect.Policy, with the method
// and body rules of RFC 7231 and RFC 7538;
//
// • per-hop timeouts governed by a timeout.Policy;
//
// • default request headers and transparent gzip decoding;
//
// • removal of credentials when a redirect leaves the original host;
// and
//
// • event handlers invoked at designated points in the redirect loop.
type Client struct {
	cfg *config
}

// NewClient returns a client with the default configuration.
func NewClient() (*Client, error) {
	return NewClientWithConfig(Config{})
}

// NewClientWithConfig returns a client built from c. An error is
// returned if c contains an invalid user agent or a nil *http.Client.
func NewClientWithConfig(c Config) (*Client, error) {
	cfg, err := newConfig(c)
	if err != nil {
		return nil, err
	}
	return &Client{cfg: cfg}, nil
}

// Get returns a builder for a GET request to url.
func (c *Client) Get(url string) *RequestBuilder {
	return c.Request("GET", url)
}

// Post returns a builder for a POST request to url.
func (c *Client) Post(url string) *RequestBuilder {
	return c.Request("POST", url)
}

// Put returns a builder for a PUT request to url.
func (c *Client) Put(url string) *RequestBuilder {
	return c.Request("PUT", url)
}

// Patch returns a builder for a PATCH request to url.
func (c *Client) Patch(url string) *RequestBuilder {
	return c.Request("PATCH", url)
}

// Delete returns a builder for a DELETE request to url.
func (c *Client) Delete(url string) *RequestBuilder {
	return c.Request("DELETE", url)
}

// Head returns a builder for a HEAD request to url.
func (c *Client) Head(url string) *RequestBuilder {
	return c.Request("HEAD", url)
}

// Options returns a builder for an OPTIONS request to url.
func (c *Client) Options(url string) *RequestBuilder {
	return c.Request("OPTIONS", url)
}

// SetGzip turns automatic response decompression on or off.
func (c *Client) SetGzip(enable bool) {
	c.cfg.gzip.Store(enable)
}

// Gzip reports whether automatic response decompression is on.
func (c *Client) Gzip() bool {
	return c.cfg.gzip.Load()
}

// SetRedirect replaces the redirect policy. A nil policy restores
// redirect.Default.
func (c *Client) SetRedirect(p redirect.Policy) {
	if p == nil {
		p = redirect.Default
	}
	c.cfg.policyMu.Lock()
	c.cfg.policy = p
	c.cfg.policyMu.Unlock()
}

// Redirect returns the current redirect policy.
func (c *Client) Redirect() redirect.Policy {
	c.cfg.policyMu.Lock()
	defer c.cfg.policyMu.Unlock()
	return c.cfg.policy
}

// SetTimeout sets a fixed timeout for every hop. A zero or negative
// duration removes the hop timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d <= 0 {
		c.SetTimeoutPolicy(timeout.Infinite)
		return
	}
	c.SetTimeoutPolicy(timeout.Fixed(d))
}

// SetTimeoutPolicy replaces the hop timeout policy. A nil policy
// restores timeout.DefaultPolicy.
func (c *Client) SetTimeoutPolicy(p timeout.Policy) {
	if p == nil {
		p = timeout.DefaultPolicy
	}
	c.cfg.doerMu.Lock()
	c.cfg.timeout = p
	c.cfg.doerMu.Unlock()
}

// Do executes an HTTP request plan, following redirects as the
// redirect policy allows, and returns the results.
//
// The chain ends without error when a response is not a redirect, when
// a redirect has no usable Location header, when a 307 or 308 redirect
// would need to resend a stream body, or when the policy returns
// redirect.Stop. In all these cases the last response received is the
// final response: its body is read into Execution.Body and
// Execution.Response.Body is closed.
//
// The chain ends in an error of type *Error if a hop fails to send or
// receive, if the final body cannot be read, or if the policy returns
// redirect.LoopDetected or redirect.TooManyRedirects. The error is
// also stored in Execution.Err.
//
// The returned Execution is never nil.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	ch := c.cfg.snapshot()
	e := &request.Execution{
		ID:   uuid.New(),
		Plan: p,
	}
	ch.log = ch.logger.With(slog.String("execution", e.ID.String()))

	ch.handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()
	e.Current = ch.prepare(p)

	for {
		next := ch.hop(e)
		if next == nil {
			break
		}
		e.Current = next
		e.Hop++
	}

	e.End = time.Now()
	ch.handlers.run(AfterExecutionEnd, e)
	return e, e.Err
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer, if it has one.
func (c *Client) CloseIdleConnections() {
	c.cfg.doerMu.RLock()
	doer := c.cfg.doer
	c.cfg.doerMu.RUnlock()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
