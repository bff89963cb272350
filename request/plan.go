// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "httpredir/request: nil context"
)

// A Plan describes one logical HTTP request, which may result in
// several wire requests as redirects are followed.
//
// The field structure of Plan mirrors the client-side fields of
// http.Request, except that Body is a *Body which knows whether it can
// be sent more than once.
//
// The redirect engine never modifies a Plan handed to it. It works on
// a clone (Execution.Current) whose method, URL, header and body evolve
// from hop to hop.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent by the
	// client.
	Header http.Header

	// Body is the request body. A nil body indicates no request body
	// should be sent.
	Body *Body

	// Close stipulates whether to close the connection after sending
	// each request and reading the response.
	Close bool

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host is sent. The engine clears an override when a
	// redirect moves the chain to a different host.
	Host string

	// ctx allows the entire Plan execution to be cancelled. It should
	// only be modified by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional body.
//
// Parameter body may be any value accepted by NewBody.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !ValidMethod(method) {
		return nil, fmt.Errorf("httpredir/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := NewBody(body)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
	}, nil
}

// Context returns the request plan's context. The returned context is
// always non-nil; it defaults to the background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
//
// The context controls the entire lifetime of the plan execution,
// across every redirect hop.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// Clone returns a copy of p which shares no mutable state with p
// except the Body, which is never modified. Changing the clone's URL,
// Header or Method leaves p untouched.
func (p *Plan) Clone() *Plan {
	p2 := new(Plan)
	*p2 = *p
	if p.URL != nil {
		u := *p.URL
		if p.URL.User != nil {
			user := *p.URL.User
			u.User = &user
		}
		p2.URL = &u
	}
	p2.Header = p.Header.Clone()
	if p2.Header == nil {
		p2.Header = make(http.Header)
	}
	return p2
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line,
// separated by semicolons.
func (p *Plan) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the request plan's Authorization header to use HTTP
// Basic Authentication with the provided username and password.
//
// Unless the client is configured to keep sensitive headers, the
// Authorization header is dropped when a redirect leaves the original
// host.
func (p *Plan) SetBasicAuth(username, password string) {
	p.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// ToRequest creates an HTTP request corresponding to the plan. The
// context of the new request is set to ctx, which may not be nil.
//
// A resettable body is given a GetBody function so the transport can
// replay it. A stream body is handed over as is, and is spent once the
// request has been sent.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header
	if !p.Body.empty() {
		b := p.Body
		r.Body = b.reader()
		r.ContentLength = b.Len()
		if b.Resettable() {
			r.GetBody = func() (io.ReadCloser, error) {
				return b.reader(), nil
			}
		}
	}
	r.Close = p.Close
	r.Host = p.Host
	return r
}

// ValidMethod reports whether method is a valid HTTP method token as
// defined in RFC 7230 section 3.1.1. The empty string is valid and
// means GET.
func ValidMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// basicAuth is lifted verbatim from net/http/client.go.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
