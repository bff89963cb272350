// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/gogama/httpredir/request"
	"github.com/google/go-querystring/query"
	"golang.org/x/net/http/httpguts"
)

// A RequestBuilder accumulates the method, URL, headers and body of one
// logical request. Create one with a Client method such as Get or Post,
// chain setters, and finish with Send.
//
// Setters never fail immediately. The first error from building the
// request (an invalid URL or header) is kept and returned by Send and
// Plan. A body encoding error is kept separately and is replaced by the
// next successful call to Body, Form or JSON.
//
// A RequestBuilder must not be used by more than one goroutine at a
// time.
type RequestBuilder struct {
	client  *Client
	plan    *request.Plan
	err     *Error
	bodyErr *Error
}

// Request returns a builder for a request with the given method and
// URL. An empty method means GET.
func (c *Client) Request(method, url string) *RequestBuilder {
	rb := &RequestBuilder{client: c}
	p, err := request.NewPlan(method, url, nil)
	if err != nil {
		rb.err = wrapErr(Transport, err, nil)
		return rb
	}
	rb.plan = p
	return rb
}

// Header adds the value to the header key. Existing values for key are
// kept.
func (rb *RequestBuilder) Header(key, value string) *RequestBuilder {
	if rb.plan == nil {
		return rb
	}
	if !httpguts.ValidHeaderFieldName(key) {
		rb.setErr(fmt.Errorf("invalid header field name %q", key))
	} else if !httpguts.ValidHeaderFieldValue(value) {
		rb.setErr(fmt.Errorf("invalid header field value for %q", key))
	} else {
		rb.plan.Header.Add(key, value)
	}
	return rb
}

// Headers adds every value in h.
func (rb *RequestBuilder) Headers(h http.Header) *RequestBuilder {
	for k, vs := range h {
		for _, v := range vs {
			rb.Header(k, v)
		}
	}
	return rb
}

// Body sets the request body. Parameter b may be any value accepted by
// request.NewBody. Bytes and in-memory readers give a resettable body;
// any other io.Reader gives a stream body, which prevents 307 and 308
// redirects from being followed.
func (rb *RequestBuilder) Body(b interface{}) *RequestBuilder {
	if rb.plan == nil {
		return rb
	}
	body, err := request.NewBody(b)
	if err != nil {
		rb.bodyErr = wrapErr(Transport, err, rb.plan.URL)
		return rb
	}
	rb.plan.Body = body
	rb.bodyErr = nil
	return rb
}

// Form sets the body to the URL-encoded form of v and the Content-Type
// to application/x-www-form-urlencoded. Parameter v may be a
// url.Values, map[string]string, map[string][]string, or a struct (or
// pointer to struct) tagged for github.com/google/go-querystring.
func (rb *RequestBuilder) Form(v interface{}) *RequestBuilder {
	if rb.plan == nil {
		return rb
	}
	values, err := formValues(v)
	if err != nil {
		rb.bodyErr = wrapErr(FormEncoding, err, rb.plan.URL)
		return rb
	}
	rb.plan.Body = request.BytesBody([]byte(values.Encode()))
	rb.plan.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rb.bodyErr = nil
	return rb
}

func formValues(v interface{}) (url.Values, error) {
	switch x := v.(type) {
	case url.Values:
		return x, nil
	case map[string][]string:
		return x, nil
	case map[string]string:
		values := make(url.Values, len(x))
		for k, s := range x {
			values.Set(k, s)
		}
		return values, nil
	default:
		return query.Values(v)
	}
}

// JSON sets the body to the JSON encoding of v and the Content-Type to
// application/json.
func (rb *RequestBuilder) JSON(v interface{}) *RequestBuilder {
	if rb.plan == nil {
		return rb
	}
	b, err := json.Marshal(v)
	if err != nil {
		rb.bodyErr = wrapErr(JSONEncoding, err, rb.plan.URL)
		return rb
	}
	rb.plan.Body = request.BytesBody(b)
	rb.plan.Header.Set("Content-Type", "application/json")
	rb.bodyErr = nil
	return rb
}

// BasicAuth sets the Authorization header to use HTTP Basic
// Authentication with the given username and password.
func (rb *RequestBuilder) BasicAuth(username, password string) *RequestBuilder {
	if rb.plan != nil {
		rb.plan.SetBasicAuth(username, password)
	}
	return rb
}

// Cookie adds a cookie to the request.
func (rb *RequestBuilder) Cookie(c *http.Cookie) *RequestBuilder {
	if rb.plan != nil {
		rb.plan.AddCookie(c)
	}
	return rb
}

// WithContext sets the context which bounds the whole execution,
// including every redirect hop. The context must be non-nil.
func (rb *RequestBuilder) WithContext(ctx context.Context) *RequestBuilder {
	if rb.plan != nil {
		rb.plan = rb.plan.WithContext(ctx)
	}
	return rb
}

// Plan returns the request plan built so far, or the first error
// recorded while building it.
func (rb *RequestBuilder) Plan() (*request.Plan, error) {
	if rb.err != nil {
		return nil, rb.err
	}
	if rb.bodyErr != nil {
		return nil, rb.bodyErr
	}
	return rb.plan, nil
}

// Send executes the built plan with the builder's client. If building
// the plan failed, Send returns a nil Execution and the build error.
func (rb *RequestBuilder) Send() (*request.Execution, error) {
	p, err := rb.Plan()
	if err != nil {
		return nil, err
	}
	return rb.client.Do(p)
}

func (rb *RequestBuilder) setErr(err error) {
	if rb.err == nil {
		rb.err = wrapErr(Transport, err, rb.plan.URL)
	}
}
