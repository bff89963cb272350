// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gogama/httpredir/transient"
	"github.com/google/uuid"
)

// An Execution represents the state of a single Plan execution, that
// is of one redirect chain.
//
// An Execution is created when the client starts executing a plan. It
// is updated as each hop progresses and is ultimately returned from
// the plan execution.
//
// Timeout policies and event handlers may store values on an Execution
// using SetValue and read them back using Value. They should otherwise
// treat the exported fields as read-only, with the exception that
// BeforeHop handlers may make reasonable changes to Request (for
// example, to sign it).
type Execution struct {
	// ID uniquely identifies the execution. It is set before the
	// execution starts and is useful to correlate log records.
	ID uuid.UUID

	// Plan specifies the HTTP request plan being executed. It is never
	// nil and is never modified by the client.
	Plan *Plan

	// Current holds the request state for the current hop: the method,
	// URL, headers and body that will be, or were most recently, sent.
	// It starts as a clone of Plan with default headers applied, and
	// changes when a redirect is followed.
	Current *Plan

	// Start is the start time of the execution.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends.
	End time.Time

	// Hop is the zero-based number of the current hop. It is zero for
	// the initial request, one for the first redirect followed, and so
	// on.
	Hop int

	// Via holds the URLs already visited in the chain, oldest first.
	// The URL of a hop is appended once its response has been
	// identified as a redirect with a usable Location, just before the
	// redirect policy is consulted.
	Via []*url.URL

	// Location is the redirect target resolved from the most recent
	// redirect response, or nil if the most recent response was not a
	// redirect with a usable Location.
	Location *url.URL

	// Request specifies the HTTP request sent, or about to be sent, in
	// the current hop.
	Request *http.Request

	// Response specifies the HTTP response received in the current hop.
	// It is nil if the hop ended in a transport error, or before the
	// response arrives.
	Response *http.Response

	// Err is the error that ended the execution, if any. Whenever Err
	// is non-nil it has the type *httpredir.Error.
	Err error

	// Body is the complete body of the final response, decompressed
	// if the client decompresses responses. It is nil until the final
	// response has been read, and remains nil if the execution ends in
	// a transport error or a redirect policy error.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the HTTP response from the
// current hop. If there is no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the current hop. If
// there is no HTTP response, the nil header is returned.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}
	return e.Response.Header
}

// URL returns the URL actually fetched in the current hop. Once the
// execution has ended successfully, it is the URL the final response
// came from. It returns nil before the execution starts.
func (e *Execution) URL() *url.URL {
	if e.Response != nil && e.Response.Request != nil && e.Response.Request.URL != nil {
		return e.Response.Request.URL
	}
	if e.Request != nil && e.Request.URL != nil {
		return e.Request.URL
	}
	if e.Current != nil {
		return e.Current.URL
	}
	return nil
}

// Redirects returns the number of redirects followed so far.
func (e *Execution) Redirects() int {
	return e.Hop
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
func (e *Execution) Timeout() bool {
	return transient.IsTimeout(e.Err)
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type to avoid collisions between
// different handlers.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}
	return ctx.Value(key)
}
