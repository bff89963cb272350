// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gogama/httpredir/transient"
)

// A Kind classifies the failure behind an Error.
type Kind int

const (
	// Transport indicates the request could not be sent or its
	// response could not be received. It also covers requests which
	// could not be built: a malformed URL, an invalid method or an
	// invalid header.
	Transport Kind = iota
	// FormEncoding indicates a form body could not be encoded.
	FormEncoding
	// JSONEncoding indicates a JSON body could not be encoded.
	JSONEncoding
	// TooManyRedirects indicates the redirect policy refused to follow
	// any more redirects.
	TooManyRedirects
	// RedirectLoop indicates the redirect policy detected a redirect
	// to a URL already visited in the chain.
	RedirectLoop
)

var kindDescriptions = []string{
	"transport error",
	"form encoding error",
	"json encoding error",
	"too many redirects",
	"redirect loop detected",
}

// String returns a short human-readable description of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindDescriptions) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindDescriptions[k]
}

var (
	// ErrTooManyRedirects matches, using errors.Is, any Error whose
	// Kind is TooManyRedirects.
	ErrTooManyRedirects = &Error{Kind: TooManyRedirects}
	// ErrRedirectLoop matches, using errors.Is, any Error whose Kind is
	// RedirectLoop.
	ErrRedirectLoop = &Error{Kind: RedirectLoop}
)

// An Error is returned by Client.Do and RequestBuilder.Send when an
// execution fails.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// URL is the URL in flight when the failure occurred. It is nil if
	// the failure happened before any URL was known.
	URL *url.URL
	// Err is the underlying cause. It is nil for the redirect policy
	// kinds TooManyRedirects and RedirectLoop.
	Err error
}

func (err *Error) Error() string {
	msg := err.Kind.String()
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	if err.URL != nil {
		return err.URL.String() + ": " + msg
	}
	return msg
}

// Unwrap returns the underlying cause.
func (err *Error) Unwrap() error {
	return err.Err
}

// Is reports whether target is one of the sentinel errors
// ErrTooManyRedirects or ErrRedirectLoop and has the same Kind as err.
func (err *Error) Is(target error) bool {
	switch target {
	case ErrTooManyRedirects, ErrRedirectLoop:
		return err.Kind == target.(*Error).Kind
	}
	return false
}

// Timeout reports whether the error was caused by a timeout, either of
// a single hop or of the whole execution.
func (err *Error) Timeout() bool {
	return err.Err != nil && transient.IsTimeout(err.Err)
}

func loopDetected(u *url.URL) *Error {
	return &Error{Kind: RedirectLoop, URL: u}
}

func tooManyRedirects(u *url.URL) *Error {
	return &Error{Kind: TooManyRedirects, URL: u}
}

// wrapErr converts err into an *Error of the given kind. An err which
// already is an *Error is returned unchanged. A *url.Error produced by
// the transport is unwrapped since Error carries the URL itself.
func wrapErr(kind Kind, err error, u *url.URL) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		err = ue.Err
	}
	return &Error{Kind: kind, URL: u, Err: err}
}
