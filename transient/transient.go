// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means a new attempt is very unlikely to succeed. Every other
// category means the failure may clear up on its own.
type Category int

const (
	// Not indicates any non-transient error, and the nil error.
	Not Category = iota
	// Timeout indicates a client-side timeout: the error, or one of
	// its wrapped causes, has a Timeout method that reports true, or
	// is context.DeadlineExceeded.
	Timeout
	// Canceled indicates the request context was canceled by the
	// caller. It is transient only in the sense that the server never
	// got to answer.
	Canceled
	// ConnRefused indicates the remote host refused the connection
	// (syscall.ECONNREFUSED). A service that is restarting is briefly
	// not listening, so refusal is treated as transient.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection (syscall.ECONNRESET).
	ConnReset
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"Canceled",
	"ConnRefused",
	"ConnReset",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err. Wrapped causes
// are inspected, not just err itself. Temporary methods are ignored
// because their meaning was never well defined.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	if errors.Is(err, context.Canceled) {
		return Canceled
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	return Not
}

// IsTimeout reports whether Categorize(err) is Timeout.
func IsTimeout(err error) bool {
	return Categorize(err) == Timeout
}

type hasTimeout interface {
	Timeout() bool
}
