// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "transport error", Transport.String())
	assert.Equal(t, "form encoding error", FormEncoding.String())
	assert.Equal(t, "json encoding error", JSONEncoding.String())
	assert.Equal(t, "too many redirects", TooManyRedirects.String())
	assert.Equal(t, "redirect loop detected", RedirectLoop.String())
	assert.Equal(t, "Kind(-1)", Kind(-1).String())
	assert.Equal(t, "Kind(5)", Kind(5).String())
}

func TestError_Error(t *testing.T) {
	u, err := url.Parse("http://a/1")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"no url no cause", &Error{Kind: FormEncoding}, "form encoding error"},
		{"no url with cause", &Error{Kind: JSONEncoding, Err: errors.New("bad")}, "json encoding error: bad"},
		{"loop", loopDetected(u), "http://a/1: redirect loop detected"},
		{"too many", tooManyRedirects(u), "http://a/1: too many redirects"},
		{"transport", &Error{Kind: Transport, URL: u, Err: syscall.ECONNREFUSED}, "http://a/1: transport error: " + syscall.ECONNREFUSED.Error()},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.EqualError(t, testCase.err, testCase.expected)
		})
	}
}

func TestError_Is(t *testing.T) {
	u, _ := url.Parse("http://a/1")
	loop := fmt.Errorf("wrapped: %w", loopDetected(u))
	tooMany := fmt.Errorf("wrapped: %w", tooManyRedirects(u))

	assert.ErrorIs(t, loop, ErrRedirectLoop)
	assert.NotErrorIs(t, loop, ErrTooManyRedirects)
	assert.ErrorIs(t, tooMany, ErrTooManyRedirects)
	assert.NotErrorIs(t, tooMany, ErrRedirectLoop)

	transport := wrapErr(Transport, syscall.ECONNRESET, u)
	assert.NotErrorIs(t, transport, ErrRedirectLoop)
	assert.ErrorIs(t, transport, syscall.ECONNRESET)
}

func TestError_Timeout(t *testing.T) {
	assert.False(t, loopDetected(nil).Timeout())
	assert.False(t, wrapErr(Transport, errors.New("foo"), nil).Timeout())
	assert.True(t, wrapErr(Transport, context.DeadlineExceeded, nil).Timeout())
	assert.True(t, wrapErr(Transport, syscall.ETIMEDOUT, nil).Timeout())
}

func TestWrapErr(t *testing.T) {
	u, _ := url.Parse("http://a/1")
	t.Run("passes Error through", func(t *testing.T) {
		e := loopDetected(u)
		assert.Same(t, e, wrapErr(Transport, e, nil))
		assert.Same(t, e, wrapErr(Transport, fmt.Errorf("x: %w", e), nil))
	})
	t.Run("unwraps url.Error", func(t *testing.T) {
		e := wrapErr(Transport, &url.Error{Op: "Get", URL: "http://a/1", Err: syscall.ECONNRESET}, u)
		assert.Equal(t, Transport, e.Kind)
		assert.Same(t, u, e.URL)
		assert.Equal(t, syscall.ECONNRESET, e.Err)
	})
	t.Run("plain error", func(t *testing.T) {
		cause := errors.New("boom")
		e := wrapErr(FormEncoding, cause, nil)
		assert.Equal(t, FormEncoding, e.Kind)
		assert.Nil(t, e.URL)
		assert.Same(t, cause, e.Err)
	})
}
