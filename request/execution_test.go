// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecution_StatusCode(t *testing.T) {
	e := &Execution{}
	t.Run("no Response", func(t *testing.T) {
		require.Nil(t, e.Response)
		assert.Equal(t, 0, e.StatusCode())
	})
	t.Run("with Response", func(t *testing.T) {
		e.Response = &http.Response{StatusCode: 302}
		assert.Equal(t, 302, e.StatusCode())
	})
}

func TestExecution_Header(t *testing.T) {
	e := &Execution{}
	t.Run("no Response", func(t *testing.T) {
		assert.Nil(t, e.Header())
		assert.Empty(t, e.Header().Get("Location"))
	})
	t.Run("with Response", func(t *testing.T) {
		h := http.Header{
			"Location": []string{"/next"},
			"Ham":      []string{"eggs", "spam"},
		}
		e.Response = &http.Response{Header: h}
		assert.Equal(t, h, e.Header())
		assert.Equal(t, "/next", e.Header().Get("Location"))
	})
}

func TestExecution_URL(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.URL())
	p, err := NewPlan("GET", "http://a/1", nil)
	require.NoError(t, err)
	e.Current = p
	assert.Equal(t, "http://a/1", e.URL().String())
	e.Request = &http.Request{URL: mustParse(t, "http://a/2")}
	assert.Equal(t, "http://a/2", e.URL().String())
	e.Response = &http.Response{Request: &http.Request{URL: mustParse(t, "http://a/3")}}
	assert.Equal(t, "http://a/3", e.URL().String())
	e.Response = &http.Response{}
	assert.Equal(t, "http://a/2", e.URL().String())
}

func TestExecution_Redirects(t *testing.T) {
	assert.Equal(t, 0, (&Execution{}).Redirects())
	assert.Equal(t, 4, (&Execution{Hop: 4}).Redirects())
}

func TestExecution_TimeMethods(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		e := &Execution{}
		assert.False(t, e.Started())
		assert.False(t, e.Ended())
		assert.Equal(t, time.Duration(0), e.Duration())
	})
	t.Run("started but not ended", func(t *testing.T) {
		e := &Execution{}
		e.Start = time.Now()
		assert.True(t, e.Started())
		assert.False(t, e.Ended())
		time.Sleep(2*time.Millisecond + 50*time.Microsecond)
		d := e.Duration()
		assert.LessOrEqual(t, d, time.Since(e.Start))
		assert.GreaterOrEqual(t, d, 2*time.Millisecond)
	})
	t.Run("ended", func(t *testing.T) {
		e := &Execution{}
		e.Start = time.Now()
		e.End = e.Start.Add(3 * time.Millisecond)
		assert.True(t, e.Ended())
		assert.Equal(t, 3*time.Millisecond, e.Duration())
		time.Sleep(time.Millisecond)
		assert.Equal(t, 3*time.Millisecond, e.Duration())
	})
}

func TestExecution_Timeout(t *testing.T) {
	t.Run("no error", func(t *testing.T) {
		assert.False(t, (&Execution{}).Timeout())
	})
	t.Run("generic error not timeout", func(t *testing.T) {
		assert.False(t, (&Execution{Err: errors.New("foo")}).Timeout())
	})
	t.Run("direct timeout", func(t *testing.T) {
		assert.True(t, (&Execution{Err: syscall.ETIMEDOUT}).Timeout())
	})
	t.Run("indirect timeout", func(t *testing.T) {
		e := &Execution{
			Err: fmt.Errorf("hop 3: %w", &url.Error{Err: context.DeadlineExceeded}),
		}
		assert.True(t, e.Timeout())
	})
}

func TestExecution_Value(t *testing.T) {
	t.Run("new Execution", func(t *testing.T) {
		e := &Execution{}
		assert.Nil(t, e.Value(funKey{}))
		e.SetValue(funKey{}, "bar")
		assert.Equal(t, "bar", e.Value(funKey{}))
	})
	t.Run("different keys", func(t *testing.T) {
		e := &Execution{}
		e.SetValue(funKey{}, "bar")
		e.SetValue(funkyKey{}, "baz")
		assert.Equal(t, "bar", e.Value(funKey{}))
		assert.Equal(t, "baz", e.Value(funkyKey{}))
	})
	t.Run("same key multiple times", func(t *testing.T) {
		e := &Execution{}
		e.SetValue(funKey{}, "ham")
		e.SetValue(funkyKey{}, "eggs")
		e.SetValue(funKey{}, "spam")
		assert.Equal(t, "spam", e.Value(funKey{}))
		assert.Equal(t, "eggs", e.Value(funkyKey{}))
	})
}

type funKey struct{}
type funkyKey struct{}

func mustParse(t *testing.T, s string) *url.URL {
	u, err := url.Parse(s)
	require.NoError(t, err)
	return u
}
