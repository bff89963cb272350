// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gogama/httpredir"
	"github.com/gogama/httpredir/redirect"
	"github.com/gogama/httpredir/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	require.NotNil(t, c)
	assert.Panics(t, func() { reg.MustRegister(c) }, "already registered")
	assert.NotPanics(t, func() { NewCollector(nil) })
}

func TestCollector_Client(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1":
			http.Redirect(w, r, "/2", http.StatusFound)
		case "/2":
			http.Redirect(w, r, "/3", http.StatusMovedPermanently)
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		default:
			_, _ = fmt.Fprint(w, "done")
		}
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	g := &httpredir.HandlerGroup{}
	c.Install(g)
	cl, err := httpredir.NewClientWithConfig(httpredir.Config{
		HTTPDoer: server.Client(),
		Handlers: g,
	})
	require.NoError(t, err)

	e, err := cl.Get(server.URL + "/1").Send()
	require.NoError(t, err)
	assert.Equal(t, "done", string(e.Body))

	_, err = cl.Get(server.URL + "/loop").Send()
	assert.ErrorIs(t, err, httpredir.ErrRedirectLoop)

	cl.SetRedirect(redirect.None)
	_, err = cl.Get(server.URL + "/1").Send()
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.redirects))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.hops.WithLabelValues("2xx")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.hops.WithLabelValues("3xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.executions.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.executions.WithLabelValues("redirect_loop")))
	assert.Equal(t, 1, testutil.CollectAndCount(c, "httpredir_execution_duration_seconds"))
}

func TestStatusClass(t *testing.T) {
	testCases := []struct {
		code     int
		expected string
	}{
		{0, "error"},
		{100, "1xx"},
		{204, "2xx"},
		{308, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
		{600, "error"},
	}
	for _, testCase := range testCases {
		t.Run(fmt.Sprint(testCase.code), func(t *testing.T) {
			e := executionWithStatus(testCase.code)
			assert.Equal(t, testCase.expected, statusClass(e))
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "error", outcome(errors.New("foo")))
	assert.Equal(t, "transport", outcome(&httpredir.Error{Kind: httpredir.Transport, Err: errors.New("foo")}))
	assert.Equal(t, "timeout", outcome(&httpredir.Error{Kind: httpredir.Transport, Err: context.DeadlineExceeded}))
	assert.Equal(t, "encoding", outcome(&httpredir.Error{Kind: httpredir.FormEncoding}))
	assert.Equal(t, "encoding", outcome(&httpredir.Error{Kind: httpredir.JSONEncoding}))
	assert.Equal(t, "too_many_redirects", outcome(httpredir.ErrTooManyRedirects))
	assert.Equal(t, "redirect_loop", outcome(fmt.Errorf("x: %w", httpredir.ErrRedirectLoop)))
	assert.Equal(t, "error", outcome(&httpredir.Error{Kind: httpredir.Kind(42)}))
}

func executionWithStatus(code int) *request.Execution {
	if code == 0 {
		return &request.Execution{}
	}
	return &request.Execution{Response: &http.Response{StatusCode: code}}
}
