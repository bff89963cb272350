// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gogama/httpredir/redirect"
	"github.com/gogama/httpredir/timeout"
	"golang.org/x/net/http/httpguts"
)

// DefaultUserAgent is sent as the User-Agent header of requests which
// do not set one.
const DefaultUserAgent = "httpredir/1.0"

// Config holds the settings used to construct a Client. The zero value
// is a valid configuration.
type Config struct {
	// HTTPDoer specifies the mechanics of sending one HTTP request and
	// receiving its response.
	//
	// If HTTPDoer is nil, a new http.Client which does not follow
	// redirects is used. Its transport never asks for or decodes
	// compressed responses on its own, so DisableGzip yields the raw
	// body. If HTTPDoer is an *http.Client whose CheckRedirect is nil,
	// the client uses a copy of it with CheckRedirect set so that
	// redirects are returned, not followed. A caller-supplied doer
	// keeps its own compression behavior.
	HTTPDoer HTTPDoer
	// Redirect decides which redirects to follow.
	//
	// If Redirect is nil, redirect.Default is used.
	Redirect redirect.Policy
	// TimeoutPolicy specifies the timeout of each hop.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// DisableGzip turns off automatic response decompression. When
	// decompression is on, requests without Accept-Encoding or Range
	// headers ask for gzip and gzip-encoded final responses are
	// decoded.
	DisableGzip bool
	// UserAgent is the User-Agent header added to requests which do not
	// set one. If empty, DefaultUserAgent is used.
	UserAgent string
	// KeepSensitiveHeaders disables removal of the Authorization,
	// Www-Authenticate, Cookie, Cookie2 and Proxy-Authorization headers
	// when a redirect leaves the current host and its subdomains.
	KeepSensitiveHeaders bool
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a plan execution.
	//
	// If Handlers is nil, no custom handlers are run.
	Handlers *HandlerGroup
	// Logger receives debug records describing each hop and redirect
	// decision.
	//
	// If Logger is nil, slog.Default() is used.
	Logger *slog.Logger
}

// config is the shared, synchronized state behind a Client.
type config struct {
	doerMu   sync.RWMutex
	doer     HTTPDoer
	timeout  timeout.Policy
	policyMu sync.Mutex
	policy   redirect.Policy
	gzip     atomic.Bool

	userAgent     string
	keepSensitive bool
	handlers      *HandlerGroup
	logger        *slog.Logger
}

var emptyHandlers = HandlerGroup{}

func newConfig(c Config) (*config, error) {
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	} else if !httpguts.ValidHeaderFieldValue(ua) {
		return nil, fmt.Errorf("httpredir: invalid user agent %q", ua)
	}
	doer, err := noFollow(c.HTTPDoer)
	if err != nil {
		return nil, err
	}
	cfg := &config{
		doer:          doer,
		timeout:       c.TimeoutPolicy,
		policy:        c.Redirect,
		userAgent:     ua,
		keepSensitive: c.KeepSensitiveHeaders,
		handlers:      c.Handlers,
		logger:        c.Logger,
	}
	if cfg.timeout == nil {
		cfg.timeout = timeout.DefaultPolicy
	}
	if cfg.policy == nil {
		cfg.policy = redirect.Default
	}
	if cfg.handlers == nil {
		cfg.handlers = &emptyHandlers
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	cfg.gzip.Store(!c.DisableGzip)
	return cfg, nil
}

func noFollow(doer HTTPDoer) (HTTPDoer, error) {
	switch x := doer.(type) {
	case nil:
		return &http.Client{CheckRedirect: useLastResponse, Transport: newTransport()}, nil
	case *http.Client:
		if x == nil {
			return nil, errors.New("httpredir: nil *http.Client")
		}
		if x.CheckRedirect != nil {
			return x, nil
		}
		c := *x
		c.CheckRedirect = useLastResponse
		return &c, nil
	default:
		return doer, nil
	}
}

// newTransport returns a transport which leaves Accept-Encoding and
// response decoding to the client's gzip setting.
func newTransport() *http.Transport {
	var t *http.Transport
	if dt, ok := http.DefaultTransport.(*http.Transport); ok {
		t = dt.Clone()
	} else {
		t = &http.Transport{Proxy: http.ProxyFromEnvironment}
	}
	t.DisableCompression = true
	return t
}

func useLastResponse(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

// snapshot captures the configuration for one execution. Locks are
// held only while copying.
func (cfg *config) snapshot() *chain {
	cfg.doerMu.RLock()
	doer, tp := cfg.doer, cfg.timeout
	cfg.doerMu.RUnlock()
	cfg.policyMu.Lock()
	policy := cfg.policy
	cfg.policyMu.Unlock()
	return &chain{
		doer:          doer,
		timeout:       tp,
		policy:        policy,
		gzip:          cfg.gzip.Load(),
		userAgent:     cfg.userAgent,
		keepSensitive: cfg.keepSensitive,
		handlers:      cfg.handlers,
		logger:        cfg.logger,
	}
}
