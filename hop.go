// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpredir

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gogama/httpredir/redirect"
	"github.com/gogama/httpredir/request"
	"github.com/gogama/httpredir/timeout"
	"github.com/klauspost/compress/gzip"
	"github.com/valyala/bytebufferpool"
)

// maxDrain bounds how much of a redirect response body is read before
// closing it, so the connection can be reused for the next hop.
const maxDrain = 2 << 10

// sensitiveHeaders are removed from a redirected request which leaves
// the current host, unless the client keeps them.
var sensitiveHeaders = []string{
	"Authorization",
	"Www-Authenticate",
	"Cookie",
	"Cookie2",
	"Proxy-Authorization",
}

// chain holds the configuration snapshot used by one execution.
type chain struct {
	doer          HTTPDoer
	timeout       timeout.Policy
	policy        redirect.Policy
	gzip          bool
	userAgent     string
	keepSensitive bool
	handlers      *HandlerGroup
	logger        *slog.Logger
	log           *slog.Logger
}

// prepare clones p and applies the default headers. Defaults are
// applied once per execution, never per hop.
func (ch *chain) prepare(p *request.Plan) *request.Plan {
	cur := p.Clone()
	if cur.Method == "" {
		cur.Method = "GET"
	}
	h := cur.Header
	if len(h.Values("User-Agent")) == 0 {
		h.Set("User-Agent", ch.userAgent)
	}
	if len(h.Values("Accept")) == 0 {
		h.Set("Accept", "*/*")
	}
	if ch.gzip && len(h.Values("Accept-Encoding")) == 0 && len(h.Values("Range")) == 0 {
		h.Set("Accept-Encoding", "gzip")
	}
	return cur
}

// hop sends e.Current and handles the response. It returns the plan
// for the next hop, or nil if the chain has ended.
func (ch *chain) hop(e *request.Execution) *request.Plan {
	ctx, cancel := context.WithTimeout(e.Plan.Context(), ch.timeout.Timeout(e))
	defer cancel()

	e.Request = e.Current.ToRequest(ctx)
	e.Response = nil
	e.Location = nil
	ch.handlers.run(BeforeHop, e)
	ch.log.Debug("request",
		slog.Int("hop", e.Hop),
		slog.String("method", e.Request.Method),
		slog.String("url", e.Request.URL.String()))

	resp, err := ch.doer.Do(e.Request)
	if err != nil {
		ch.fail(e, wrapErr(Transport, err, e.Current.URL))
		return nil
	}
	e.Response = resp

	next, err := ch.evaluate(e)
	if err != nil {
		discard(resp.Body)
		ch.fail(e, err)
		return nil
	}
	if next != nil {
		discard(resp.Body)
		ch.handlers.run(BeforeRedirect, e)
		ch.handlers.run(AfterHop, e)
		return next
	}

	ch.handlers.run(BeforeReadBody, e)
	if err = ch.readBody(e); err != nil {
		ch.fail(e, wrapErr(Transport, err, e.URL()))
		return nil
	}
	ch.handlers.run(AfterHop, e)
	return nil
}

func (ch *chain) fail(e *request.Execution, err error) {
	e.Err = err
	if e.Timeout() {
		ch.handlers.run(AfterHopTimeout, e)
	}
	ch.handlers.run(AfterHop, e)
}

// evaluate decides what follows the response in e. It returns the next
// hop's plan when a redirect is to be followed, nil when the response
// is final, and an error when the redirect policy fails the chain.
func (ch *chain) evaluate(e *request.Execution) (*request.Plan, error) {
	cur := e.Current
	status := e.Response.StatusCode
	var next *request.Plan
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther:
		next = cur.Clone()
		next.Body = nil
		if cur.Method != "GET" && cur.Method != "HEAD" {
			next.Method = "GET"
		}
	case http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		if !cur.Body.Resettable() {
			ch.log.Debug("stream body can't be resent",
				slog.Int("status", status),
				slog.String("url", cur.URL.String()))
			return nil, nil
		}
		next = cur.Clone()
	default:
		return nil, nil
	}

	loc := e.Response.Header.Get("Location")
	if loc == "" {
		ch.log.Debug("missing Location", slog.Int("status", status))
		return nil, nil
	}
	target, err := cur.URL.Parse(loc)
	if err != nil {
		ch.log.Debug("invalid Location",
			slog.String("location", loc),
			slog.Any("error", err))
		return nil, nil
	}
	e.Location = target
	e.Via = append(e.Via, cur.URL)

	switch action := redirect.Decide(ch.policy, target, e.Via); action {
	case redirect.Follow:
	case redirect.LoopDetected:
		return nil, loopDetected(e.URL())
	case redirect.TooManyRedirects:
		return nil, tooManyRedirects(e.URL())
	default:
		ch.log.Debug("redirect disallowed",
			slog.String("action", action.String()),
			slog.String("location", target.String()))
		return nil, nil
	}

	ch.log.Debug("redirecting",
		slog.Int("status", status),
		slog.String("method", next.Method),
		slog.String("location", target.String()))
	next.URL = target
	next.Header.Set("Referer", referer(cur.URL))
	if !strings.EqualFold(cur.URL.Host, target.Host) {
		next.Host = ""
	}
	if !ch.keepSensitive && !sameOrSubdomain(cur.URL, target) {
		for _, k := range sensitiveHeaders {
			next.Header.Del(k)
		}
	}
	return next, nil
}

// readBody reads the final response body into e.Body, decoding gzip
// content when the client decompresses responses.
func (ch *chain) readBody(e *request.Execution) error {
	resp := e.Response
	if resp.Body == nil {
		e.Body = []byte{}
		return nil
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var r io.Reader = resp.Body
	gz := ch.gzip && strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip")
	if gz {
		zr, err := gzip.NewReader(resp.Body)
		switch {
		case errors.Is(err, io.EOF):
			r = strings.NewReader("")
		case err != nil:
			return err
		default:
			defer func() {
				_ = zr.Close()
			}()
			r = zr
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(r); err != nil {
		return err
	}
	e.Body = append(make([]byte, 0, buf.Len()), buf.B...)

	if gz {
		resp.Header.Del("Content-Encoding")
		resp.Header.Del("Content-Length")
		resp.ContentLength = -1
		resp.Uncompressed = true
	}
	return nil
}

func discard(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, body, maxDrain)
	_ = body.Close()
}

// referer returns the Referer value for a request following a redirect
// from u. User info and fragment are never sent.
func referer(u *url.URL) string {
	r := *u
	r.User = nil
	r.Fragment = ""
	r.RawFragment = ""
	return r.String()
}

// sameOrSubdomain reports whether dest is on the same host as from or
// on one of its subdomains, following the rule net/http applies before
// forwarding sensitive headers.
func sameOrSubdomain(from, dest *url.URL) bool {
	fh := strings.ToLower(from.Hostname())
	dh := strings.ToLower(dest.Hostname())
	if fh == dh {
		return true
	}
	sub := len(dh) - len(fh)
	return sub > 0 && dh[sub-1] == '.' && dh[sub:] == fh
}
