// Copyright 2026 The httpredir Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics describing the redirect
// chains executed by an httpredir.Client.
package metrics

import (
	"errors"
	"strconv"

	"github.com/gogama/httpredir"
	"github.com/gogama/httpredir/request"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "httpredir"

// A Collector counts hops, redirects and executions. It is an
// httpredir.Handler and a prometheus.Collector.
type Collector struct {
	hops       *prometheus.CounterVec
	redirects  prometheus.Counter
	executions *prometheus.CounterVec
	duration   prometheus.Histogram
}

// NewCollector creates a collector and, if reg is not nil, registers
// it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		hops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hops_total",
				Help:      "Total number of wire requests sent, by response status class.",
			},
			[]string{"class"},
		),
		redirects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "redirects_followed_total",
				Help:      "Total number of redirects followed.",
			},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "executions_total",
				Help:      "Total number of request executions, by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "execution_duration_seconds",
				Help:      "Duration of request executions including every hop.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	if reg != nil {
		reg.MustRegister(c)
	}
	return c
}

// Install adds c to the event handler chains it needs.
func (c *Collector) Install(g *httpredir.HandlerGroup) {
	g.PushBack(httpredir.AfterHop, c)
	g.PushBack(httpredir.BeforeRedirect, c)
	g.PushBack(httpredir.AfterExecutionEnd, c)
}

// Handle records evt.
func (c *Collector) Handle(evt httpredir.Event, e *request.Execution) {
	switch evt {
	case httpredir.AfterHop:
		c.hops.WithLabelValues(statusClass(e)).Inc()
	case httpredir.BeforeRedirect:
		c.redirects.Inc()
	case httpredir.AfterExecutionEnd:
		c.executions.WithLabelValues(outcome(e.Err)).Inc()
		c.duration.Observe(e.Duration().Seconds())
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.hops.Describe(ch)
	c.redirects.Describe(ch)
	c.executions.Describe(ch)
	c.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.hops.Collect(ch)
	c.redirects.Collect(ch)
	c.executions.Collect(ch)
	c.duration.Collect(ch)
}

func statusClass(e *request.Execution) string {
	code := e.StatusCode()
	if code < 100 || code > 599 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var e *httpredir.Error
	if !errors.As(err, &e) {
		return "error"
	}
	switch e.Kind {
	case httpredir.Transport:
		if e.Timeout() {
			return "timeout"
		}
		return "transport"
	case httpredir.FormEncoding, httpredir.JSONEncoding:
		return "encoding"
	case httpredir.TooManyRedirects:
		return "too_many_redirects"
	case httpredir.RedirectLoop:
		return "redirect_loop"
	default:
		return "error"
	}
}
