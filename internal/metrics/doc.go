// Copyright (c) 2025 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package metrics is a small, atomic-based metrics library. A Registry holds
// a handful of Counters and Gauges scoped to the scheduler that owns it, and
// is also its own http.Handler, serving a Prometheus-compatible scrape
// endpoint.
//
// Metric Names
//
// Metric names and constant label names must pass IsValidName; constant
// label values must pass IsValidLabelValue. Both mirror Prometheus's own
// naming rules.
//
// Counters And Gauges
//
// A Counter is a monotonically increasing value, like a count of requests
// created. A Gauge is a point-in-time measurement that may move in either
// direction, like the buffer pool's current fill tier. Construct either one
// through a Registry's Must* constructors, or reach for NewNopCounter /
// NewNopGauge when no Registry has been configured and the call site still
// needs something to store into.
package metrics
