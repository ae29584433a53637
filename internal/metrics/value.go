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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	promproto "github.com/prometheus/client_model/go"
	"go.uber.org/atomic"
)

// value is an atomic int64 with the Prometheus metadata needed to describe
// and collect it. It's the building block shared by counter and gauge.
type value struct {
	atomic.Int64

	opts       Opts
	desc       *prometheus.Desc
	labelPairs []*promproto.LabelPair
}

func newValue(opts Opts) value {
	return value{
		opts:       opts,
		desc:       opts.describe(),
		labelPairs: opts.labelPairs(),
	}
}

// Desc implements half of prometheus.Metric.
func (v value) Desc() *prometheus.Desc {
	return v.desc
}

// Describe implements half of prometheus.Collector.
func (v value) Describe(ch chan<- *prometheus.Desc) {
	ch <- v.desc
}
