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

package sched

import (
	"github.com/arfaxad/corosched/internal/bufferpool"
	"github.com/arfaxad/corosched/internal/metrics"
)

// metricSet is the handful of gauges/counters the scheduler exposes
// through an adapted metrics.Registry; any field may be a no-op stand-in
// when the caller did not supply a registry.
type metricSet struct {
	poolTier        metrics.Gauge
	sessionsCreated metrics.Counter
	requestsCreated metrics.Counter
	bufferWaits     metrics.Counter
}

func newMetricSet(reg *metrics.Registry) metricSet {
	if reg == nil {
		return metricSet{
			poolTier:        metrics.NewNopGauge(),
			sessionsCreated: metrics.NewNopCounter(),
			requestsCreated: metrics.NewNopCounter(),
			bufferWaits:     metrics.NewNopCounter(),
		}
	}
	return metricSet{
		poolTier:        reg.MustGauge(metrics.Opts{Name: "buffer_pool_tier", Help: "0=LOW 1=OK 2=FULL"}),
		sessionsCreated: reg.MustCounter(metrics.Opts{Name: "sessions_created", Help: "sessions created"}),
		requestsCreated: reg.MustCounter(metrics.Opts{Name: "requests_created", Help: "requests created"}),
		bufferWaits:     reg.MustCounter(metrics.Opts{Name: "buffer_waits", Help: "requests parked on the buffer-wait FIFO"}),
	}
}

// WireMetrics attaches reg's gauges/counters to sc and its pool; call
// once, before Start.
func (sc *Scheduler) WireMetrics(reg *metrics.Registry) {
	sc.metrics = newMetricSet(reg)
	sc.pool.OnTierChange(func(r bufferpool.Report) {
		sc.metrics.poolTier.Store(int64(r))
	})
}
