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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arfaxad/corosched/internal/metrics/metricstest"
)

func TestConstLabelValidation(t *testing.T) {
	r := NewRegistry(Labeled(Labels{
		"invalid-name": "foo",
		"tally":        "invalid value",
		"ok":           "yes",
	}))
	_, err := r.NewCounter(Opts{
		Name: "test",
		Help: "help",
	})
	require.NoError(t, err, "Unexpected error creating a counter.")
	metricstest.AssertPrometheus(t, r, "# HELP test help\n"+
		"# TYPE test counter\n"+
		`test{ok="yes"} 0`)
}

func TestRegistryServesItsOwnScrapeEndpoint(t *testing.T) {
	r := NewRegistry()
	g := r.MustGauge(Opts{Name: "buffer_pool_tier", Help: "0=LOW 1=OK 2=FULL"})
	g.Store(1)

	metricstest.AssertPrometheus(t, r, "# HELP buffer_pool_tier 0=LOW 1=OK 2=FULL\n"+
		"# TYPE buffer_pool_tier gauge\n"+
		`buffer_pool_tier 1`)
}
