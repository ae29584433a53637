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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arfaxad/corosched/internal/metrics/metricstest"
)

func TestCounter(t *testing.T) {
	r := NewRegistry(Labeled(Labels{"service": "corosched"}))
	counter, err := r.NewCounter(Opts{
		Name:        "test_counter",
		Help:        "Some help.",
		ConstLabels: Labels{"foo": "bar"},
	})
	require.NoError(t, err, "Unexpected error constructing counter.")

	counter.Inc()
	counter.Add(2)
	assert.Equal(t, int64(3), counter.Load(), "Unexpected in-memory counter value.")

	metricstest.AssertPrometheus(t, r, "# HELP test_counter Some help.\n"+
		"# TYPE test_counter counter\n"+
		`test_counter{foo="bar",service="corosched"} 3`)
}

func TestCounterDuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	opts := Opts{Name: "foo", Help: "help"}
	_, err := r.NewCounter(opts)
	require.NoError(t, err, "Unexpected error registering metadata for the first time.")

	_, err = r.NewCounter(opts)
	assert.Error(t, err, "Unexpected success re-using metrics metadata.")
	assert.Panics(t, func() { r.MustCounter(opts) }, "Unexpected success re-using metrics metadata.")

	_, err = r.NewGauge(opts)
	assert.Error(t, err, "Unexpected success re-using metrics metadata across types.")
}
