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
)

func TestOptsValidation(t *testing.T) {
	tests := []struct {
		desc string
		opts Opts
		ok   bool
	}{
		{
			desc: "valid name",
			opts: Opts{Name: "fOo123", Help: "Some help."},
			ok:   true,
		},
		{
			desc: "valid name & constant labels",
			opts: Opts{Name: "foo", Help: "Some help.", ConstLabels: Labels{"foo": "bar"}},
			ok:   true,
		},
		{
			desc: "name with forbidden characters",
			opts: Opts{Name: "foo:bar", Help: "Some help."},
			ok:   false,
		},
		{
			desc: "no name",
			opts: Opts{Help: "Some help."},
			ok:   false,
		},
		{
			desc: "no help",
			opts: Opts{Name: "foo"},
			ok:   false,
		},
		{
			desc: "invalid label key",
			opts: Opts{Name: "foo", Help: "Some help.", ConstLabels: Labels{"foo:foo": "bar"}},
			ok:   false,
		},
		{
			desc: "invalid label value",
			opts: Opts{Name: "foo", Help: "Some help.", ConstLabels: Labels{"foo": "bar:bar"}},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if tt.ok {
				assertOptsOK(t, tt.opts)
			} else {
				assertOptsFail(t, tt.opts)
			}
		})
	}
}

func assertOptsOK(t testing.TB, opts Opts) {
	_, err := NewRegistry().NewCounter(opts)
	assert.NoError(t, err, "Expected success from NewCounter.")
	assert.NotPanics(t, func() { NewRegistry().MustCounter(opts) }, "Expected MustCounter to succeed.")

	_, err = NewRegistry().NewGauge(opts)
	assert.NoError(t, err, "Expected success from NewGauge.")
	assert.NotPanics(t, func() { NewRegistry().MustGauge(opts) }, "Expected MustGauge to succeed.")
}

func assertOptsFail(t testing.TB, opts Opts) {
	_, err := NewRegistry().NewCounter(opts)
	assert.Error(t, err, "Expected an error from NewCounter.")
	assert.Panics(t, func() { NewRegistry().MustCounter(opts) }, "Expected a panic from MustCounter.")

	_, err = NewRegistry().NewGauge(opts)
	assert.Error(t, err, "Expected an error from NewGauge.")
	assert.Panics(t, func() { NewRegistry().MustGauge(opts) }, "Expected a panic from MustGauge.")
}
