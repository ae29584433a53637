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

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("foo"))
	assert.True(t, IsValidName("foo_bar123"))
	assert.True(t, IsValidName("_foo"))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("1foo"))
	assert.False(t, IsValidName("foo:bar"))
	assert.False(t, IsValidName("foo bar"))
}

func TestIsValidLabelValue(t *testing.T) {
	assert.True(t, IsValidLabelValue(""))
	assert.True(t, IsValidLabelValue("foo"))
	assert.True(t, IsValidLabelValue("foo.bar-baz_1"))
	assert.False(t, IsValidLabelValue("foo:bar"))
	assert.False(t, IsValidLabelValue("foo bar"))
}
