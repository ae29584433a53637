// Copyright (c) 2024 Uber Technologies, Inc.
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

package bufferpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{Size: MinBufferSize, MinLevel: 2 * MinBufferSize, MaxLevel: 4 * MinBufferSize}
}

func TestPoolAllocFillsToMaxLevel(t *testing.T) {
	p := NewPool(testConfig(), nil)
	assert.Equal(t, 4*MinBufferSize, p.Available(), "NewPool should eagerly fill to MaxLevel")
	assert.Equal(t, MinBufferSize, p.Size())
}

func TestPoolAllocReusesFreedBuffer(t *testing.T) {
	p := NewPool(testConfig(), nil)
	before := p.Available()

	b, err := p.Alloc(2)
	require.NoError(t, err)
	assert.Equal(t, before-MinBufferSize, p.Available())

	b.Release()
	assert.Equal(t, before, p.Available(), "released buffer should return to the free queue")
}

func TestPoolTierPolicy(t *testing.T) {
	p := NewPool(Config{Size: MinBufferSize, MinLevel: 0, MaxLevel: 10 * MinBufferSize}, nil)
	assert.Equal(t, Generous, p.CurrentPolicy())

	// Drain past the Fair boundary (50%) down into Scarce (<10%).
	var held []*Buffer
	for p.AvailablePercent() >= 10 {
		b, err := p.Alloc(0)
		require.NoError(t, err)
		held = append(held, b)
	}
	assert.Equal(t, Scarce, p.CurrentPolicy())
	assert.True(t, p.Allows(0))
	assert.False(t, p.Allows(1))
	assert.False(t, p.Allows(2))

	_, err := p.Alloc(2)
	assert.Error(t, err, "a Fair/opportunistic request must be denied under Scarce")

	for _, b := range held {
		b.Release()
	}
	assert.Equal(t, Generous, p.CurrentPolicy())
}

func TestPoolUnboundedConfig(t *testing.T) {
	p := NewPool(Config{}, nil)
	assert.Equal(t, 0, p.Available())
	assert.Equal(t, float64(100), p.AvailablePercent(), "an unbounded pool always reports 100%")

	b, err := p.Alloc(2)
	require.NoError(t, err)
	b.Release()
	assert.Equal(t, MinBufferSize, p.Available(), "a freed buffer is retained once it exists, even though the pool started empty")
}

func TestPoolOnFreeWakeup(t *testing.T) {
	p := NewPool(testConfig(), nil)
	var woken int
	p.OnFree(func() { woken++ })

	b, err := p.Alloc(2)
	require.NoError(t, err)
	b.Release()

	assert.Equal(t, 1, woken)
}

func TestBufferProduceConsume(t *testing.T) {
	p := NewPool(testConfig(), nil)
	b, err := p.Alloc(2)
	require.NoError(t, err)
	defer b.Release()

	n := copy(b.Unwritten(), "hello")
	b.Produce(n)
	assert.Equal(t, "hello", string(b.Unread()))
	assert.False(t, b.Full())

	b.Consume(5)
	assert.False(t, b.HasUnparsed())
}

func TestBufferProduceOverrunsPanics(t *testing.T) {
	p := NewPool(testConfig(), nil)
	b, err := p.Alloc(2)
	require.NoError(t, err)
	defer b.Release()

	assert.Panics(t, func() { b.Produce(b.Cap() + 1) })
}

func TestBufferDoubleReleasePanics(t *testing.T) {
	p := NewPool(testConfig(), nil)
	b, err := p.Alloc(2)
	require.NoError(t, err)

	b.Release()
	assert.Panics(t, func() { b.Release() })
}

func TestBufferUseAfterFreePanics(t *testing.T) {
	p := NewPool(testConfig(), nil)
	b, err := p.Alloc(2)
	require.NoError(t, err)
	b.Release()

	assert.Panics(t, func() { b.Produce(1) })
}

func TestBufferRetainKeepsItAlive(t *testing.T) {
	p := NewPool(testConfig(), nil)
	before := p.Available()

	b, err := p.Alloc(2)
	require.NoError(t, err)
	b.Retain()

	b.Release() // drops the queue's reference; Retain's is still held
	assert.Equal(t, before-MinBufferSize, p.Available(), "buffer must stay checked out while a reference remains")

	b.Release()
	assert.Equal(t, before, p.Available())
}

func TestBufferOverlappingOpsPanics(t *testing.T) {
	p := NewPool(testConfig(), nil)
	b, err := p.Alloc(2)
	require.NoError(t, err)
	defer b.Release()

	v := b.preOp()
	assert.Panics(t, func() { b.postOp(v + 1) })
}

func TestBufferQueueFIFO(t *testing.T) {
	p := NewPool(testConfig(), nil)
	a, err := p.Alloc(2)
	require.NoError(t, err)
	c, err := p.Alloc(2)
	require.NoError(t, err)
	defer a.Release()
	defer c.Release()

	var q BufferQueue
	assert.True(t, q.Empty())

	q.PushTail(a)
	q.PushTail(c)
	assert.Equal(t, 2, q.Len())
	assert.Same(t, a, q.Head())
	assert.Same(t, c, q.Tail())

	got := q.PopHead()
	assert.Same(t, a, got)
	assert.Equal(t, 1, q.Len())
	assert.Same(t, c, q.Head())

	got = q.PopHead()
	assert.Same(t, c, got)
	assert.True(t, q.Empty())
	assert.Nil(t, q.PopHead())
}

func TestPoolAllocConcurrent(t *testing.T) {
	p := NewPool(Config{Size: MinBufferSize, MinLevel: 0, MaxLevel: 64 * MinBufferSize}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b, err := p.Alloc(2)
				if err != nil {
					continue
				}
				copy(b.Unwritten(), "x")
				b.Produce(1)
				b.Release()
			}
		}()
	}
	wg.Wait()
}
