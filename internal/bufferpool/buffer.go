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

// Package bufferpool implements the fixed-memory buffer pool at the
// bottom of the scheduler's ownership chain: a Buffer is a fixed
// capacity byte region with three offsets and a refcount, a BufferQueue
// chains Buffers in a connection's input or output direction, and a
// Pool hands Buffers out subject to a three-tier fill-level policy.
package bufferpool

import "go.uber.org/atomic"

// MinBufferSize is the minimum capacity ("m") any Buffer may have.
const MinBufferSize = 128

// PreFlushFunc is a callback a formatter can pin to a Buffer's tail; it
// runs once, blockingly, before that Buffer is ever written to the
// transport. Returning more=true means the hook itself is async and
// has not finished; the caller must retry non-blockingly next pass.
type PreFlushFunc func() (more bool, err error)

// Buffer is a fixed-capacity byte region with three offsets:
// i (consumed) <= n (written) <= m (capacity). It is reference counted
// because a connection's queue and any number of Requests that parsed
// from it may pin it simultaneously; it returns to its owning Pool only
// when the last reference is released.
type Buffer struct {
	pool *Pool

	data []byte // len(data) == m, fixed for the buffer's lifetime
	n    int    // bytes written
	i    int    // bytes consumed

	refs atomic.Int32

	preFlush PreFlushFunc

	// next chains this Buffer to its successor inside a BufferQueue.
	next *Buffer

	// version detects overlapping use of a Buffer from two call sites at
	// once; a single-threaded scheduler should never trip this, so a
	// panic here means a programmer error, not a race in user data.
	version  uint
	released bool
}

func newBuffer(pool *Pool, size int) *Buffer {
	return &Buffer{pool: pool, data: make([]byte, size)}
}

func (b *Buffer) checkUseAfterFree() {
	if b.released {
		panic("bufferpool: use of a released Buffer")
	}
}

func (b *Buffer) preOp() uint {
	b.checkUseAfterFree()
	b.version++
	return b.version
}

func (b *Buffer) postOp(v uint) {
	b.checkUseAfterFree()
	if v != b.version {
		panic("bufferpool: overlapping operations on one Buffer")
	}
	b.version++
}

// Cap returns m, the Buffer's fixed capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Written returns n, the number of bytes produced so far.
func (b *Buffer) Written() int { return b.n }

// Consumed returns i, the number of bytes consumed so far.
func (b *Buffer) Consumed() int { return b.i }

// HasUnparsed reports whether i < n: there are formatted bytes this
// Buffer's reader has not yet consumed.
func (b *Buffer) HasUnparsed() bool {
	v := b.preOp()
	r := b.i < b.n
	b.postOp(v)
	return r
}

// Unwritten returns the writable region [n:m).
func (b *Buffer) Unwritten() []byte {
	v := b.preOp()
	s := b.data[b.n:len(b.data)]
	b.postOp(v)
	return s
}

// Unread returns the unconsumed region [i:n).
func (b *Buffer) Unread() []byte {
	v := b.preOp()
	s := b.data[b.i:b.n]
	b.postOp(v)
	return s
}

// Produce records that n additional bytes were written starting at the
// old value of n (e.g. after a transport read or a formatter write
// directly into Unwritten()).
func (b *Buffer) Produce(n int) {
	v := b.preOp()
	b.n += n
	if b.n > len(b.data) {
		panic("bufferpool: Produce overruns capacity")
	}
	b.postOp(v)
}

// Consume records that n additional bytes were parsed starting at the
// old value of i.
func (b *Buffer) Consume(n int) {
	v := b.preOp()
	b.i += n
	if b.i > b.n {
		panic("bufferpool: Consume overruns written region")
	}
	b.postOp(v)
}

// Full reports whether the Buffer has no remaining write capacity.
func (b *Buffer) Full() bool { return b.n >= len(b.data) }

// Next returns the successor Buffer in a BufferQueue, or nil.
func (b *Buffer) Next() *Buffer { return b.next }

// Retain increments the refcount. Called whenever a new owner (an
// input/output queue, or a Request pinning a parsed span) starts
// sharing this Buffer.
func (b *Buffer) Retain() {
	b.refs.Inc()
}

// Release decrements the refcount, returning the Buffer to its Pool
// when it reaches zero. Double-release (refcount going negative) is a
// fatal invariant violation.
func (b *Buffer) Release() {
	v := b.refs.Dec()
	if v < 0 {
		panic("bufferpool: negative Buffer refcount (double release)")
	}
	if v == 0 && b.pool != nil {
		b.pool.free(b)
	}
}

// RefCount reports the current refcount, for invariant assertions in
// tests.
func (b *Buffer) RefCount() int32 { return b.refs.Load() }

// AttachPreHook associates fn as the single pre-flush closure for this
// Buffer. If one is already attached, it is returned unchanged and fn
// is discarded — at most one pre-flush closure may exist per Buffer.
func (b *Buffer) AttachPreHook(fn PreFlushFunc) PreFlushFunc {
	if b.preFlush != nil {
		return b.preFlush
	}
	b.preFlush = fn
	return fn
}

// PreHook returns the attached pre-flush closure, or nil.
func (b *Buffer) PreHook() PreFlushFunc { return b.preFlush }

// ClearPreHook removes the pre-flush closure after it has run
// successfully.
func (b *Buffer) ClearPreHook() { b.preFlush = nil }

func (b *Buffer) reset() {
	b.n = 0
	b.i = 0
	b.next = nil
	b.preFlush = nil
	b.refs.Store(0)
	b.released = false
}
