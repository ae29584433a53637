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

package conn

import (
	"github.com/arfaxad/corosched/errcode"
	"github.com/arfaxad/corosched/internal/bufferpool"
)

// InputLookahead returns the current parse window of the head input
// buffer and the buffer itself (so a caller can pin it on behalf of a
// request). ok is false when there is nothing queued to parse.
func (c *Connection) InputLookahead() (window []byte, head *bufferpool.Buffer, ok bool) {
	head = c.input.Head()
	if head == nil || !head.HasUnparsed() {
		return nil, nil, false
	}
	return head.Unread(), head, true
}

// InputCommit records that the parser consumed up to end bytes total
// from the head input buffer. If the buffer is now fully consumed and
// either a successor exists or its remaining slack is too small to be
// worth another read, it is dequeued and unlinked.
func (c *Connection) InputCommit(end int) {
	head := c.input.Head()
	if head == nil {
		return
	}
	head.Consume(end - head.Consumed())

	if !head.HasUnparsed() {
		tooSmall := head.Cap()-head.Written() < bufferpool.MinBufferSize/4
		if head.Next() != nil || tooSmall {
			c.input.PopHead()
			head.Release()
		}
	}
	c.recomputeInputFlags()
}

// InputClearUnparsed discards all queued input. Used after a READ
// error has been raised and surfaced to the application.
func (c *Connection) InputClearUnparsed() {
	for b := c.input.PopHead(); b != nil; b = c.input.PopHead() {
		b.Release()
	}
	c.inputWaitingToBeParsed = false
	c.inputBufferCapacityAvailable = false
}

// GrowInput allocates a new tail input Buffer from the pool at the
// given priority, if the current tail is absent or full. It is a
// no-op, returning nil, if input buffer capacity already exists.
func (c *Connection) GrowInput(priority int) error {
	if tail := c.input.Tail(); tail != nil && !tail.Full() {
		c.inputBufferCapacityAvailable = true
		return nil
	}
	nb, err := c.pool.Alloc(priority)
	if err != nil {
		return err
	}
	c.input.PushTail(nb)
	c.inputBufferCapacityAvailable = true
	return nil
}

// InputQueueLen reports how many Buffers are currently queued on the
// input side.
func (c *Connection) InputQueueLen() int { return c.input.Len() }

// OutputLookahead returns a writable region of at least minSize bytes
// (minSize must not exceed the pool's buffer size) at the tail of the
// output queue, allocating a new tail buffer from the pool subject to
// the priority policy if needed. Denial by policy is reported as an
// errcode "No" error, not a system error.
func (c *Connection) OutputLookahead(minSize int, priority int) ([]byte, error) {
	tail := c.output.Tail()
	if tail == nil || len(tail.Unwritten()) < minSize {
		nb, err := c.pool.Alloc(priority)
		if err != nil {
			return nil, err
		}
		c.output.PushTail(nb)
		tail = nb
	}
	if len(tail.Unwritten()) < minSize {
		return nil, errcode.NoErrorf("output buffer cannot satisfy a %d-byte request", minSize)
	}
	c.outputBufferCapacityAvailable = true
	return tail.Unwritten(), nil
}

// OutputCommit declares bytes up to end (relative to the tail buffer's
// own capacity) as formatted, advancing its written offset.
func (c *Connection) OutputCommit(end int) {
	tail := c.output.Tail()
	if tail == nil {
		return
	}
	tail.Produce(end - tail.Written())
	c.recomputeOutputFlags()
	c.outputBufferCapacityAvailable = !tail.Full()
}

// AttachPreHook associates fn as the single flush closure for the
// current output tail buffer. A second call with the same or a
// different closure returns the one already attached — at most one
// pre-flush closure exists per buffer.
func (c *Connection) AttachPreHook(fn bufferpool.PreFlushFunc) bufferpool.PreFlushFunc {
	tail := c.output.Tail()
	if tail == nil {
		return fn
	}
	return tail.AttachPreHook(fn)
}
