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

package bufferpool

// BufferQueue is an ordered sequence of Buffers with O(1) append at the
// tail and removal at the head, chained through each Buffer's own
// successor link so no separate node allocation is needed.
type BufferQueue struct {
	head, tail *Buffer
	n          int
}

// Len returns q_n, the number of Buffers currently queued.
func (q *BufferQueue) Len() int { return q.n }

// Empty reports whether the queue holds no Buffers.
func (q *BufferQueue) Empty() bool { return q.n == 0 }

// Head returns the first Buffer, or nil if the queue is empty.
func (q *BufferQueue) Head() *Buffer { return q.head }

// Tail returns the last Buffer, or nil if the queue is empty.
func (q *BufferQueue) Tail() *Buffer { return q.tail }

// PushTail appends b to the end of the queue.
func (q *BufferQueue) PushTail(b *Buffer) {
	b.next = nil
	if q.tail != nil {
		q.tail.next = b
	} else {
		q.head = b
	}
	q.tail = b
	q.n++
}

// PopHead removes and returns the first Buffer, or nil if the queue is
// empty.
func (q *BufferQueue) PopHead() *Buffer {
	if q.head == nil {
		return nil
	}
	b := q.head
	q.head = b.next
	if q.head == nil {
		q.tail = nil
	}
	b.next = nil
	q.n--
	return b
}
