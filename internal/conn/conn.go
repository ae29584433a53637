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

// Package conn implements the BufferedConnection that bridges a
// transport and a session: an input BufferQueue, an output
// BufferQueue, a handful of independent capability flags, and a
// latched error mask. Nothing in this package ever touches a file
// descriptor; Read and Write are driven against an io.Reader/io.Writer
// supplied by the transport Binding.
package conn

import (
	"errors"
	"net"

	"github.com/arfaxad/corosched/internal/bufferpool"
)

// ErrWouldBlock is returned (wrapped) by a transport's Reader/Writer to
// signal "no progress right now, not an error" — the Go analogue of
// EAGAIN/EINPROGRESS. Read and Write both treat it, and any net.Error
// whose Timeout() is true, identically: no error bit is raised.
var ErrWouldBlock = errors.New("conn: operation would block on io")

func isWouldBlock(err error) bool {
	if errors.Is(err, ErrWouldBlock) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// ErrorBit is a latch over {READ, WRITE, TRANSPORT}; once set a bit
// stays set until the connection is torn down.
type ErrorBit uint8

const (
	ErrBitRead ErrorBit = 1 << iota
	ErrBitWrite
	ErrBitTransport
)

// Connection is a BufferedConnection: two Buffer queues and the
// capability flags a session's processing loop reads to decide what to
// do next.
type Connection struct {
	pool *bufferpool.Pool

	input  bufferpool.BufferQueue
	output bufferpool.BufferQueue

	dataWaitingToBeRead            bool
	inputBufferCapacityAvailable   bool
	inputWaitingToBeParsed         bool
	writeCapacityAvailable         bool
	outputBufferCapacityAvailable  bool
	outputWaitingToBeWritten       bool

	errBits ErrorBit
	errno   error

	havePriority bool

	// priorityFn lets the owning session compute the urgency of the
	// next input allocation (urgent when the wire has data, no buffer
	// capacity remains, only INPUT is wanted, and the tail is full).
	priorityFn func() int
}

// SetInputPriority installs the session's callback for computing the
// priority passed to the pool on the next input allocation. A nil fn
// resets the connection to the opportunistic default, which keeps a
// bare Connection usable outside of a session (e.g. in tests).
func (c *Connection) SetInputPriority(fn func() int) { c.priorityFn = fn }

// New returns a Connection drawing its Buffers from pool. Write
// capacity starts true: the connection assumes it can write until a
// transport Write proves otherwise. The input and output buffer
// capacity flags start false, since no buffer has been allocated yet.
func New(pool *bufferpool.Pool) *Connection {
	return &Connection{
		pool:                          pool,
		writeCapacityAvailable:        true,
		inputBufferCapacityAvailable:  false,
		outputBufferCapacityAvailable: false,
	}
}

// DataWaitingToBeRead reports whether the transport has signalled
// bytes are available to read.
func (c *Connection) DataWaitingToBeRead() bool { return c.dataWaitingToBeRead }

// SetDataWaitingToBeRead is set by the Binding on a readable event.
func (c *Connection) SetDataWaitingToBeRead(v bool) { c.dataWaitingToBeRead = v }

// InputBufferCapacityAvailable reports whether the tail input buffer
// has room for more bytes.
func (c *Connection) InputBufferCapacityAvailable() bool { return c.inputBufferCapacityAvailable }

// InputWaitingToBeParsed reports whether the head input buffer has
// i < n: unparsed bytes exist.
func (c *Connection) InputWaitingToBeParsed() bool { return c.inputWaitingToBeParsed }

// WriteCapacityAvailable reports whether the transport will currently
// accept more writes.
func (c *Connection) WriteCapacityAvailable() bool { return c.writeCapacityAvailable }

// SetWriteCapacityAvailable is set by the Binding on a writable event.
func (c *Connection) SetWriteCapacityAvailable(v bool) { c.writeCapacityAvailable = v }

// OutputBufferCapacityAvailable reports whether the tail output
// buffer has room for more formatted bytes.
func (c *Connection) OutputBufferCapacityAvailable() bool { return c.outputBufferCapacityAvailable }

// OutputWaitingToBeWritten reports whether any output buffer has
// i < n.
func (c *Connection) OutputWaitingToBeWritten() bool { return c.outputWaitingToBeWritten }

// HavePriority reports whether this connection's session currently
// holds the global priority slot.
func (c *Connection) HavePriority() bool { return c.havePriority }

// SetHavePriority is set by the session's priority protocol.
func (c *Connection) SetHavePriority(v bool) { c.havePriority = v }

// ErrorBits returns the latched error mask.
func (c *Connection) ErrorBits() ErrorBit { return c.errBits }

// Errno returns the first system error latched against this
// connection, or nil.
func (c *Connection) Errno() error { return c.errno }

func (c *Connection) raise(bit ErrorBit, err error) {
	c.errBits |= bit
	if c.errno == nil {
		c.errno = err
	}
}

// RaiseTransportError latches the TRANSPORT error bit, used by an
// explicit session abort or a timeout the transport observed.
func (c *Connection) RaiseTransportError() {
	c.raise(ErrBitTransport, errors.New("conn: transport aborted"))
}

// recomputeInputFlags refreshes inputWaitingToBeParsed from the
// current head of the input queue.
func (c *Connection) recomputeInputFlags() {
	head := c.input.Head()
	c.inputWaitingToBeParsed = head != nil && head.HasUnparsed()
}

// recomputeOutputFlags refreshes outputWaitingToBeWritten by scanning
// the output queue for any buffer with unconsumed bytes.
func (c *Connection) recomputeOutputFlags() {
	for b := c.output.Head(); b != nil; b = b.Next() {
		if b.HasUnparsed() {
			c.outputWaitingToBeWritten = true
			return
		}
	}
	c.outputWaitingToBeWritten = false
}

// WriteReady runs the pre-flush hook attached to the head output
// buffer, if any, blockingly. It reports more=true if the hook itself
// is asynchronous and has not finished; on hook failure it raises the
// WRITE error bit and returns the hook's error.
func (c *Connection) WriteReady() (more bool, err error) {
	head := c.output.Head()
	if head == nil {
		return false, nil
	}
	hook := head.PreHook()
	if hook == nil {
		return false, nil
	}
	more, err = hook()
	if err != nil {
		c.raise(ErrBitWrite, err)
		return false, err
	}
	if !more {
		head.ClearPreHook()
	}
	return more, nil
}

// Write drains output buffers to w. For each head buffer it runs any
// pre-flush hook (non-blocking after the first iteration), writes
// [i:n), and advances i by the bytes accepted. A would-block result
// clears WriteCapacityAvailable and stops the loop without error; any
// other error raises the WRITE bit. It reports whether any bytes were
// written.
func (c *Connection) Write(w interface{ Write([]byte) (int, error) }) (progressed bool, err error) {
	first := true
	for {
		head := c.output.Head()
		if head == nil {
			break
		}

		if hook := head.PreHook(); hook != nil {
			more, herr := hook()
			if herr != nil {
				c.raise(ErrBitWrite, herr)
				return progressed, herr
			}
			if more && !first {
				break
			}
			if !more {
				head.ClearPreHook()
			}
		}
		first = false

		unread := head.Unread()
		if len(unread) == 0 {
			c.retireHead()
			if c.output.Head() == head {
				break
			}
			continue
		}

		n, werr := w.Write(unread)
		if n > 0 {
			head.Consume(n)
			progressed = true
		}
		if werr != nil {
			if isWouldBlock(werr) {
				c.writeCapacityAvailable = false
				break
			}
			c.raise(ErrBitWrite, werr)
			return progressed, werr
		}

		if !head.HasUnparsed() {
			c.retireHead()
		} else {
			// Short write against a non-blocking transport: stop for
			// this pass rather than spin.
			break
		}
	}
	c.recomputeOutputFlags()
	return progressed, nil
}

// retireHead pops a fully written head output buffer and releases it,
// recycling it when its successor exists, the pool is below Fair, or
// little slack remains — otherwise it is kept pinned for a possible
// late pre-hook retry.
func (c *Connection) retireHead() {
	head := c.output.Head()
	if head == nil || head.HasUnparsed() {
		return
	}
	recycle := head.Next() != nil
	if !recycle && c.pool != nil {
		recycle = c.pool.CurrentPolicy() != bufferpool.Generous
	}
	if !recycle {
		recycle = head.Cap()-head.Written() < bufferpool.MinBufferSize/4
	}
	if !recycle {
		return
	}
	c.output.PopHead()
	head.Release()
	c.outputBufferCapacityAvailable = c.output.Tail() != nil && !c.output.Tail().Full()
}

// Read fills the tail input buffer from r in a loop until a short read
// (clears DataWaitingToBeRead) or the buffer fills
// (clears InputBufferCapacityAvailable). It sets InputWaitingToBeParsed
// once any byte is read. A would-block result is not an error; a
// zero-byte, nil-error result is treated as EOF and raises READ.
func (c *Connection) Read(r interface{ Read([]byte) (int, error) }) (progressed bool, err error) {
	for {
		b := c.input.Tail()
		if b == nil || b.Full() {
			nb, aerr := c.pool.Alloc(c.inputAllocPriority())
			if aerr != nil {
				c.inputBufferCapacityAvailable = false
				break
			}
			c.input.PushTail(nb)
			b = nb
		}

		n, rerr := r.Read(b.Unwritten())
		if n > 0 {
			b.Produce(n)
			progressed = true
			c.recomputeInputFlags()
		}
		if rerr != nil {
			if isWouldBlock(rerr) {
				c.dataWaitingToBeRead = false
				break
			}
			c.raise(ErrBitRead, rerr)
			return progressed, rerr
		}
		if n == 0 {
			c.raise(ErrBitRead, errEOF)
			return progressed, errEOF
		}
		if b.Full() {
			c.inputBufferCapacityAvailable = false
			break
		}
	}
	c.inputBufferCapacityAvailable = c.input.Tail() != nil && !c.input.Tail().Full()
	return progressed, nil
}

var errEOF = errors.New("conn: read returned zero bytes")

// inputAllocPriority is overridden by the session via
// SetInputPriority; defaulting to opportunistic keeps a bare
// Connection usable in isolation (e.g. in tests).
func (c *Connection) inputAllocPriority() int {
	if c.priorityFn != nil {
		return c.priorityFn()
	}
	return 2
}
