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
	"time"

	"github.com/arfaxad/corosched/internal/conn"
)

// MaxInputQueue bounds how many requests a server session will keep
// linked at once before it refuses to synthesise another incoming
// request, even with pending wire data.
const MaxInputQueue = 10

// MaxInputBuffersUsed bounds how many input Buffers a session may
// hold before synthesis of a new incoming request is refused.
const MaxInputBuffersUsed = 2

// ProcessSession is the session processing loop, run once per
// event-loop post-dispatch pass for every changed session. It repeats
// reap/run/transport-drain/post-pass until nothing progresses in one
// iteration or the deadline elapses.
func (sc *Scheduler) ProcessSession(sess *Session, now time.Time) {
	slice := sc.shortSlice
	if !sess.firstSliceDone {
		slice = sc.longSlice
	}
	deadline := now.Add(slice)

	for {
		progressed := false

		if sess.head != nil && sess.head.Complete() {
			sc.reapRequest(sess, sess.head)
			progressed = true
		}

		if sess.conn.ErrorBits() == 0 {
			if r := sess.FirstRunReady(); r != nil {
				sess.firstSliceDone = true
				more, err := sc.app.RequestRun(r, deadline)
				switch {
				case err != nil:
					r.AbortPending()
				case !more:
					r.SetDone(Run)
					if !r.Done(Output) {
						r.SetReady(Output)
					}
				}
				progressed = true
			}
		}

		if sess.binding != nil {
			changed, _ := sess.binding.Run(sess, deadline)
			if changed {
				progressed = true
			}
		}

		if sc.postPass(sess, deadline) {
			progressed = true
		}

		if !progressed {
			break
		}
		if sc.clock.Now().After(deadline) {
			sess.processing = true
			sess.Schedule()
			return
		}
	}
	sess.processing = false
	sess.Schedule()
}

func (sess *Session) firstPhaseRequest(p Phase) *Request {
	for r := sess.head; r != nil; r = r.next {
		if r.phases[p].ready && !r.phases[p].done {
			return r
		}
	}
	return nil
}

func (sess *Session) hasPendingPhase(p Phase) bool {
	for r := sess.head; r != nil; r = r.next {
		if !r.phases[p].done {
			return true
		}
	}
	return false
}

func (sess *Session) inputBuffersUsed() int {
	return sess.conn.InputQueueLen()
}

// postPass runs steps 4a-4h of the session processing loop.
func (sc *Scheduler) postPass(sess *Session, deadline time.Time) bool {
	progressed := false
	c := sess.conn

	// (a) synthesize an incoming request.
	if sess.role == RoleServer {
		hasInputPending := c.DataWaitingToBeRead() || c.InputWaitingToBeParsed()
		hasInputRequest := sess.firstPhaseRequest(Input) != nil
		if hasInputPending && !hasInputRequest &&
			sess.length < MaxInputQueue && sess.inputBuffersUsed() <= MaxInputBuffersUsed {
			if req, err := sc.CreateRequest(sess); err == nil {
				req.SetReady(Input)
				progressed = true
			}
		}
	}

	// (b) cursors and want bitset are recomputed by Schedule(), called
	// at the end of ProcessSession; nothing to do mid-pass beyond that.

	// (c) grow input buffer capacity for an INPUT-ready request.
	if req := sess.firstPhaseRequest(Input); req != nil && !c.InputBufferCapacityAvailable() {
		priority := sc.inputPriority(sess)
		if err := c.GrowInput(priority); err != nil {
			sc.BufferWait(req)
		} else {
			progressed = true
		}
	}

	// (d) grow output buffer capacity for an OUTPUT-ready request.
	if req := sess.firstPhaseRequest(Output); req != nil && !c.OutputBufferCapacityAvailable() {
		priority := sc.outputPriority(sess)
		if _, err := c.OutputLookahead(1, priority); err != nil {
			sc.BufferWait(req)
		} else {
			progressed = true
		}
	}

	// (e) format into the output queue.
	if req := sess.firstPhaseRequest(Output); req != nil && c.OutputBufferCapacityAvailable() {
		more, err := sc.app.RequestOutput(req, c, false, deadline)
		switch {
		case err != nil:
			sess.Abort()
		case !more:
			req.SetDone(Output)
		}
		progressed = true
	}

	// (f) parse from the input queue.
	if req := sess.firstPhaseRequest(Input); req != nil && c.InputWaitingToBeParsed() {
		window, head, ok := c.InputLookahead()
		if ok {
			req.PinInput(head)
			consumed, more, err := sc.app.RequestInput(req, window, false, deadline)
			if consumed < 0 {
				consumed = 0
			} else if consumed > len(window) {
				consumed = len(window)
			}
			c.InputCommit(head.Consumed() + consumed)
			switch {
			case err != nil:
				sess.Abort()
			case !more:
				req.SetDone(Input)
				if !req.Done(Run) {
					req.SetReady(Run)
				}
			}
			progressed = true
		}
	}

	// (g) READ error surfaced once the parse queue drains.
	if c.ErrorBits()&conn.ErrBitRead != 0 && !c.InputWaitingToBeParsed() {
		for r := sess.head; r != nil; r = r.next {
			if r.phases[Input].ready && !r.phases[Input].done {
				sc.app.RequestInput(r, nil, true, deadline)
				r.SetDone(Input)
				progressed = true
			}
		}
	}

	// (h) WRITE error mirrors (g) for OUTPUT. A request whose OUTPUT
	// side has failed has no use for whatever INPUT it hasn't parsed
	// yet, so that unparsed input is discarded here too.
	if c.ErrorBits()&conn.ErrBitWrite != 0 {
		c.InputClearUnparsed()
		for r := sess.head; r != nil; r = r.next {
			if r.phases[Output].ready && !r.phases[Output].done {
				sc.app.RequestOutput(r, nil, true, deadline)
				r.SetDone(Output)
				progressed = true
			}
		}
	}

	return progressed
}

func (sc *Scheduler) outputPriority(sess *Session) int {
	c := sess.conn
	switch {
	case sess.havePriority:
		return 0
	case c.WriteCapacityAvailable() && !c.OutputBufferCapacityAvailable() && sess.want == WantOutput:
		return 0
	default:
		return 1
	}
}
