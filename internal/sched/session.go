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
	"github.com/arfaxad/corosched/api/transport"
	"github.com/arfaxad/corosched/internal/conn"
)

// Role distinguishes a session that accepts new inbound requests from
// one that only initiates them.
type Role int

const (
	RoleServer Role = iota
	RoleClient
)

// Session owns a BufferedConnection, a FIFO pipeline of Requests, two
// cursors into that pipeline, a want bitset, a role, and a transport
// binding. It is created by a transport on accept/connect and
// destroyed only when its refcount drops to zero after its last
// request completes.
type Session struct {
	id   uint64
	role Role

	displayName string

	conn    *conn.Connection
	binding transport.Binding

	head, tail   *Request
	inputCursor  *Request
	outputCursor *Request
	length       int

	want PhaseSet

	changed    bool
	processing bool

	refs int32

	havePriority bool

	// firstSliceDone records whether the session has run a RUN-ready
	// request yet; ProcessSession grants the scheduler's longSlice
	// until it is set and shortSlice afterwards.
	firstSliceDone bool

	sched *Scheduler

	// Arena is the application's private per-session extension data.
	Arena interface{}
}

// ID returns the session's monotonic identifier.
func (s *Session) ID() uint64 { return s.id }

// Role returns whether the session accepts (server) or only
// initiates (client) requests.
func (s *Session) Role() Role { return s.role }

// DisplayName returns the session's human-readable label (for logs
// and introspection).
func (s *Session) DisplayName() string { return s.displayName }

// Conn returns the session's BufferedConnection.
func (s *Session) Conn() *conn.Connection { return s.conn }

// HavePriority reports whether this session's pipeline currently
// holds the global priority slot.
func (s *Session) HavePriority() bool { return s.havePriority }

// Changed reports whether the scheduler should visit this session on
// the next post-dispatch pass.
func (s *Session) Changed() bool { return s.changed }

// Processing reports whether the session's deadline elapsed mid-pass
// and it must be re-entered on the next dispatch round.
func (s *Session) Processing() bool { return s.processing }

// Want returns the translation of the session's phase-want bitset and
// its connection's capability flags into the events a transport
// Binding should subscribe to — the computation spec'd as "the events
// implied by want and the capability flags".
func (s *Session) Want() transport.Events {
	var ev transport.Events
	if s.want.Has(WantInput) && s.conn.InputBufferCapacityAvailable() {
		ev |= transport.EventReadable
	}
	if s.want.Has(WantOutput) && s.conn.OutputWaitingToBeWritten() {
		ev |= transport.EventWritable
	}
	if s.conn.ErrorBits() != 0 {
		ev |= transport.EventTransportError
	}
	if s.want.Has(WantExternal) {
		ev |= transport.EventWake
	}
	return ev
}

// MarkChanged satisfies transport.SessionHandle: a Binding calls this
// from an asynchronous wake (e.g. an application-event self-notify).
func (s *Session) MarkChanged() { s.changed = true }

// Link increments the session's refcount.
func (s *Session) Link() { s.refs++ }

// Unlink decrements the refcount. The caller must have asserted the
// pipeline is empty before the last unlink; returns true when the
// session should be destroyed.
func (s *Session) Unlink() bool {
	s.refs--
	if s.refs < 0 {
		panic("sched: negative Session refcount")
	}
	if s.refs == 0 {
		if s.length != 0 {
			panic("sched: session destroyed with a non-empty request pipeline")
		}
		return true
	}
	return false
}

// LinkRequest appends req to the FIFO pipeline.
func (s *Session) LinkRequest(req *Request) {
	req.next = nil
	if s.tail != nil {
		s.tail.next = req
	} else {
		s.head = req
	}
	s.tail = req
	s.length++
	if s.inputCursor == nil {
		s.inputCursor = req
	}
	if s.outputCursor == nil {
		s.outputCursor = req
	}
}

// UnlinkRequest removes req from the pipeline, fixing up the
// input/output cursors if they pointed at it.
func (s *Session) UnlinkRequest(req *Request) {
	var prev *Request
	for cur := s.head; cur != nil; cur = cur.next {
		if cur == req {
			if prev != nil {
				prev.next = cur.next
			} else {
				s.head = cur.next
			}
			if s.tail == cur {
				s.tail = prev
			}
			s.length--
			break
		}
		prev = cur
	}
	if s.inputCursor == req {
		s.inputCursor = req.next
	}
	if s.outputCursor == req {
		s.outputCursor = req.next
	}
}

// PipelineLength returns the number of requests currently linked.
func (s *Session) PipelineLength() int { return s.length }

// FirstRunReady returns the first request in FIFO order whose RUN
// phase is ready and not done, or nil.
func (s *Session) FirstRunReady() *Request {
	for r := s.head; r != nil; r = r.next {
		if r.phases[Run].readyNotDone() {
			return r
		}
	}
	return nil
}

// Head returns the first linked request, or nil.
func (s *Session) Head() *Request { return s.head }

// Schedule recomputes the want bitset from every linked request and
// marks the session changed if it has runnable work or residual
// processing — the operation spec'd as "computes what events the
// transport must subscribe to, and sends an application event to
// itself if it has runnable work".
func (s *Session) Schedule() {
	var want PhaseSet
	for r := s.head; r != nil; r = r.next {
		want |= r.readyMinusDone()
	}
	s.want = want
	if want != 0 || s.processing {
		s.changed = true
	}
}

// Suspend clears the RUN-ready bit of the first not-done request —
// used by applications awaiting an external event.
func (s *Session) Suspend(req *Request) {
	req.ClearReady(Run)
	s.want |= WantExternal
}

// Resume sets the RUN-ready bit of req back and clears the external
// want, provided its RUN phase is not already done.
func (s *Session) Resume(req *Request) {
	if !req.phases[Run].done {
		req.SetReady(Run)
	}
	s.want &^= WantExternal
}

// Abort sets the connection's transport-error bit and schedules the
// session; the next call to the transport's Run notices it and tears
// the session down.
func (s *Session) Abort() {
	s.conn.RaiseTransportError()
	s.changed = true
}
