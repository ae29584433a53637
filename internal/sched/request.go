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
	"fmt"

	"github.com/opentracing/opentracing-go"

	"github.com/arfaxad/corosched/internal/bufferpool"
)

// Request belongs to exactly one Session and carries the three
// orthogonal phase flags described in the glossary: INPUT, RUN,
// OUTPUT, each independently ready/done.
type Request struct {
	id      uint64
	session *Session

	phases [numPhases]phaseState

	// bufferWaiting snapshots the ready bits suspended by buffer_wait;
	// zero means the request is not on the buffer-wait queue.
	bufferWaiting PhaseSet
	waitNext      *Request // link inside the scheduler's buffer-wait FIFO

	// depends is the request this one depends on for priority purposes
	// (nullable from the dependent, strong from the dependant per the
	// cyclic-reference resolution in the design notes).
	depends *Request

	// first/lastN pins the span of input Buffers this request parsed
	// from, so they stay refcounted for its lifetime.
	first  *bufferpool.Buffer
	lastN  int
	pinned []*bufferpool.Buffer

	refs int32

	// Span carries an optional tracing span across the request's
	// lifetime; the core never reads or interprets it, only threads it
	// through for an application to start/finish.
	Span opentracing.Span

	// Arena is the application's private per-request extension data.
	Arena interface{}

	next *Request // FIFO link inside the session's request pipeline
}

func newRequest(id uint64, session *Session) *Request {
	return &Request{id: id, session: session, refs: 1}
}

// ID returns the request's stable 64-bit identifier.
func (r *Request) ID() uint64 { return r.id }

// Session returns the owning session.
func (r *Request) Session() *Session { return r.session }

// Ready reports whether phase p is currently ready (schedulable).
func (r *Request) Ready(p Phase) bool { return r.phases[p].ready }

// Done reports whether phase p has completed.
func (r *Request) Done(p Phase) bool { return r.phases[p].done }

// Complete reports whether all three phases are done.
func (r *Request) Complete() bool {
	for _, s := range r.phases {
		if !s.done {
			return false
		}
	}
	return true
}

// readyMinusDone returns, as a PhaseSet, the phases that are ready and
// not done — the contribution this request makes to its session's
// want bitset.
func (r *Request) readyMinusDone() PhaseSet {
	var s PhaseSet
	for p, st := range r.phases {
		if st.readyNotDone() {
			s |= phaseBit(Phase(p))
		}
	}
	return s
}

// SetReady transitions phase p to ready. Legal only from the initial
// (0,0) state or from a prior suspension; setting ready on an
// already-done phase is a fatal invariant violation ((*,1) -> (1,*)).
func (r *Request) SetReady(p Phase) {
	st := &r.phases[p]
	if st.done {
		panic(fmt.Sprintf("sched: cannot set phase %s ready after done", p))
	}
	st.ready = true
}

// ClearReady suspends phase p (scheduler-initiated, e.g. the
// application asked to wait on an external event or a buffer).
func (r *Request) ClearReady(p Phase) {
	r.phases[p].ready = false
}

// SetDone transitions phase p to done, clearing ready. Marking a
// phase done twice is harmless; un-doing one (the illegal
// (*,1) -> (1,*) transition) can only happen via SetReady, which
// itself panics.
func (r *Request) SetDone(p Phase) {
	st := &r.phases[p]
	st.ready = false
	st.done = true
}

// SkipPhase marks a synthesised request's phase done without it ever
// having been ready: the (0,0) -> (0,1) transition.
func (r *Request) SkipPhase(p Phase) {
	st := &r.phases[p]
	if st.ready {
		panic(fmt.Sprintf("sched: SkipPhase called on ready phase %s", p))
	}
	st.done = true
}

// AbortPending marks every phase that is not yet done as done, without
// requiring it to have been ready first — used when a request is
// lost to a callback error or a session abort.
func (r *Request) AbortPending() {
	for p := range r.phases {
		if !r.phases[p].done {
			r.phases[p].ready = false
			r.phases[p].done = true
		}
	}
}

// PinInput extends the request's input span to include buf, retaining
// a shared reference for the lifetime of the request.
func (r *Request) PinInput(buf *bufferpool.Buffer) {
	if r.first == nil {
		r.first = buf
	}
	buf.Retain()
	r.pinned = append(r.pinned, buf)
}

// ReleaseInput releases every Buffer pinned by this request. Called
// once, when the request is reaped.
func (r *Request) ReleaseInput() {
	for _, b := range r.pinned {
		b.Release()
	}
	r.pinned = nil
	r.first = nil
}

// Link increments the request's refcount.
func (r *Request) Link() { r.refs++ }

// Unlink decrements the refcount, returning true when it reaches
// zero (the caller should then run the application's finish callback
// and free the arena).
func (r *Request) Unlink() bool {
	r.refs--
	if r.refs < 0 {
		panic("sched: negative Request refcount")
	}
	return r.refs == 0
}

// DependOn records that r depends on other for priority-transitivity
// purposes (scenario 5: a chain of dependent requests shares the
// priority holder's rescue).
func (r *Request) DependOn(other *Request) { r.depends = other }

// dependencyChainContains reports whether holder appears in req's
// dependency chain (including req itself), used by priority_acquire.
func dependencyChainContains(req, holder *Request) bool {
	for cur := req; cur != nil; cur = cur.depends {
		if cur == holder {
			return true
		}
	}
	return false
}
