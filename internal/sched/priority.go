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

// PriorityAcquire grants req the system-wide priority slot, succeeding
// iff nobody holds it, or the current holder is on req's own
// dependency chain (scenario 5: a dependent request transitively
// rescues its dependant). On success the owning session is marked
// have_priority.
func (sc *Scheduler) PriorityAcquire(req *Request) bool {
	if sc.priorityHolder != nil && sc.priorityHolder != req && !dependencyChainContains(req, sc.priorityHolder) {
		return false
	}
	if prev := sc.priorityHolder; prev != nil && prev.session != req.session {
		prev.session.havePriority = false
		prev.session.conn.SetHavePriority(false)
	}
	sc.priorityHolder = req
	req.session.havePriority = true
	req.session.conn.SetHavePriority(true)
	return true
}

// PriorityRelease clears the holder if it matches req, then wakes
// every buffer-waiter.
func (sc *Scheduler) PriorityRelease(req *Request) {
	if sc.priorityHolder == req {
		sc.priorityHolder = nil
		req.session.havePriority = false
		req.session.conn.SetHavePriority(false)
	}
	sc.BufferWakeupAll()
}

// HasPriority reports whether req currently holds the global slot.
func (sc *Scheduler) HasPriority(req *Request) bool {
	return sc.priorityHolder == req
}
