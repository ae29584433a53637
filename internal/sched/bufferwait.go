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

// BufferWait snapshots req's current ready bits into bufferWaiting,
// clears ready, and enqueues req at the tail of the global FIFO. It is
// called when the scheduler could not allocate a buffer on req's
// behalf.
func (sc *Scheduler) BufferWait(req *Request) {
	if req.bufferWaiting != 0 {
		return // already waiting
	}
	var snap PhaseSet
	for p := range req.phases {
		if req.phases[p].ready {
			snap |= phaseBit(Phase(p))
			req.phases[p].ready = false
		}
	}
	req.bufferWaiting = snap
	req.session.want |= WantBuffer
	sc.metrics.bufferWaits.Inc()

	req.waitNext = nil
	if sc.waitTail != nil {
		sc.waitTail.waitNext = req
	} else {
		sc.waitHead = req
	}
	sc.waitTail = req
}

// bufferWakeup restores the snapshot taken by BufferWait and marks the
// session changed. It does not touch the FIFO: BufferWakeupAll, its
// only caller, has already unlinked req.
func (sc *Scheduler) bufferWakeup(req *Request) {
	snap := req.bufferWaiting
	req.bufferWaiting = 0
	for p := range req.phases {
		if snap.Has(phaseBit(Phase(p))) && !req.phases[p].done {
			req.phases[p].ready = true
		}
	}
	req.session.changed = true
}

// BufferWakeupAll drains the entire buffer-wait FIFO in order,
// restoring each request's ready bits. Invoked from the pool's free
// hook and from PriorityRelease.
func (sc *Scheduler) BufferWakeupAll() {
	for sc.waitHead != nil {
		req := sc.waitHead
		sc.waitHead = req.waitNext
		req.waitNext = nil
		if sc.waitHead == nil {
			sc.waitTail = nil
		}
		sc.bufferWakeup(req)
	}
}
