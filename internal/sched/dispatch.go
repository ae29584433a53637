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

	"go.uber.org/zap"
)

// SleepTickInterval is approximately how often the scheduler's sleep
// tick fires to give every request a chance at a timeout check.
const SleepTickInterval = time.Second

// Dispatch is the scheduler's post-event-loop-dispatch pass: for
// every session with changed = true, run its processing loop; then
// re-register transport interest for every session; then, if any
// session is still mid-slice, self-notify it so the next dispatch
// round re-enters it.
func (sc *Scheduler) Dispatch(now time.Time) {
	for _, sess := range sc.sessions {
		if sess.Changed() {
			sess.changed = false
			sc.ProcessSession(sess, now)
		}
	}
	for _, sess := range sc.sessions {
		if sess.binding != nil {
			if err := sess.binding.Listen(sess); err != nil {
				sc.log.Warn("transport listen failed", zap.Uint64("session_id", sess.ID()), zap.Error(err))
			}
		}
		if sess.Processing() {
			sess.MarkChanged()
		}
	}
}

// SleepTick iterates every request of every session and invokes the
// application's optional SleepHook with the current monotonic
// microsecond time — used for request-level timeouts. It is meant to
// fire roughly once per SleepTickInterval.
func (sc *Scheduler) SleepTick(nowMicros int64) {
	hook, ok := sc.app.(SleepHook)
	if !ok {
		return
	}
	for _, sess := range sc.sessions {
		for r := sess.head; r != nil; r = r.next {
			hook.RequestSleep(nowMicros, sess, r)
		}
	}
}
