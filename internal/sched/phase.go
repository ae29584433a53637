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

// Package sched implements the request/session scheduler core: a
// Request's six-bit phase state machine and priority/buffer-wait
// protocols, a Session's processing loop, and the post-dispatch
// Scheduler loop that drives it all. Everything here runs from one
// execution context per worker process; nothing is safe to call
// concurrently from two goroutines.
package sched

// Phase is one of the three orthogonal concerns a Request progresses
// through.
type Phase int

const (
	Input Phase = iota
	Run
	Output
	numPhases
)

func (p Phase) String() string {
	switch p {
	case Input:
		return "INPUT"
	case Run:
		return "RUN"
	case Output:
		return "OUTPUT"
	default:
		return "UNKNOWN"
	}
}

// PhaseSet is a bitset over {INPUT, RUN, OUTPUT}, plus the
// scheduler-added BUFFER and EXTERNAL concerns used by Session.Want.
type PhaseSet uint8

const (
	WantInput PhaseSet = 1 << iota
	WantRun
	WantOutput
	WantBuffer
	WantExternal
)

func phaseBit(p Phase) PhaseSet {
	switch p {
	case Input:
		return WantInput
	case Run:
		return WantRun
	case Output:
		return WantOutput
	default:
		return 0
	}
}

func (s PhaseSet) Has(bit PhaseSet) bool { return s&bit != 0 }

// phaseState is the (ready, done) pair for one phase. ready and done
// are never simultaneously true; attempting to make them so, or
// clearing done, is a fatal invariant violation (see setReady/setDone).
type phaseState struct {
	ready bool
	done  bool
}

func (s phaseState) readyNotDone() bool { return s.ready && !s.done }
