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

// Application is implemented by whatever is built on top of the core.
// Unlike a manual-arena C application, extension data is just the Go
// interface{} stored in Session.Arena / Request.Arena — there is
// nothing analogous to the original's fixed-size session/request/config
// extension byte counts to declare up front.
type Application interface {
	// SessionInitialize runs once, synchronously, when a session is
	// created (on transport accept/connect).
	SessionInitialize(sess *Session) error

	// SessionShutdown runs once a session's refcount reaches zero.
	SessionShutdown(sess *Session)

	// RequestInitialize runs when a request is created, before it is
	// linked into its session's pipeline.
	RequestInitialize(req *Request) error

	// RequestFinish runs once a request's refcount reaches zero, after
	// all three phases are done.
	RequestFinish(req *Request)

	// RequestInput is invoked with the current unparsed window and
	// whether it is already known to be the last (a READ error
	// surfaced, or the connection torn down) — a nil window is the
	// null-buffer callback used to drain pending phases on abort.
	// consumed reports how many leading bytes of window the application
	// actually parsed; the scheduler commits only that much, leaving
	// the remainder queued for the next pass. Returning more=true
	// leaves INPUT ready for another pass.
	RequestInput(req *Request, window []byte, eof bool, deadline time.Time) (consumed int, more bool, err error)

	// RequestOutput lets the application format directly into c's
	// output queue via OutputLookahead/OutputCommit. aborted is true
	// for the null-buffer callback fired when a WRITE error has
	// already been raised — c is nil in that case, and the
	// application is expected to simply mark the phase done.
	// Returning more=true leaves OUTPUT ready for another pass.
	RequestOutput(req *Request, c *conn.Connection, aborted bool, deadline time.Time) (more bool, err error)

	// RequestRun is invoked with a deadline; it may acquire priority,
	// create dependent requests, or suspend (return more=true without
	// marking RUN done).
	RequestRun(req *Request, deadline time.Time) (more bool, err error)

	// Facilities names the optional capabilities this application
	// exposes, surfaced through introspection.
	Facilities() []string
}

// InteractivePrompter is an optional Application capability: a
// session created over an interactive terminal may ask the
// application to render a prompt before the next read.
type InteractivePrompter interface {
	SessionInteractivePrompt(sess *Session)
}

// SleepHook is an optional Application capability invoked by the
// scheduler's sleep tick (roughly once per second) for every request
// of every session — used for request-level timeouts.
type SleepHook interface {
	RequestSleep(nowMicros int64, sess *Session, req *Request)
}
