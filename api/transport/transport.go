// Copyright (c) 2016 Uber Technologies, Inc.
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

// Package transport defines the narrow surface the scheduler core needs
// from a concrete transport (stream sockets, local sockets, an
// interactive terminal, or anything else reachable by URL scheme). The
// core never touches a file descriptor or event-loop primitive
// directly; it only calls through a Binding.
package transport

import (
	"net/url"
	"time"
)

// Role distinguishes the two ways a Module can be asked to produce a
// Binding: accepting inbound work, or initiating outbound work.
type Role int

const (
	// RoleServer accepts new inbound sessions (the module's "open").
	RoleServer Role = iota
	// RoleClient initiates one outbound session (the module's "connect").
	RoleClient
)

func (r Role) String() string {
	if r == RoleClient {
		return "client"
	}
	return "server"
}

// Events is a bitset of the four events a transport signals to the
// core: readable, writable, transport-error, and application-wake.
type Events uint8

const (
	EventReadable Events = 1 << iota
	EventWritable
	EventTransportError
	EventWake
)

func (e Events) Has(flag Events) bool { return e&flag != 0 }

// SessionHandle is the narrow view of a session a Binding needs in
// order to decide what to subscribe to and to request re-entry. It is
// defined here, at the point of use, rather than importing the
// scheduler's Session type directly, so this package stays free of any
// dependency on session/request internals; the scheduler package
// implements it.
type SessionHandle interface {
	// Want returns the bitset of concerns (INPUT, RUN, OUTPUT, BUFFER,
	// EXTERNAL) the session is currently interested in, folded down to
	// the subset that maps onto transport Events.
	Want() Events

	// MarkChanged flags the session for re-processing on the next
	// scheduler pass; a Binding calls this from an asynchronous wake.
	MarkChanged()
}

// Binding is the per-connection trait consumed by a session: exactly
// three methods, mirroring the way the core drives an accepted or
// connected endpoint without ever seeing its descriptor.
type Binding interface {
	// Run drains the transport for sess up to deadline and reports
	// whether anything changed (bytes moved, or an error/close was
	// observed). A zero deadline means run until would-block.
	Run(sess SessionHandle, deadline time.Time) (changed bool, err error)

	// Listen (re)subscribes to exactly the events implied by sess.Want()
	// and the session's BufferedConnection capability flags.
	Listen(sess SessionHandle) error

	// SetTimeout arms an optional per-binding timeout; transports with
	// no notion of one may no-op.
	SetTimeout(d time.Duration)
}

// Module opens, closes, and connects Bindings for one URL scheme.
type Module interface {
	// Open produces a Binding for u under the given Role: RoleServer
	// accepts inbound work (the module's "open"/listen), RoleClient
	// initiates outbound work (the module's "connect").
	Open(u *url.URL, role Role) (Binding, error)

	// Close releases any resources the module holds that are not owned
	// by an individual Binding (e.g. a listening socket).
	Close() error
}
