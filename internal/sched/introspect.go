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

	"github.com/arfaxad/corosched/internal/humanize"
)

// SessionSummary is one session's introspection snapshot.
type SessionSummary struct {
	ID              uint64
	Role            Role
	DisplayName     string
	PipelineLength  int
	HavePriority    bool
	ErrorBits       uint8
	FacilitiesLine  string
}

// Introspect returns a snapshot of every live session, describing each
// one's application facilities as an English list (e.g. "exposes
// \"echo\" and \"upload\"") rather than a raw slice, matching the
// register the rest of the package reports errors in.
func (sc *Scheduler) Introspect() []SessionSummary {
	facilities := sc.app.Facilities()
	line := humanize.QuotedJoin(facilities, "and", "no facilities")

	out := make([]SessionSummary, 0, len(sc.sessions))
	for _, sess := range sc.sessions {
		out = append(out, SessionSummary{
			ID:             sess.id,
			Role:           sess.role,
			DisplayName:    sess.displayName,
			PipelineLength: sess.length,
			HavePriority:   sess.havePriority,
			ErrorBits:      uint8(sess.conn.ErrorBits()),
			FacilitiesLine: fmt.Sprintf("exposes %s", line),
		})
	}
	return out
}
