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
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Start brings up every registered binding exactly once; a second call
// returns the first call's result without re-running anything.
func (sc *Scheduler) Start() error {
	return sc.lifecycle.Start(func() error {
		for _, sess := range sc.sessions {
			if sess.binding == nil {
				continue
			}
			if err := sess.binding.Listen(sess); err != nil {
				return err
			}
		}
		return nil
	})
}

// IsRunning reports whether Start has completed without a matching Stop.
func (sc *Scheduler) IsRunning() bool {
	return sc.lifecycle.IsRunning()
}

// Stop drains every live session — raising a transport error on each
// so its pipeline reaps on the next dispatch — then waits up to ctx's
// deadline for the session list to empty, running a final tick loop of
// its own so draining makes forward progress without an external
// event loop. A second call returns the first call's result.
func (sc *Scheduler) Stop(ctx context.Context) error {
	return sc.lifecycle.Stop(func() error {
		var g errgroup.Group
		for _, sess := range sc.sessions {
			sess := sess
			g.Go(func() error {
				sess.Abort()
				return nil
			})
		}
		g.Wait() // each Abort only latches a bit; none can fail

		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		for len(sc.sessions) > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticker.C:
				sc.Dispatch(now)
			}
		}
		return nil
	})
}
