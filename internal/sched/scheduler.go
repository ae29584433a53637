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

	"github.com/arfaxad/corosched/api/transport"
	"github.com/arfaxad/corosched/internal/bufferpool"
	"github.com/arfaxad/corosched/internal/clock"
	"github.com/arfaxad/corosched/internal/conn"
	isync "github.com/arfaxad/corosched/internal/sync"
)

// Scheduler is the single, explicit handle carrying every piece of
// per-worker-process state the design notes call out: the session
// list, the buffer-wait FIFO, the priority holder, the request-ID
// counter, and the deadline clock. Deliberately not a package-level
// singleton: every operation takes a *Scheduler.
type Scheduler struct {
	pool  *bufferpool.Pool
	app   Application
	log   *zap.Logger
	clock clock.Clock

	sessions []*Session

	waitHead, waitTail *Request
	priorityHolder     *Request

	nextRequestID uint64
	nextSessionID uint64

	shortSlice time.Duration
	longSlice  time.Duration

	lifecycle isync.LifecycleOnce
	metrics   metricSet
}

// Config bounds the scheduler's cooperative time-slicing.
type Config struct {
	ShortSlice time.Duration
	LongSlice  time.Duration
}

func (c Config) normalize() Config {
	if c.ShortSlice <= 0 {
		c.ShortSlice = 2 * time.Millisecond
	}
	if c.LongSlice <= 0 {
		c.LongSlice = 20 * time.Millisecond
	}
	return c
}

// NewScheduler builds a Scheduler over pool, driving app's callbacks.
// It registers itself as the pool's free-wakeup hook, so a buffer
// freed anywhere drains the buffer-wait FIFO.
func NewScheduler(pool *bufferpool.Pool, app Application, cfg Config, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.normalize()
	sc := &Scheduler{
		pool:       pool,
		app:        app,
		log:        log,
		clock:      clock.NewReal(),
		shortSlice: cfg.ShortSlice,
		longSlice:  cfg.LongSlice,
		metrics:    newMetricSet(nil),
	}
	pool.OnFree(sc.BufferWakeupAll)
	return sc
}

// SetClock overrides the scheduler's time source, used by tests to
// drive deadline expiry deterministically with a clock.FakeClock.
func (sc *Scheduler) SetClock(c clock.Clock) { sc.clock = c }

// Sessions returns the live session list, in scheduling order.
func (sc *Scheduler) Sessions() []*Session { return sc.sessions }

// SetPoolLevels reconfigures the underlying pool's MinLevel/MaxLevel
// without restarting the scheduler, used by a config hot-reload
// watcher.
func (sc *Scheduler) SetPoolLevels(minLevel, maxLevel int) {
	sc.pool.SetLevels(minLevel, maxLevel)
}

// PoolReport returns the pool's current level-triggered LOW/OK/FULL
// tier.
func (sc *Scheduler) PoolReport() bufferpool.Report {
	return sc.pool.Report()
}

// CreateSession allocates a Session bound to binding, initializes its
// Connection, assigns a monotonic ID, invokes the application's
// SessionInitialize, enqueues it in the global session list, and
// schedules it.
func (sc *Scheduler) CreateSession(binding transport.Binding, role Role, displayName string) (*Session, error) {
	sc.nextSessionID++
	sess := &Session{
		id:          sc.nextSessionID,
		role:        role,
		displayName: displayName,
		conn:        conn.New(sc.pool),
		binding:     binding,
		refs:        1,
		sched:       sc,
	}
	sess.conn.SetInputPriority(func() int { return sc.inputPriority(sess) })

	if err := sc.app.SessionInitialize(sess); err != nil {
		return nil, err
	}
	sc.sessions = append(sc.sessions, sess)
	sc.metrics.sessionsCreated.Inc()
	sess.Schedule()
	return sess, nil
}

// destroySession removes sess from the global list once its refcount
// hit zero; the caller has already run SessionShutdown.
func (sc *Scheduler) destroySession(sess *Session) {
	for i, s := range sc.sessions {
		if s == sess {
			sc.sessions = append(sc.sessions[:i], sc.sessions[i+1:]...)
			return
		}
	}
}

// CloseSession drops the session's baseline reference — the one held
// since CreateSession, standing in for the transport's weak
// back-reference. A Binding calls this once the underlying descriptor
// is actually closed (e.g. after Abort latched the transport-error bit
// and a subsequent Run observed it). If requests are still linked,
// their own strong references keep the session alive until each is
// reaped; this only tears it down once the pipeline has drained.
func (sc *Scheduler) CloseSession(sess *Session) {
	sc.unlinkSession(sess)
}

// unlinkSession drops sess's refcount and, when it reaches zero, runs
// SessionShutdown and removes it from the global list.
func (sc *Scheduler) unlinkSession(sess *Session) {
	if sess.Unlink() {
		sc.app.SessionShutdown(sess)
		sc.destroySession(sess)
	}
}

// CreateRequest allocates a Request owned by sess, assigns it the
// next ascending ID, runs the application's RequestInitialize, and
// links it into the session's pipeline.
func (sc *Scheduler) CreateRequest(sess *Session) (*Request, error) {
	sc.nextRequestID++
	req := newRequest(sc.nextRequestID, sess)
	if err := sc.app.RequestInitialize(req); err != nil {
		return nil, err
	}
	sess.Link()
	sess.LinkRequest(req)
	sc.metrics.requestsCreated.Inc()
	return req, nil
}

// reapRequest runs once all three phases of req are done: it unlinks
// req from its session, releases its pinned input buffers, and drops
// the refcount, running RequestFinish and the session's own unlink
// when it reaches zero.
func (sc *Scheduler) reapRequest(sess *Session, req *Request) {
	sess.UnlinkRequest(req)
	req.ReleaseInput()
	if req.Unlink() {
		sc.app.RequestFinish(req)
		sc.unlinkSession(sess)
	}
}

func (sc *Scheduler) inputPriority(sess *Session) int {
	switch {
	case sess.havePriority:
		return 0
	case sess.conn.DataWaitingToBeRead() && !sess.conn.InputBufferCapacityAvailable() && sess.want == WantInput:
		return 0
	default:
		return 1
	}
}
