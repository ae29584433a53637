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

// Package corosched is the public facade over the cooperative,
// per-process request/session scheduler: a thin root package that
// wires a bufferpool.Pool, an application's callbacks, and a set of
// transport bindings into a runnable Scheduler, mirroring the way the
// teacher's root package wires transports, middleware, and a router
// into a runnable Dispatcher.
package corosched

import (
	"time"

	"go.uber.org/zap"

	"github.com/arfaxad/corosched/internal/bufferpool"
	"github.com/arfaxad/corosched/internal/metrics"
	"github.com/arfaxad/corosched/internal/sched"
)

// Re-exported so application authors never need to import an internal
// package directly: these are all type aliases, not new types, so a
// *Scheduler returned by New is interchangeable with *sched.Scheduler
// everywhere inside this module.
type (
	// Scheduler is the single explicit handle over one worker's
	// sessions, buffer-wait FIFO, and priority holder.
	Scheduler = sched.Scheduler

	// Session owns a BufferedConnection and a FIFO pipeline of Requests.
	Session = sched.Session

	// Request is the unit of work moving through a Session's
	// INPUT/RUN/OUTPUT phases.
	Request = sched.Request

	// Application is implemented by the code built on top of the core.
	Application = sched.Application

	// Role distinguishes a server session (accepts inbound work) from
	// a client session (only initiates it).
	Role = sched.Role

	// SessionSummary is one session's introspection snapshot.
	SessionSummary = sched.SessionSummary
)

// Re-exported Role constants.
const (
	RoleServer = sched.RoleServer
	RoleClient = sched.RoleClient
)

// Config specifies the parameters of a new Scheduler constructed via
// New. Zero-valued fields fall back to sched.Config's own defaults.
type Config struct {
	// PoolSize is the fixed per-buffer capacity; rounded up to
	// bufferpool.MinBufferSize and to a multiple of it.
	PoolSize int
	// PoolMinLevel and PoolMaxLevel bound the pool's level-triggered
	// LOW/OK/FULL tier report.
	PoolMinLevel int
	PoolMaxLevel int

	// ShortSlice and LongSlice are the cooperative time-slice budgets a
	// session's processing loop is granted on later passes versus its
	// very first RUN-ready request.
	ShortSlice time.Duration
	LongSlice  time.Duration

	// Logger receives structured diagnostics for buffer-pool tier
	// transitions and transport listen failures; session aborts and
	// invariant-violation panics are not logged. Defaults to
	// zap.NewNop().
	Logger *zap.Logger

	// Metrics, if set, receives pool-tier gauges and session/request
	// counters through an adapted metrics.Registry.
	Metrics *metrics.Registry
}

// New builds a Scheduler backed by a freshly allocated bufferpool.Pool,
// driving app's callbacks. The returned Scheduler is not yet running;
// call Start to begin listening on any session created beforehand, or
// simply start creating sessions — CreateSession schedules each one
// immediately regardless of whether Start has run.
func New(app Application, cfg Config) *Scheduler {
	pool := bufferpool.NewPool(bufferpool.Config{
		Size:     cfg.PoolSize,
		MinLevel: cfg.PoolMinLevel,
		MaxLevel: cfg.PoolMaxLevel,
	}, cfg.Logger)

	sc := sched.NewScheduler(pool, app, sched.Config{
		ShortSlice: cfg.ShortSlice,
		LongSlice:  cfg.LongSlice,
	}, cfg.Logger)

	if cfg.Metrics != nil {
		sc.WireMetrics(cfg.Metrics)
	}
	return sc
}
