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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arfaxad/corosched/internal/bufferpool"
	"github.com/arfaxad/corosched/internal/conn"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubApp is a minimal Application that marks every phase done on its
// first visit, optionally failing a named hook.
type stubApp struct {
	failInit    bool
	facilities  []string
	initialized []uint64
	finished    []uint64
}

func (a *stubApp) SessionInitialize(sess *Session) error {
	if a.failInit {
		return assert.AnError
	}
	return nil
}
func (a *stubApp) SessionShutdown(sess *Session) {}
func (a *stubApp) RequestInitialize(req *Request) error {
	a.initialized = append(a.initialized, req.ID())
	return nil
}
func (a *stubApp) RequestFinish(req *Request) { a.finished = append(a.finished, req.ID()) }
func (a *stubApp) RequestInput(req *Request, window []byte, eof bool, deadline time.Time) (int, bool, error) {
	return len(window), false, nil
}
func (a *stubApp) RequestOutput(req *Request, c *conn.Connection, aborted bool, deadline time.Time) (bool, error) {
	return false, nil
}
func (a *stubApp) RequestRun(req *Request, deadline time.Time) (bool, error) { return false, nil }
func (a *stubApp) Facilities() []string                                     { return a.facilities }

func newTestScheduler(t *testing.T) (*Scheduler, *stubApp) {
	t.Helper()
	pool := bufferpool.NewPool(bufferpool.Config{Size: 4096, MinLevel: 4096, MaxLevel: 4096 * 4}, nil)
	app := &stubApp{facilities: []string{"echo"}}
	sc := NewScheduler(pool, app, Config{}, nil)
	return sc, app
}

func TestCreateSessionAndRequestLifecycle(t *testing.T) {
	sc, app := newTestScheduler(t)

	sess, err := sc.CreateSession(nil, RoleServer, "conn-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), sess.ID())
	assert.Len(t, app.initialized, 0)

	req, err := sc.CreateRequest(sess)
	require.NoError(t, err)
	assert.Equal(t, []uint64{req.ID()}, app.initialized)
	assert.Equal(t, 1, sess.PipelineLength())

	req.SkipPhase(Input)
	req.SkipPhase(Run)
	req.SkipPhase(Output)
	assert.True(t, req.Complete())

	sc.reapRequest(sess, req)
	assert.Equal(t, 0, sess.PipelineLength())
	assert.Equal(t, []uint64{req.ID()}, app.finished)
}

func TestCreateSessionPropagatesInitError(t *testing.T) {
	pool := bufferpool.NewPool(bufferpool.Config{Size: 4096}, nil)
	app := &stubApp{failInit: true}
	sc := NewScheduler(pool, app, Config{}, nil)

	_, err := sc.CreateSession(nil, RoleServer, "bad")
	assert.Error(t, err)
	assert.Empty(t, sc.Sessions())
}

func TestRequestPhaseStateMachine(t *testing.T) {
	sc, _ := newTestScheduler(t)
	sess, err := sc.CreateSession(nil, RoleServer, "s")
	require.NoError(t, err)
	req, err := sc.CreateRequest(sess)
	require.NoError(t, err)

	assert.False(t, req.Ready(Input))
	req.SetReady(Input)
	assert.True(t, req.Ready(Input))

	req.SetDone(Input)
	assert.False(t, req.Ready(Input))
	assert.True(t, req.Done(Input))

	assert.Panics(t, func() { req.SetReady(Input) })
}

func TestSkipPhasePanicsIfAlreadyReady(t *testing.T) {
	sc, _ := newTestScheduler(t)
	sess, _ := sc.CreateSession(nil, RoleServer, "s")
	req, _ := sc.CreateRequest(sess)

	req.SetReady(Run)
	assert.Panics(t, func() { req.SkipPhase(Run) })
}

func TestPriorityAcquireReleaseAndDependency(t *testing.T) {
	sc, _ := newTestScheduler(t)
	sessA, _ := sc.CreateSession(nil, RoleServer, "a")
	sessB, _ := sc.CreateSession(nil, RoleServer, "b")
	reqA, _ := sc.CreateRequest(sessA)
	reqB, _ := sc.CreateRequest(sessB)

	assert.True(t, sc.PriorityAcquire(reqA))
	assert.True(t, sessA.HavePriority())

	assert.False(t, sc.PriorityAcquire(reqB))

	reqB.DependOn(reqA)
	assert.True(t, sc.PriorityAcquire(reqB))
	assert.Equal(t, reqB, sc.priorityHolder)

	sc.PriorityRelease(reqB)
	assert.False(t, sc.HasPriority(reqB))
	assert.False(t, sessB.HavePriority())
}

func TestBufferWaitAndWakeupRestoresReadyBits(t *testing.T) {
	sc, _ := newTestScheduler(t)
	sess, _ := sc.CreateSession(nil, RoleServer, "s")
	req, _ := sc.CreateRequest(sess)

	req.SetReady(Input)
	req.SetReady(Run)
	sc.BufferWait(req)

	assert.False(t, req.Ready(Input))
	assert.False(t, req.Ready(Run))
	assert.NotZero(t, req.bufferWaiting)
	assert.True(t, sess.want.Has(WantBuffer))

	sc.BufferWakeupAll()
	assert.True(t, req.Ready(Input))
	assert.True(t, req.Ready(Run))
	assert.Zero(t, req.bufferWaiting)
}

func TestBufferWaitIsIdempotent(t *testing.T) {
	sc, _ := newTestScheduler(t)
	sess, _ := sc.CreateSession(nil, RoleServer, "s")
	req, _ := sc.CreateRequest(sess)

	req.SetReady(Input)
	sc.BufferWait(req)
	snapshot := req.bufferWaiting
	sc.BufferWait(req) // no-op: already waiting
	assert.Equal(t, snapshot, req.bufferWaiting)
}

func TestSessionScheduleComputesWantFromPipeline(t *testing.T) {
	sc, _ := newTestScheduler(t)
	sess, _ := sc.CreateSession(nil, RoleServer, "s")
	req, _ := sc.CreateRequest(sess)

	req.SetReady(Run)
	sess.Schedule()
	assert.True(t, sess.want.Has(WantRun))
	assert.True(t, sess.Changed())
}

func TestIntrospectReportsLiveSessions(t *testing.T) {
	sc, _ := newTestScheduler(t)
	_, err := sc.CreateSession(nil, RoleServer, "alpha")
	require.NoError(t, err)

	summaries := sc.Introspect()
	require.Len(t, summaries, 1)
	assert.Equal(t, "alpha", summaries[0].DisplayName)
	assert.Contains(t, summaries[0].FacilitiesLine, "echo")
}

func TestPoolReportReflectsTier(t *testing.T) {
	sc, _ := newTestScheduler(t)
	assert.Equal(t, bufferpool.OK, sc.PoolReport())

	sc.SetPoolLevels(1<<20, 1<<20) // raise MinLevel far above available
	assert.Equal(t, bufferpool.Low, sc.PoolReport())
}

func TestSchedulerLifecycleStartStopIsIdempotent(t *testing.T) {
	sc, _ := newTestScheduler(t)
	require.NoError(t, sc.Start())
	assert.True(t, sc.IsRunning())
	require.NoError(t, sc.Start()) // second call is a no-op

	// Drop every session's baseline reference up front so Stop's drain
	// loop finds an already-empty session list and returns without
	// waiting on the ticker.
	for _, sess := range append([]*Session{}, sc.Sessions()...) {
		sc.CloseSession(sess)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sc.Stop(ctx))
	assert.False(t, sc.IsRunning())
}
