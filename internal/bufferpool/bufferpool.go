// Copyright (c) 2024 Uber Technologies, Inc.
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

package bufferpool

import (
	"sync"

	"github.com/arfaxad/corosched/errcode"
	"go.uber.org/zap"
)

// Report is the pool's fill-level classification, recomputed on every
// alloc/free and logged once per edge.
type Report int

const (
	// Low means available < MinLevel.
	Low Report = iota
	// OK means MinLevel <= available <= MaxLevel.
	OK
	// Full means available > MaxLevel.
	Full
)

func (r Report) String() string {
	switch r {
	case Low:
		return "LOW"
	case Full:
		return "FULL"
	default:
		return "OK"
	}
}

// Policy is the allocation policy derived from AvailablePercent,
// independent of the Low/OK/Full fill-level Report.
type Policy int

const (
	// Generous grants any request.
	Generous Policy = iota
	// Fair grants requests with priority <= 1.
	Fair
	// Scarce grants only priority-0 requests.
	Scarce
)

func (p Policy) String() string {
	switch p {
	case Fair:
		return "fair"
	case Scarce:
		return "scarce"
	default:
		return "generous"
	}
}

// Config configures a Pool. Size is rounded up to at least
// MinBufferSize and to a multiple of it; MinLevel and MaxLevel are
// rounded up to integer multiples of the resulting Size, and MaxLevel
// is raised to MinLevel if it would otherwise be smaller.
type Config struct {
	Size     int
	MinLevel int
	MaxLevel int
}

func (c Config) normalize() Config {
	size := c.Size
	if size < MinBufferSize {
		size = MinBufferSize
	}
	if rem := size % MinBufferSize; rem != 0 {
		size += MinBufferSize - rem
	}
	min := roundUpToMultiple(c.MinLevel, size)
	max := roundUpToMultiple(c.MaxLevel, size)
	if max < min {
		max = min
	}
	return Config{Size: size, MinLevel: min, MaxLevel: max}
}

func roundUpToMultiple(v, unit int) int {
	if v <= 0 {
		return 0
	}
	if rem := v % unit; rem != 0 {
		v += unit - rem
	}
	return v
}

// Pool is a fixed-memory freelist of Buffers with a three-tier
// allocation policy. A Config of MinLevel=MaxLevel=0 makes the Pool an
// unbounded wrapper around the system allocator: every request is
// granted and every freed Buffer is retained rather than dropped.
type Pool struct {
	mu      sync.Mutex
	cfg     Config
	free    BufferQueue
	avail   int
	report  Report
	log     *zap.Logger
	onFree  func()
	onTier  func(Report)
}

// NewPool builds a Pool and eagerly fills it to cfg.MaxLevel.
func NewPool(cfg Config, log *zap.Logger) *Pool {
	cfg = cfg.normalize()
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool{cfg: cfg, log: log}
	for p.avail < p.cfg.MaxLevel {
		p.free.PushTail(newBuffer(p, p.cfg.Size))
		p.avail += p.cfg.Size
	}
	p.recomputeReport(true)
	return p
}

// OnFree registers the callback invoked after a Buffer is returned to
// the pool. The scheduler wires its buffer-wait wakeup-all here; the
// pool itself holds no opinion about who is waiting.
func (p *Pool) OnFree(fn func()) {
	p.mu.Lock()
	p.onFree = fn
	p.mu.Unlock()
}

// OnTierChange registers a callback invoked with the new Report
// whenever the fill-level tier transitions — the hook a metrics gauge
// subscribes through.
func (p *Pool) OnTierChange(fn func(Report)) {
	p.mu.Lock()
	p.onTier = fn
	p.mu.Unlock()
}

// Size returns the pool's fixed per-buffer capacity.
func (p *Pool) Size() int { return p.cfg.Size }

// Report returns the pool's current LOW/OK/FULL fill-level tier.
func (p *Pool) Report() Report {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.report
}

// Available returns the bytes currently held in the free queue.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.avail
}

// AvailablePercent returns available as a percentage of MaxLevel. An
// unbounded pool (MaxLevel == 0) always reports 100.
func (p *Pool) AvailablePercent() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.availablePercentLocked()
}

func (p *Pool) availablePercentLocked() float64 {
	if p.cfg.MaxLevel <= 0 {
		return 100
	}
	return 100 * float64(p.avail) / float64(p.cfg.MaxLevel)
}

// SetLevels reconfigures MinLevel/MaxLevel without discarding the
// existing free queue or any buffer currently checked out — used by a
// config hot-reload watcher. Both are rounded up to a multiple of the
// pool's fixed Size, the same as the constructor's Config.
func (p *Pool) SetLevels(minLevel, maxLevel int) {
	p.mu.Lock()
	min := roundUpToMultiple(minLevel, p.cfg.Size)
	max := roundUpToMultiple(maxLevel, p.cfg.Size)
	if max < min {
		max = min
	}
	p.cfg.MinLevel, p.cfg.MaxLevel = min, max
	p.recomputeReport(false)
	p.mu.Unlock()
}

// CurrentPolicy returns the allocation policy implied by the current
// AvailablePercent.
func (p *Pool) CurrentPolicy() Policy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.policyLocked()
}

func (p *Pool) policyLocked() Policy {
	switch pct := p.availablePercentLocked(); {
	case pct >= 50:
		return Generous
	case pct >= 10:
		return Fair
	default:
		return Scarce
	}
}

// Allows reports whether a caller at the given priority (0 urgent, 1
// fair, 2 opportunistic) may be granted a Buffer under the current
// policy, without actually allocating one.
func (p *Pool) Allows(priority int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allowsLocked(priority)
}

func (p *Pool) allowsLocked(priority int) bool {
	switch p.policyLocked() {
	case Generous:
		return true
	case Fair:
		return priority <= 1
	default:
		return priority == 0
	}
}

// Alloc returns a reinitialized Buffer from the free queue, or a
// freshly allocated one if the queue is empty, subject to the priority
// policy. It fails with an errcode.No error — a policy denial, not a
// system error — when the caller's priority is not admitted by the
// current tier.
func (p *Pool) Alloc(priority int) (*Buffer, error) {
	p.mu.Lock()
	if !p.allowsLocked(priority) {
		policy := p.policyLocked()
		p.mu.Unlock()
		return nil, errcode.NoErrorf("buffer pool denies priority %d under %s policy", priority, policy)
	}

	var b *Buffer
	if p.free.Len() > 0 {
		b = p.free.PopHead()
		p.avail -= p.cfg.Size
	} else {
		b = newBuffer(p, p.cfg.Size)
	}
	b.released = false
	b.refs.Store(1)
	p.recomputeReport(false)
	p.mu.Unlock()
	return b, nil
}

// free returns buf to the pool, unless doing so would push available
// bytes past MaxLevel, in which case buf is dropped for the GC to
// reclaim and steady-state memory stays bounded. Any buffer-wait
// wakeup hook registered via OnFree runs after the pool's own state is
// updated and its lock released.
func (p *Pool) free(buf *Buffer) {
	p.mu.Lock()
	buf.reset()
	buf.released = true

	unbounded := p.cfg.MaxLevel == 0
	if unbounded || p.avail+p.cfg.Size <= p.cfg.MaxLevel {
		p.free.PushTail(buf)
		p.avail += p.cfg.Size
	} else {
		buf.pool = nil
	}
	p.recomputeReport(false)
	hook := p.onFree
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (p *Pool) recomputeReport(initial bool) {
	var r Report
	switch {
	case p.cfg.MaxLevel == 0 && p.cfg.MinLevel == 0:
		r = OK
	case p.avail < p.cfg.MinLevel:
		r = Low
	case p.avail > p.cfg.MaxLevel:
		r = Full
	default:
		r = OK
	}
	if initial || r != p.report {
		p.report = r
		p.log.Info("buffer pool tier transition",
			zap.Stringer("tier", r),
			zap.Int("available", p.avail),
			zap.Int("min_level", p.cfg.MinLevel),
			zap.Int("max_level", p.cfg.MaxLevel),
		)
		if p.onTier != nil {
			p.onTier(r)
		}
	}
}
