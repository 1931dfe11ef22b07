// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/flow/internal/flowlog"
	"github.com/gogpu/flow/scenegraph"
)

// Pool produces ImageSurfaces and recycles them across frames.
//
// A surface handed out by ProduceSurface is live until it is returned with
// Submit. Submitted surfaces are published and become reusable by a later
// request of the same size. FinishFrame ages the reusable surfaces and
// releases those idle for longer than the maximum age.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	session *scenegraph.Session
	opts    poolOptions

	available []*ImageSurface
	live      int
	produced  uint64
	recycled  uint64
}

// NewPool creates a pool that registers surface images in session.
func NewPool(session *scenegraph.Session, opts ...PoolOption) *Pool {
	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool{session: session, opts: o}
}

// Format returns the texture format of produced surfaces.
func (p *Pool) Format() gputypes.TextureFormat { return p.opts.format }

// Device returns the device the pool was configured with, or nil.
func (p *Pool) Device() gpucontext.DeviceProvider { return p.opts.device }

// ProduceSurface implements Producer. A reusable surface of the same size
// is preferred over a new allocation.
func (p *Pool) ProduceSurface(size image.Point) (Surface, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmptySize
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, s := range p.available {
		if s.size == size {
			p.available = append(p.available[:i], p.available[i+1:]...)
			s.reset()
			p.recycled++
			return s, nil
		}
	}

	if p.opts.maxSurfaces > 0 && p.live >= p.opts.maxSurfaces {
		if !p.evictOne() {
			return nil, fmt.Errorf("%w: %d of %d surfaces in use", ErrExhausted, p.live, p.opts.maxSurfaces)
		}
	}

	s, err := NewImageSurface(p.session, size, p.opts.format)
	if err != nil {
		return nil, err
	}
	p.live++
	p.produced++
	return s, nil
}

// evictOne releases the oldest reusable surface to make room. It reports
// false when every live surface is in use.
func (p *Pool) evictOne() bool {
	if len(p.available) == 0 {
		return false
	}
	oldest := 0
	for i, s := range p.available {
		if s.age > p.available[oldest].age {
			oldest = i
		}
	}
	s := p.available[oldest]
	p.available = append(p.available[:oldest], p.available[oldest+1:]...)
	_ = s.Close()
	p.live--
	return true
}

// Submit publishes s and makes it reusable. Surfaces not produced by this
// pool are published but not retained. A surface that fails to publish is
// closed and no longer counts against the budget.
func (p *Pool) Submit(s Surface) error {
	is, ok := s.(*ImageSurface)
	if err := s.Publish(); err != nil {
		if ok {
			_ = is.Close()
			p.mu.Lock()
			p.live--
			p.mu.Unlock()
		}
		return fmt.Errorf("surface: submit: %w", err)
	}
	if !ok {
		return nil
	}

	p.mu.Lock()
	p.available = append(p.available, is)
	p.mu.Unlock()
	return nil
}

// FinishFrame ages reusable surfaces and releases those past the maximum
// age. It returns the number of released surfaces.
func (p *Pool) FinishFrame() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	kept := p.available[:0]
	released := 0
	for _, s := range p.available {
		if s.AdvanceAndGetAge() > p.opts.maxAge {
			_ = s.Close()
			p.live--
			released++
			continue
		}
		kept = append(kept, s)
	}
	clear(p.available[len(kept):])
	p.available = kept

	if released > 0 {
		flowlog.Logger().Debug("surface: released idle surfaces",
			"released", released,
			"live", p.live)
	}
	return released
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	Live      int
	Available int
	Produced  uint64
	Recycled  uint64
}

// Stats returns the current pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		Live:      p.live,
		Available: len(p.available),
		Produced:  p.produced,
		Recycled:  p.recycled,
	}
}

var _ Producer = (*Pool)(nil)
