// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package instrumentation provides frame counters and lap stopwatches.
//
// The values are for reporting only; compositing decisions never read them.
package instrumentation

import (
	"sync/atomic"
	"time"
)

// MaxSamples is the number of laps a Stopwatch remembers.
const MaxSamples = 120

// Counter is a monotonically increasing count safe for concurrent use.
type Counter struct {
	n atomic.Uint64
}

// Increment adds one to the count.
func (c *Counter) Increment() { c.n.Add(1) }

// Count returns the current count.
func (c *Counter) Count() uint64 { return c.n.Load() }

// Reset sets the count to zero.
func (c *Counter) Reset() { c.n.Store(0) }

// Stopwatch measures laps and keeps the last MaxSamples of them.
//
// A Stopwatch is not safe for concurrent use.
type Stopwatch struct {
	laps    [MaxSamples]time.Duration
	current int
	filled  int
	start   time.Time
	running bool
	now     func() time.Time
}

// NewStopwatch returns a stopped stopwatch.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Start begins a lap.
func (s *Stopwatch) Start() {
	s.start = s.clock()()
	s.running = true
}

// Stop ends the current lap and records it. It is a no-op when not running.
func (s *Stopwatch) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.record(s.clock()().Sub(s.start))
}

// Running reports whether a lap is in progress.
func (s *Stopwatch) Running() bool { return s.running }

// SetLapTime records d as a completed lap without timing it.
func (s *Stopwatch) SetLapTime(d time.Duration) {
	s.record(d)
}

// LastLap returns the most recently recorded lap, or zero.
func (s *Stopwatch) LastLap() time.Duration {
	if s.filled == 0 {
		return 0
	}
	return s.laps[(s.current-1+MaxSamples)%MaxSamples]
}

// Laps returns the number of recorded laps, capped at MaxSamples.
func (s *Stopwatch) Laps() int { return s.filled }

// MaxDelta returns the longest remembered lap.
func (s *Stopwatch) MaxDelta() time.Duration {
	var m time.Duration
	for i := 0; i < s.filled; i++ {
		m = max(m, s.laps[i])
	}
	return m
}

// AverageDelta returns the mean of the remembered laps.
func (s *Stopwatch) AverageDelta() time.Duration {
	if s.filled == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < s.filled; i++ {
		sum += s.laps[i]
	}
	return sum / time.Duration(s.filled)
}

func (s *Stopwatch) record(d time.Duration) {
	s.laps[s.current] = d
	s.current = (s.current + 1) % MaxSamples
	if s.filled < MaxSamples {
		s.filled++
	}
}

func (s *Stopwatch) clock() func() time.Time {
	if s.now == nil {
		return time.Now
	}
	return s.now
}
