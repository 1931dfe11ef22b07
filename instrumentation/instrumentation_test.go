// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package instrumentation

import (
	"sync"
	"testing"
	"time"
)

// TestCounter tests concurrent increments.
func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Increment()
			}
		}()
	}
	wg.Wait()
	if got := c.Count(); got != 800 {
		t.Errorf("Count() = %d, want 800", got)
	}
	c.Reset()
	if got := c.Count(); got != 0 {
		t.Errorf("Count() after Reset = %d, want 0", got)
	}
}

// TestStopwatchLap tests a timed lap with a fake clock.
func TestStopwatchLap(t *testing.T) {
	base := time.Unix(0, 0)
	now := base
	s := &Stopwatch{now: func() time.Time { return now }}

	s.Start()
	if !s.Running() {
		t.Fatal("Running() = false after Start")
	}
	now = base.Add(16 * time.Millisecond)
	s.Stop()
	s.Stop()

	if got := s.LastLap(); got != 16*time.Millisecond {
		t.Errorf("LastLap() = %v, want 16ms", got)
	}
	if got := s.Laps(); got != 1 {
		t.Errorf("Laps() = %d, want 1", got)
	}
}

// TestStopwatchStats tests max and average over recorded laps.
func TestStopwatchStats(t *testing.T) {
	s := NewStopwatch()
	if s.LastLap() != 0 || s.AverageDelta() != 0 {
		t.Error("empty stopwatch should report zero")
	}
	s.SetLapTime(10 * time.Millisecond)
	s.SetLapTime(30 * time.Millisecond)
	s.SetLapTime(20 * time.Millisecond)

	if got := s.LastLap(); got != 20*time.Millisecond {
		t.Errorf("LastLap() = %v, want 20ms", got)
	}
	if got := s.MaxDelta(); got != 30*time.Millisecond {
		t.Errorf("MaxDelta() = %v, want 30ms", got)
	}
	if got := s.AverageDelta(); got != 20*time.Millisecond {
		t.Errorf("AverageDelta() = %v, want 20ms", got)
	}
}

// TestStopwatchRingWraps tests that old laps fall out of the window.
func TestStopwatchRingWraps(t *testing.T) {
	s := NewStopwatch()
	s.SetLapTime(time.Second)
	for i := 0; i < MaxSamples; i++ {
		s.SetLapTime(time.Millisecond)
	}
	if got := s.Laps(); got != MaxSamples {
		t.Errorf("Laps() = %d, want %d", got, MaxSamples)
	}
	if got := s.MaxDelta(); got != time.Millisecond {
		t.Errorf("MaxDelta() = %v, want 1ms", got)
	}
}
