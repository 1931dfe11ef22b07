// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/scenegraph"
)

// TestImageSurfacePublish tests that drawn pixels reach the scene image.
func TestImageSurfacePublish(t *testing.T) {
	session := scenegraph.NewSession()
	s, err := NewImageSurface(session, image.Pt(4, 4), gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewImageSurface() error = %v", err)
	}
	s.Canvas().DrawRect(canvas.RectWH(4, 4), canvas.NewPaint(gg.RGB(1, 0, 0)))

	if s.Image().Version() != 0 {
		t.Errorf("Version() = %d before Publish, want 0", s.Image().Version())
	}
	if err := s.Publish(); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if s.Image().Version() != 1 {
		t.Errorf("Version() = %d, want 1", s.Image().Version())
	}
	if got := s.Image().Snapshot().RGBAAt(2, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("published pixel = %v, want opaque red", got)
	}
	if got := s.Snapshot().RGBAAt(2, 2); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Snapshot() pixel = %v, want opaque red", got)
	}
}

// TestImageSurfaceEmpty tests that zero-area surfaces are rejected.
func TestImageSurfaceEmpty(t *testing.T) {
	for _, size := range []image.Point{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := NewImageSurface(scenegraph.NewSession(), size, gputypes.TextureFormatRGBA8Unorm); !errors.Is(err, ErrEmptySize) {
			t.Errorf("NewImageSurface(%v) error = %v, want ErrEmptySize", size, err)
		}
	}
}

// TestImageSurfaceClosed tests publishing after Close.
func TestImageSurfaceClosed(t *testing.T) {
	s, _ := NewImageSurface(scenegraph.NewSession(), image.Pt(1, 1), gputypes.TextureFormatRGBA8Unorm)
	_ = s.Close()
	_ = s.Close()
	if err := s.Publish(); !errors.Is(err, ErrClosed) {
		t.Errorf("Publish() error = %v, want ErrClosed", err)
	}
}

// TestPoolRecycles tests reuse of submitted surfaces of the same size.
func TestPoolRecycles(t *testing.T) {
	pool := NewPool(scenegraph.NewSession())
	a, err := pool.ProduceSurface(image.Pt(8, 8))
	if err != nil {
		t.Fatalf("ProduceSurface() error = %v", err)
	}
	if err := pool.Submit(a); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	pool.FinishFrame()

	b, _ := pool.ProduceSurface(image.Pt(8, 8))
	if b != a {
		t.Error("ProduceSurface() did not recycle the submitted surface")
	}
	c, _ := pool.ProduceSurface(image.Pt(8, 8))
	if c == a {
		t.Error("ProduceSurface() handed out a live surface twice")
	}

	st := pool.Stats()
	if st.Live != 2 || st.Produced != 2 || st.Recycled != 1 {
		t.Errorf("Stats() = %+v, want Live 2, Produced 2, Recycled 1", st)
	}
}

// TestPoolExhausted tests the surface budget.
func TestPoolExhausted(t *testing.T) {
	pool := NewPool(scenegraph.NewSession(), WithMaxSurfaces(1))
	a, err := pool.ProduceSurface(image.Pt(2, 2))
	if err != nil {
		t.Fatalf("ProduceSurface() error = %v", err)
	}
	if s, err := pool.ProduceSurface(image.Pt(3, 3)); !errors.Is(err, ErrExhausted) || s != nil {
		t.Errorf("ProduceSurface() = %v, %v, want nil, ErrExhausted", s, err)
	}

	// An idle surface of another size is evicted to make room.
	_ = pool.Submit(a)
	if _, err := pool.ProduceSurface(image.Pt(3, 3)); err != nil {
		t.Errorf("ProduceSurface() after Submit error = %v", err)
	}
	if !a.(*ImageSurface).Closed() {
		t.Error("evicted surface not closed")
	}
}

// TestPoolSubmitFailureReleasesBudget tests that a surface failing to
// publish gives its slot back.
func TestPoolSubmitFailureReleasesBudget(t *testing.T) {
	pool := NewPool(scenegraph.NewSession(), WithMaxSurfaces(1))
	for i := 0; i < 3; i++ {
		s, err := pool.ProduceSurface(image.Pt(2, 2))
		if err != nil {
			t.Fatalf("frame %d: ProduceSurface() error = %v", i, err)
		}
		_ = s.Close()
		if err := pool.Submit(s); !errors.Is(err, ErrClosed) {
			t.Fatalf("frame %d: Submit() error = %v, want ErrClosed", i, err)
		}
	}
	if st := pool.Stats(); st.Live != 0 || st.Available != 0 {
		t.Errorf("Stats() = %+v, want no live or available surfaces", st)
	}
}

// TestPoolEmptySize tests zero-area requests.
func TestPoolEmptySize(t *testing.T) {
	pool := NewPool(scenegraph.NewSession())
	if _, err := pool.ProduceSurface(image.Pt(0, 10)); !errors.Is(err, ErrEmptySize) {
		t.Errorf("ProduceSurface() error = %v, want ErrEmptySize", err)
	}
}

// TestPoolFinishFrameReleasesIdle tests age-based release.
func TestPoolFinishFrameReleasesIdle(t *testing.T) {
	pool := NewPool(scenegraph.NewSession(), WithMaxAge(2))
	s, _ := pool.ProduceSurface(image.Pt(2, 2))
	_ = pool.Submit(s)

	for frame := 1; frame <= 2; frame++ {
		if n := pool.FinishFrame(); n != 0 {
			t.Fatalf("frame %d: FinishFrame() = %d, want 0", frame, n)
		}
	}
	if n := pool.FinishFrame(); n != 1 {
		t.Errorf("FinishFrame() = %d, want 1", n)
	}
	if st := pool.Stats(); st.Live != 0 || st.Available != 0 {
		t.Errorf("Stats() = %+v, want empty", st)
	}
}

type fakeDevice struct {
	format gputypes.TextureFormat
}

func (fakeDevice) Device() gpucontext.Device   { return nil }
func (fakeDevice) Queue() gpucontext.Queue     { return nil }
func (fakeDevice) Adapter() gpucontext.Adapter { return nil }
func (fakeDevice) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "fake", Type: gpucontext.AdapterTypeSoftware}
}
func (d fakeDevice) SurfaceFormat() gputypes.TextureFormat { return d.format }

// TestPoolDeviceFormat tests format selection from the device.
func TestPoolDeviceFormat(t *testing.T) {
	tests := []struct {
		name   string
		device gpucontext.DeviceProvider
		want   gputypes.TextureFormat
	}{
		{"no device", nil, gputypes.TextureFormatRGBA8Unorm},
		{"headless", fakeDevice{gputypes.TextureFormatUndefined}, gputypes.TextureFormatRGBA8Unorm},
		{"bgra", fakeDevice{gputypes.TextureFormatBGRA8Unorm}, gputypes.TextureFormatBGRA8Unorm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(scenegraph.NewSession(), WithDevice(tt.device))
			if got := pool.Format(); got != tt.want {
				t.Errorf("Format() = %v, want %v", got, tt.want)
			}
			s, _ := pool.ProduceSurface(image.Pt(1, 1))
			if s.Format() != tt.want || s.Image().Format() != tt.want {
				t.Errorf("surface format = %v, want %v", s.Format(), tt.want)
			}
		})
	}
}
