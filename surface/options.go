// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DefaultMaxAge is the number of frames a published surface may stay
// unused before the pool releases it.
const DefaultMaxAge = 3

// PoolOption configures a Pool during creation.
//
// Example:
//
//	pool := surface.NewPool(session,
//	    surface.WithMaxSurfaces(16),
//	    surface.WithDevice(provider),
//	)
type PoolOption func(*poolOptions)

type poolOptions struct {
	maxSurfaces int
	maxAge      int
	device      gpucontext.DeviceProvider
	format      gputypes.TextureFormat
}

func defaultPoolOptions() poolOptions {
	return poolOptions{
		maxAge: DefaultMaxAge,
		format: gputypes.TextureFormatRGBA8Unorm,
	}
}

// WithMaxSurfaces limits how many surfaces the pool keeps alive at once.
// Zero means unlimited.
func WithMaxSurfaces(n int) PoolOption {
	return func(o *poolOptions) {
		if n < 0 {
			n = 0
		}
		o.maxSurfaces = n
	}
}

// WithMaxAge sets how many frames an idle surface survives. Values below
// one are raised to one.
func WithMaxAge(frames int) PoolOption {
	return func(o *poolOptions) {
		o.maxAge = max(frames, 1)
	}
}

// WithDevice selects the texture format from the device's surface format.
// A headless device that reports TextureFormatUndefined keeps the default
// RGBA8Unorm.
func WithDevice(d gpucontext.DeviceProvider) PoolOption {
	return func(o *poolOptions) {
		o.device = d
		if d == nil {
			return
		}
		if f := d.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			o.format = f
		}
	}
}
