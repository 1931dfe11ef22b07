// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rastercache

// Option configures a Cache.
type Option func(*options)

type options struct {
	threshold  int
	maxEntries int
}

func defaultOptions() options {
	return options{threshold: DefaultThreshold}
}

// WithThreshold sets how many frames a key must be prepared in before it is
// rasterized. Values below 1 are treated as 1.
func WithThreshold(n int) Option {
	return func(o *options) {
		o.threshold = max(1, n)
	}
}

// WithMaxEntries caps the number of entries kept after a sweep. The least
// accessed entries are dropped first. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = max(0, n)
	}
}
