// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build flownocheck

package flow

const checksEnabled = false
