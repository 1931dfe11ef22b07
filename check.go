// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !flownocheck

package flow

// checksEnabled turns precondition violations into panics. Build with
// -tags flownocheck to compile the checks out.
const checksEnabled = true
