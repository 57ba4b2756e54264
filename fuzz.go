// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import "bytes"

// Fuzz drives the transition scanner over data as trusted markup, in the
// go-fuzz harness convention the wider example pack uses for a parser
// package (see robfig/soy's fuzz.go). It returns 1 for input go-fuzz should
// prioritize for mutation (well-formed enough to reach Close without error)
// and 0 otherwise; a panic here is a real scanner bug, the thing this
// harness exists to surface.
func Fuzz(data []byte) int {
	var buf bytes.Buffer
	w := New(&buf)
	if err := w.WriteSafe(string(data)); err != nil {
		return 0
	}
	if err := w.Close(); err != nil {
		return 0
	}
	return 1
}
