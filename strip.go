// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import "io"

// tagStripGate sits between a throwaway scanning Writer and the real sink:
// it lets bytes through only while the scanning Writer's context says we
// are in Text or RCDATA, discarding everything written while inside a tag,
// a script or style body, or a comment.
type tagStripGate struct {
	inner *Writer
	out   io.Writer
}

func (g *tagStripGate) Write(p []byte) (int, error) {
	switch g.inner.ctx.state {
	case stateText, stateRCDATA:
		if _, err := g.out.Write(p); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// stripTags reruns the transition scanner over s with a fresh context
// forced to Text, forwarding only the text (and RCDATA) content it
// encounters to sink -- tags, attributes, and script/style/comment bodies
// are discarded. It backs ESCAPE_HTML_ATTR's handling of a Markup-tagged
// value interpolated into an attribute: the safe markup may contain tags,
// but an attribute value may not.
//
// A malformed parse (e.g. an unterminated JS string inside a stripped
// <script> body) truncates the value at the point of failure rather than
// propagating an error: by the time stripping runs, everything already
// written to sink has already been normalized for the enclosing attribute.
func stripTags(s string, sink io.Writer) error {
	gate := &tagStripGate{out: sink}
	inner := &Writer{w: gate}
	gate.inner = inner
	// Errors are swallowed deliberately; see the truncation note above.
	_ = inner.WriteSafe(s)
	return nil
}
