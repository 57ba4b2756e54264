// Copyright 2012 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import "strings"

// doctypeTextStates is the whitelist of top-level element names a
// "<!doctype ...>" may name while remaining in HTML text: SVG and MathML
// are subsets of HTML5, so they stay in HTML mode too. Everything else
// switches the document to XML mode, per the open question in the design
// notes: this whitelist is treated as normative.
var doctypeTextStates = map[string]bool{
	"html": true,
	"svg":  true,
	"math": true,
}

// classifyDoctype reports the state that should follow a "<!doctype" whose
// name starts at s[off:end]. Leading whitespace is skipped, then the run of
// ASCII letters is read as the top-level tag name.
func classifyDoctype(s string, off, end int) state {
	for off < end {
		switch s[off] {
		case '\t', '\n', '\r', ' ':
			off++
			continue
		}
		break
	}
	start := off
	for off < end {
		c := s[off]
		if ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') {
			off++
			continue
		}
		break
	}
	name := strings.ToLower(s[start:off])
	if doctypeTextStates[name] {
		return stateText
	}
	return stateXML
}
