// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

// filterFailsafe is an innocuous word emitted in place of a value that
// fails a content filter (FILTER_CSS_VALUE). It is not a keyword in any programming language, contains no
// special characters, is not empty, and is distinct enough that a
// developer can find the source of the problem via a search engine.
const filterFailsafe = "ZgotmplZ"

// nudge returns the context reached by following the empty-string
// transitions out of a transitional state, the state a writeUnsafe call
// sees when no trusted character has yet disambiguated what comes next.
//
// For example, after writeSafe(`<a href=`) the context is
// {stateBeforeValue, attr: attrURL}, but after writeSafe(`<a href=x`) it is
// {stateURL, delim: delimSpaceOrTagEnd, urlPart: urlPartPreQuery}. Two things happen when 'x' is
// processed: (1) an empty transition from the before-value state to the
// value's start state, (2) 'x' is consumed. nudge produces the context
// after (1) alone, which is what writeUnsafe needs before choosing an
// escaper for a value that is about to become that first character.
func nudge(c context) context {
	switch c.state {
	case stateTag:
		// In `<foo VALUE`, the value is an attribute name.
		c.state = stateAttrName
	case stateBeforeValue:
		// In `<foo bar=VALUE`, the value is undelimited.
		c.state = attrStartStates[c.attr]
		c.delim = delimSpaceOrTagEnd
		c.attr = attrNone
	case stateAfterName:
		// In `<foo bar VALUE`, the value is a replacement attribute name.
		c.state = stateAttrName
		c.attr = attrNone
	}
	return c
}
