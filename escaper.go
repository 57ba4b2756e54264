// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package escaper implements a streaming, context-aware auto-escaping
// writer for HTML and XML. It tracks a parser-state Context as trusted
// markup is written so that later untrusted values are escaped, filtered,
// or elided using a policy appropriate to wherever they land: HTML text,
// an attribute value, a URL, a <script> body, a CSS declaration, a
// comment, CDATA, or a foreign XML subtree.
package escaper

import (
	"fmt"
	"io"
)

// Writer wraps a sink and auto-escapes values written through it according
// to the position they occupy in the markup, which is tracked by a single
// mutable Context as trusted chunks are scanned. A Writer is single-writer:
// it holds no lock and must not be used concurrently.
type Writer struct {
	w        io.Writer
	ctx      context
	soft     bool
	poisoned error
}

// New returns a Writer around w, initially in the Text state.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// SetSoft toggles soft mode, which is normalize-vs-escape for untrusted
// values in HTML/XML text and for the quote-safe attribute-value wrapper:
// in soft mode, WriteUnsafe assumes the value already carries valid
// entities and never re-encodes '&'. Trusted chunks and RCDATA values are
// handled the same way in both modes.
func (e *Writer) SetSoft(soft bool) { e.soft = soft }

// IsSoft reports whether soft mode is active.
func (e *Writer) IsSoft() bool { return e.soft }

// Context reports the writer's current parse state, primarily for tests
// and diagnostics.
func (e *Writer) Context() context { return e.ctx }

func (e *Writer) checkPoisoned() error {
	if e.poisoned != nil {
		return e.poisoned
	}
	if e.ctx.state == stateError {
		return e.ctx.err
	}
	return nil
}

// WriteSafe writes a chunk of trusted markup, advancing the context by
// scanning it. It fails with a template error if the trusted text itself
// is malformed: an unquoted attribute value containing a quote or '<', an
// attribute name containing a quote or '<', or an unterminated JS/CSS
// escape or regexp character class. A '/' in JS is always classified as
// division or regexp by nextJSCtx; no error is reported for it.
func (e *Writer) WriteSafe(s string) error {
	if err := e.checkPoisoned(); err != nil {
		return err
	}
	for len(s) > 0 {
		st := e.ctx.state
		if int(st) >= len(transitionFunc) || transitionFunc[st] == nil {
			e.poisoned = errorf(ErrInternal, "no transition handler for state %v", st)
			return e.poisoned
		}
		before := e.ctx.state
		n, err := transitionFunc[st](e, s)
		if err != nil {
			// A safe-write failure propagates but does not poison: a
			// sink error leaves the context as it was and the writer may
			// still be used. Malformed trusted input (see fail) leaves
			// the context in stateError, so later writes return that
			// error.
			return err
		}
		if n == 0 && e.ctx.state == before {
			e.poisoned = errorf(ErrInternal, "transition for state %v made no progress", st)
			return e.poisoned
		}
		s = s[n:]
	}
	return nil
}

// WriteUnsafe writes an untrusted value, escaped according to the current
// context. An empty value is a no-op unless the ignore-empty policy (see
// ignoreEmptyRequiresNudge) requires a nudge to avoid silently changing
// program meaning.
func (e *Writer) WriteUnsafe(v interface{}) error {
	if err := e.checkPoisoned(); err != nil {
		return err
	}
	if e.ctx.state == stateTag {
		if s, ok := derefSafeContent(contentTypeHTMLAttr, v); ok {
			// A value pre-approved as a whole "name" or "name=value"
			// attribute, e.g. template.HTMLAttr("checked"), is trusted
			// markup in this position: scan it rather than escape it.
			return e.WriteSafe(s)
		}
	}
	if s, isEmpty := emptyString(v); isEmpty && !e.ignoreEmptyRequiresNudge() {
		_ = s
		return nil
	}
	if e.ctx.state == stateBeforeValue {
		// The value is undelimited: insert the open quote, as tBeforeValue
		// does for trusted text; the close quote is emitted at value end.
		if _, err := io.WriteString(e.w, `"`); err != nil {
			e.poison(err)
			return err
		}
	}
	e.ctx = nudge(e.ctx)

	id, extra, err := e.chooseEscaper(v)
	if err != nil {
		e.poison(err)
		return err
	}

	sink := e.w
	if extra != nil {
		sink = &quoteSafeWriter{w: e.w, rt: extra}
	}

	if err := e.runEscaper(id, v, sink); err != nil {
		e.poison(err)
		return err
	}
	if id == idFilterNameOnto {
		// The value stood in for a name the scanner never saw; resume as
		// though an attribute name of unknown content had just been
		// consumed, so the next trusted chunk (typically "=" or ">")
		// picks up in AfterName via AttrName's empty-name transition.
		e.ctx.state = stateAttrName
		e.ctx.attr = attrNone
	}
	return nil
}

// poison enters the writer into a failed state: further writes refuse
// rather than continue emitting against a half-written boundary, per the
// guarantee that a sink failure during an unsafe-value emission must not
// be silently recovered from.
func (e *Writer) poison(err error) {
	e.poisoned = err
	e.ctx = context{}
}

func emptyString(v interface{}) (string, bool) {
	if v == nil {
		return "", true
	}
	s, _ := stringify(v)
	return s, s == ""
}

// ignoreEmptyRequiresNudge implements §4.3's ignore-empty policy: an empty
// write is a no-op everywhere except the handful of states where emitting
// nothing would silently change the document's meaning.
func (e *Writer) ignoreEmptyRequiresNudge() bool {
	switch e.ctx.state {
	case stateAfterName, stateJS, stateJSRegexp, stateTag:
		return true
	}
	return false
}

// escaperID is the closed set of escaper identities chooseEscaper may
// return, matching the enumerated policy matrix.
type escaperID int

const (
	idElide escaperID = iota
	idOneSpace
	idEscapeHTML
	idNormalizeHTML
	idEscapeXML
	idNormalizeXML
	idEscapeHTMLAttr
	idEscapeRCDATA
	idEscapeCDATA
	idEscapeURL
	idNormalizeURL
	idFilterURL
	idFilterCSSURL
	idFilterCSSValue
	idEscapeCSS
	idEscapeJSValue
	idEscapeJSString
	idEscapeJSRegexp
	idFilterNameOnto
)

// chooseEscaper maps the current context to an escaper identity and an
// optional quote-safe replacement table that must further filter
// everything the escaper writes, so that the active attribute delimiter
// can never be reintroduced by an escaper that does not itself know it is
// running inside a quoted attribute.
func (e *Writer) chooseEscaper(v interface{}) (escaperID, *replacementTable, error) {
	c := e.ctx
	var id escaperID
	switch c.state {
	case stateText:
		if e.soft {
			id = idNormalizeHTML
		} else {
			id = idEscapeHTML
		}
	case stateRCDATA:
		id = idEscapeRCDATA
	case stateCDATA:
		if c.xmlDoc {
			id = idEscapeCDATA
		} else {
			id = idEscapeRCDATA
		}
	case stateXML:
		if e.soft {
			id = idNormalizeXML
		} else {
			id = idEscapeXML
		}
	case stateAttr:
		id = idEscapeHTMLAttr
	case stateURL, stateCSSDqURL, stateCSSSqURL, stateCSSURL:
		id = chooseURLEscaper(c.urlPart, false)
	case stateCSSDqStr, stateCSSSqStr:
		id = chooseURLEscaper(c.urlPart, true)
	case stateJS:
		id = idEscapeJSValue
		e.ctx.jsCtx = jsCtxDivOp
	case stateJSDqStr, stateJSSqStr:
		id = idEscapeJSString
	case stateJSRegexp:
		id = idEscapeJSRegexp
	case stateCSS:
		id = idFilterCSSValue
	case stateAttrName, stateTag, stateTagName, stateAfterName:
		id = idFilterNameOnto
	default:
		if isComment(c.state) {
			if c.state == stateMarkupCmt && c.xmlText {
				id = idOneSpace
			} else {
				id = idElide
			}
		} else {
			return 0, nil, errorf(ErrAmbigContext, "cannot print into context %v", c.state)
		}
	}

	var extra *replacementTable
	switch c.delim {
	case delimNone:
	case delimSpaceOrTagEnd:
		if e.soft {
			extra = normHTMLSqOK
		} else {
			extra = htmlSqOK
		}
	case delimDoubleQuote:
		if e.soft {
			extra = normHTMLSqOK
		} else {
			extra = htmlSqOK
		}
	case delimSingleQuote:
		if e.soft {
			extra = normHTMLDqOK
		} else {
			extra = htmlDqOK
		}
	}
	return id, extra, nil
}

func chooseURLEscaper(part urlPart, css bool) escaperID {
	switch part {
	case urlPartNone:
		if css {
			return idFilterCSSURL
		}
		return idFilterURL
	case urlPartPreQuery:
		if css {
			return idEscapeCSS
		}
		return idNormalizeURL
	default:
		return idEscapeURL
	}
}

// runEscaper dispatches id against v, writing to sink. Values carrying a
// safe-content tag that id honours are passed through (lightly
// normalized); everything else is stringified first except for the JS
// value escaper, which does its own reflective rendering.
func (e *Writer) runEscaper(id escaperID, v interface{}, sink io.Writer) error {
	switch id {
	case idElide:
		return nil
	case idOneSpace:
		_, err := io.WriteString(sink, " ")
		return err
	case idFilterNameOnto:
		s, _ := stringify(v)
		return filterNameOnto(s, sink)
	case idEscapeJSValue:
		return escapeJSValue(v, sink)
	case idEscapeJSString:
		if s, ok := derefSafeContent(contentTypeJSStr, v); ok {
			return jsStrNormReplacementTable.escapeString(s, sink)
		}
		s, _ := stringify(v)
		return escapeJSStr(s, sink)
	case idEscapeJSRegexp:
		s, _ := stringify(v)
		return escapeJSRegexp(s, sink)
	case idEscapeHTMLAttr:
		return e.escapeHTMLAttr(v, sink)
	case idFilterURL:
		s, _ := stringify(v)
		return filterURL(s, sink)
	case idNormalizeURL:
		if s, ok := derefSafeContent(contentTypeURL, v); ok {
			return normalizeURL(s, sink)
		}
		s, _ := stringify(v)
		return normalizeURL(s, sink)
	case idEscapeURL:
		if s, ok := derefSafeContent(contentTypeURL, v); ok {
			return escapeURL(s, sink)
		}
		s, _ := stringify(v)
		return escapeURL(s, sink)
	case idFilterCSSURL:
		s, _ := stringify(v)
		return filterCSSURL(s, sink)
	case idFilterCSSValue:
		if s, ok := derefSafeContent(contentTypeCSS, v); ok {
			_, err := io.WriteString(sink, s)
			return err
		}
		s, _ := stringify(v)
		return filterCSSValue(s, sink)
	case idEscapeCSS:
		s, _ := stringify(v)
		return escapeCSS(s, sink)
	case idEscapeHTML:
		if s, ok := derefSafeContent(contentTypeMarkup, v); ok {
			_, err := io.WriteString(sink, s)
			return err
		}
		s, _ := stringify(v)
		return escapeHTML(s, sink)
	case idNormalizeHTML:
		if s, ok := derefSafeContent(contentTypeMarkup, v); ok {
			return normalizeHTML(s, sink)
		}
		s, _ := stringify(v)
		return normalizeHTML(s, sink)
	case idEscapeRCDATA:
		s, _ := stringify(v)
		return escapeRCDATA(s, sink)
	case idEscapeCDATA:
		s, _ := stringify(v)
		return escapeCDATA(s, sink)
	case idEscapeXML:
		s, _ := stringify(v)
		return escapeXML(s, sink)
	case idNormalizeXML:
		s, _ := stringify(v)
		return normalizeXML(s, sink)
	}
	return fmt.Errorf("escaper: unhandled escaper id %d", id)
}

// escapeHTMLAttr is ESCAPE_HTML_ATTR: a value carrying the Markup tag is
// run through tag stripping; everything else goes through the ordinary
// attribute-value replacement table (already composed into sink via
// chooseEscaper's quote-safe wrapper).
func (e *Writer) escapeHTMLAttr(v interface{}, sink io.Writer) error {
	if s, ok := derefSafeContent(contentTypeMarkup, v); ok {
		return stripTags(s, sink)
	}
	s, _ := stringify(v)
	_, err := io.WriteString(sink, s)
	return err
}

// Flush is a no-op placeholder for sinks that buffer: this Writer does not
// hold back any written bytes of its own, so flushing only drains the
// underlying sink if it implements a Flush method.
func (e *Writer) Flush() error {
	if f, ok := e.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the sink if it implements io.Closer. It fails
// with an "incomplete document fragment" error if the final context is not
// Text (or, for a document switched to XML mode, stateXML), naming the
// terminal context so callers can diagnose unbalanced markup.
func (e *Writer) Close() error {
	if err := e.Flush(); err != nil {
		return err
	}
	var closeErr error
	if c, ok := e.w.(io.Closer); ok {
		closeErr = c.Close()
	}
	if !e.atDocumentEnd() {
		return errorf(ErrEndContext, "incomplete document fragment, ended in context %v", e.ctx.state)
	}
	return closeErr
}

func (e *Writer) atDocumentEnd() bool {
	if e.ctx.xmlDoc {
		return e.ctx.state == stateXML
	}
	return e.ctx.state == stateText
}
