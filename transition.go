// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"io"
	"strings"
)

// transitionFn consumes a prefix of s under the Writer's current context,
// writes whatever normalized output that prefix implies to e.w, updates
// e.ctx, and returns the number of bytes of s consumed. The driving loop in
// Writer.WriteSafe asserts forward progress: a transitionFn that consumes
// zero bytes must have changed e.ctx.state (an empty "nudge" transition),
// or the loop would spin forever.
type transitionFn func(e *Writer, s string) (int, error)

var transitionFunc = [...]transitionFn{
	stateText:        tText,
	stateTagName:     tTagName,
	stateTag:         tTag,
	stateAttrName:    tAttrName,
	stateAfterName:   tAfterName,
	stateBeforeValue: tBeforeValue,
	stateAttr:        tAttr,
	stateURL:         tURL,
	stateJS:          tJS,
	stateJSDqStr:     tJSDelimited,
	stateJSSqStr:     tJSDelimited,
	stateJSRegexp:    tJSDelimited,
	stateJSBlockCmt:  tBlockCmt,
	stateJSLineCmt:   tLineCmt,
	stateCSS:         tCSS,
	stateCSSDqStr:    tCSSStr,
	stateCSSSqStr:    tCSSStr,
	stateCSSDqURL:    tCSSStr,
	stateCSSSqURL:    tCSSStr,
	stateCSSURL:      tCSSURL,
	stateCSSBlockCmt: tBlockCmt,
	stateCSSLineCmt:  tLineCmt,
	stateMarkupCmt:   tMarkupCmt,
	stateRCDATA:      tRCDATA,
	stateCDATA:       tCDATA,
	stateXML:         tXML,
}

func fail(e *Writer, kind ErrorKind, format string, args ...interface{}) (int, error) {
	err := errorf(kind, format, args...)
	e.ctx = context{state: stateError, err: err}
	return 0, err
}

// eatWhiteSpace returns the index of the first non-whitespace byte in s.
func eatWhiteSpace(s string) int {
	i := 0
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
			i++
			continue
		}
		break
	}
	return i
}

func isAsciiAlpha(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

func isAsciiAlnum(b byte) bool {
	return isAsciiAlpha(b) || ('0' <= b && b <= '9')
}

// eatTagName consumes an HTML tag or attribute name:
// [A-Za-z][A-Za-z0-9]*((:|-)[A-Za-z0-9]+)*
func eatTagName(s string) int {
	if len(s) == 0 || !isAsciiAlpha(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) {
		if isAsciiAlnum(s[i]) {
			i++
			continue
		}
		if (s[i] == ':' || s[i] == '-') && i+1 < len(s) && isAsciiAlnum(s[i+1]) {
			i += 2
			continue
		}
		break
	}
	return i
}

// classifyTagName maps a (already-lowercased) tag name to the element kind
// that determines the sublanguage of its body and the end-tag the scanner
// must watch for.
func classifyTagName(name string) element {
	switch strings.ToLower(name) {
	case "script":
		return elementScript
	case "style":
		return elementStyle
	case "textarea":
		return elementTextarea
	case "title":
		return elementTitle
	}
	return elementNone
}

var elementEndTag = [...]string{
	elementScript:   "script",
	elementStyle:    "style",
	elementTextarea: "textarea",
	elementTitle:    "title",
}

// findSpecialTagEnd returns the index in s of the '<' that begins the
// closing tag for el (e.g. "</script"), or -1 if s contains no such
// boundary. The match is case-insensitive and does not require the tag
// name to be immediately followed by '>': per HTML5, any of
// "\t\n\f\r />" terminates it.
func findSpecialTagEnd(el element, s string) int {
	name := elementEndTag[el]
	if name == "" {
		return -1
	}
	lower := strings.ToLower(s)
	from := 0
	for {
		i := strings.Index(lower[from:], "</"+name)
		if i < 0 {
			return -1
		}
		i += from
		end := i + 2 + len(name)
		if end >= len(lower) || isTagNameBoundary(lower[end]) {
			return i
		}
		from = i + 2
	}
}

func isTagNameBoundary(b byte) bool {
	switch b {
	case '\t', '\n', '\f', '\r', ' ', '/', '>':
		return true
	}
	return false
}

// nextURLContext advances urlPart across any '?' or '#' seen in the
// trusted run s, which has already been written to the sink.
func nextURLContext(u urlPart, s string) urlPart {
	if u == urlPartQueryOrFrag {
		return u
	}
	if strings.ContainsAny(s, "?#") {
		return urlPartQueryOrFrag
	}
	if u == urlPartNone && len(s) > 0 {
		return urlPartPreQuery
	}
	return u
}

// tText implements the Text state: copy through to the sink until '<',
// recognizing comment, CDATA, and doctype markers and ordinary tag starts.
func tText(e *Writer, s string) (int, error) {
	i := strings.IndexByte(s, '<')
	if i < 0 {
		if _, err := io.WriteString(e.w, s); err != nil {
			return 0, err
		}
		return len(s), nil
	}
	if i > 0 {
		if _, err := io.WriteString(e.w, s[:i]); err != nil {
			return 0, err
		}
	}
	rest := s[i:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		e.ctx.state = stateMarkupCmt
		e.ctx.xmlText = false
		return i + 4, nil
	case hasPrefixFold(rest, "<![CDATA["):
		e.ctx.state = stateCDATA
		e.ctx.xmlText = false
		if _, err := io.WriteString(e.w, "<![CDATA["); err != nil {
			return 0, err
		}
		return i + 9, nil
	case hasPrefixFold(rest, "<!doctype"):
		end := strings.IndexByte(rest, '>')
		nameEnd := end
		if nameEnd < 0 {
			nameEnd = len(rest)
		}
		e.ctx.state = classifyDoctype(rest, len("<!doctype"), nameEnd)
		e.ctx.xmlDoc = e.ctx.state == stateXML
		if _, err := io.WriteString(e.w, rest[:nameEnd]); err != nil {
			return 0, err
		}
		return i + nameEnd, nil
	case len(rest) < 2 || !isAsciiAlpha(rest[1]):
		if len(rest) >= 2 && rest[1] == '/' && len(rest) >= 3 && isAsciiAlpha(rest[2]) {
			// An end tag: copy its name without classifying it, since it
			// opens no element body, so Tag's '>' returns to Text. The
			// state changes before the write so a tag-stripping gate
			// sees the tag as markup.
			n := eatTagName(rest[2:])
			e.ctx.state = stateTag
			e.ctx.element = elementNone
			if _, err := io.WriteString(e.w, rest[:2+n]); err != nil {
				return 0, err
			}
			return i + 2 + n, nil
		}
		if _, err := io.WriteString(e.w, "&lt;"); err != nil {
			return 0, err
		}
		return i + 1, nil
	default:
		e.ctx.state = stateTagName
		if _, err := io.WriteString(e.w, "<"); err != nil {
			return 0, err
		}
		return i + 1, nil
	}
}

func tTagName(e *Writer, s string) (int, error) {
	n := eatTagName(s)
	if n == 0 {
		// Not a valid tag name character: bail to Tag so '>' / attribute
		// parsing still has a chance to make sense of it.
		e.ctx.state = stateTag
		return 0, nil
	}
	if _, err := io.WriteString(e.w, s[:n]); err != nil {
		return 0, err
	}
	e.ctx.element = classifyTagName(s[:n])
	e.ctx.state = stateTag
	return n, nil
}

func tTag(e *Writer, s string) (int, error) {
	n := eatWhiteSpace(s)
	if n > 0 {
		if _, err := io.WriteString(e.w, s[:n]); err != nil {
			return 0, err
		}
	}
	if n >= len(s) {
		return n, nil
	}
	if s[n] == '>' {
		if _, err := io.WriteString(e.w, ">"); err != nil {
			return 0, err
		}
		switch e.ctx.element {
		case elementScript:
			e.ctx.state = stateJS
			e.ctx.jsCtx = jsCtxRegexp
		case elementStyle:
			e.ctx.state = stateCSS
		case elementTextarea, elementTitle:
			e.ctx.state = stateRCDATA
		default:
			if e.ctx.xmlDoc {
				e.ctx.state = stateXML
			} else {
				e.ctx.state = stateText
			}
		}
		return n + 1, nil
	}
	if s[n] == '/' {
		// Self-closing tag syntax: treat like whitespace, stay in Tag.
		if _, err := io.WriteString(e.w, "/"); err != nil {
			return 0, err
		}
		return n + 1, nil
	}
	nameLen := eatTagName(s[n:])
	if nameLen == 0 {
		if s[n] == '\'' || s[n] == '"' || s[n] == '<' {
			return fail(e, ErrBadHTML, "%q in tag", s[n:n+1])
		}
		// Unrecognized byte in tag position: consume and ignore it, the
		// document is not well-formed HTML but we don't want to wedge.
		if _, err := io.WriteString(e.w, s[n:n+1]); err != nil {
			return 0, err
		}
		return n + 1, nil
	}
	name := s[n : n+nameLen]
	if _, err := io.WriteString(e.w, name); err != nil {
		return 0, err
	}
	e.ctx.attr = attrForContentType(classifyAttrName(name))
	e.ctx.state = stateAfterName
	return n + nameLen, nil
}

func tAttrName(e *Writer, s string) (int, error) {
	n := eatTagName(s)
	if n == 0 {
		e.ctx.state = stateAfterName
		return 0, nil
	}
	if _, err := io.WriteString(e.w, s[:n]); err != nil {
		return 0, err
	}
	e.ctx.attr = attrForContentType(classifyAttrName(s[:n]))
	e.ctx.state = stateAfterName
	return n, nil
}

func tAfterName(e *Writer, s string) (int, error) {
	n := eatWhiteSpace(s)
	if n > 0 {
		if _, err := io.WriteString(e.w, s[:n]); err != nil {
			return 0, err
		}
	}
	if n >= len(s) {
		return n, nil
	}
	if s[n] == '=' {
		if _, err := io.WriteString(e.w, "="); err != nil {
			return 0, err
		}
		e.ctx.state = stateBeforeValue
		return n + 1, nil
	}
	// No '=': the attribute had no value. Go back to Tag for the next
	// attribute or the tag's close, discarding the pending attr class.
	e.ctx.attr = attrNone
	e.ctx.state = stateTag
	return n, nil
}

func tBeforeValue(e *Writer, s string) (int, error) {
	n := eatWhiteSpace(s)
	if n >= len(s) {
		if n > 0 {
			if _, err := io.WriteString(e.w, s[:n]); err != nil {
				return 0, err
			}
		}
		return n, nil
	}
	switch s[n] {
	case '"':
		if _, err := io.WriteString(e.w, s[:n+1]); err != nil {
			return 0, err
		}
		e.ctx.state = attrStartStates[e.ctx.attr]
		e.ctx.delim = delimDoubleQuote
		e.ctx.attr = attrNone
		return n + 1, nil
	case '\'':
		if _, err := io.WriteString(e.w, s[:n+1]); err != nil {
			return 0, err
		}
		e.ctx.state = attrStartStates[e.ctx.attr]
		e.ctx.delim = delimSingleQuote
		e.ctx.attr = attrNone
		return n + 1, nil
	default:
		if n > 0 {
			if _, err := io.WriteString(e.w, s[:n]); err != nil {
				return 0, err
			}
		}
		// Insert the open quote the value didn't supply; no input byte is
		// consumed by this transition.
		if _, err := io.WriteString(e.w, `"`); err != nil {
			return 0, err
		}
		e.ctx.state = attrStartStates[e.ctx.attr]
		e.ctx.delim = delimSpaceOrTagEnd
		e.ctx.attr = attrNone
		return n, nil
	}
}

// unquotedAttrErrorBytes lists the characters the HTML5 unquoted-attribute-
// value state treats as parse errors, since different HTML parsers
// disagree on where the value ends if one appears.
const unquotedAttrErrorBytes = "\"'<=`"

// endAttrValue closes out an attribute value: consumes the closing quote
// (if any), clears per-attribute context, and returns to Tag.
func endAttrValue(e *Writer, consumedQuote bool) {
	e.ctx = context{state: stateTag, element: e.ctx.element, xmlDoc: e.ctx.xmlDoc}
	_ = consumedQuote
}

func tAttr(e *Writer, s string) (int, error) {
	return scanDelimited(e, s, nil)
}

func tURL(e *Writer, s string) (int, error) {
	return scanDelimited(e, s, func(consumed string) {
		e.ctx.urlPart = nextURLContext(e.ctx.urlPart, consumed)
	})
}

// scanDelimited is shared by the plain-attribute and URL states, neither of
// which recognizes any nested sublanguage token: they simply run until the
// active delimiter ends.
func scanDelimited(e *Writer, s string, onConsume func(string)) (int, error) {
	end, closing := delimEnd(e.ctx.delim, s)
	if end < 0 {
		if e.ctx.delim == delimSpaceOrTagEnd {
			if j := strings.IndexAny(s, unquotedAttrErrorBytes); j >= 0 {
				return fail(e, ErrBadHTML, "%q in unquoted attr", s[j:j+1])
			}
		}
		if _, err := io.WriteString(e.w, s); err != nil {
			return 0, err
		}
		if onConsume != nil {
			onConsume(s)
		}
		return len(s), nil
	}
	if e.ctx.delim == delimSpaceOrTagEnd {
		if j := strings.IndexAny(s[:end], unquotedAttrErrorBytes); j >= 0 {
			return fail(e, ErrBadHTML, "%q in unquoted attr", s[j:j+1])
		}
	}
	if end > 0 {
		if _, err := io.WriteString(e.w, s[:end]); err != nil {
			return 0, err
		}
		if onConsume != nil {
			onConsume(s[:end])
		}
	}
	if closing {
		if _, err := io.WriteString(e.w, s[end:end+1]); err != nil {
			return 0, err
		}
		endAttrValue(e, true)
		return end + 1, nil
	}
	// delimSpaceOrTagEnd: the terminator (space or '>') is not consumed
	// here; emit the synthetic closing quote we inserted at value start.
	if _, err := io.WriteString(e.w, `"`); err != nil {
		return 0, err
	}
	endAttrValue(e, false)
	return end, nil
}

// delimEnd reports the index in s where the active delimiter ends, and
// whether that end character should itself be consumed (true for a real
// quote, false for the virtual space-or-tag-end terminator).
func delimEnd(d delim, s string) (int, bool) {
	switch d {
	case delimDoubleQuote:
		return strings.IndexByte(s, '"'), true
	case delimSingleQuote:
		return strings.IndexByte(s, '\''), true
	case delimSpaceOrTagEnd:
		return strings.IndexAny(s, " \t\n\f\r>"), false
	}
	return -1, false
}

func tJS(e *Writer, s string) (int, error) {
	i := 0
	for i < len(s) {
		c := s[i]
		if end, closing := delimEnd(e.ctx.delim, s[i:]); e.ctx.delim != delimNone && end == 0 {
			if _, err := io.WriteString(e.w, s[:i]); err != nil {
				return 0, err
			}
			e.ctx.jsCtx = nextJSCtx(s[:i], e.ctx.jsCtx)
			if closing {
				if _, err := io.WriteString(e.w, s[i:i+1]); err != nil {
					return 0, err
				}
				endAttrValue(e, true)
				return i + 1, nil
			}
			if _, err := io.WriteString(e.w, `"`); err != nil {
				return 0, err
			}
			endAttrValue(e, false)
			return i, nil
		}
		if e.ctx.delim == delimNone && e.ctx.element == elementScript {
			if end := findSpecialTagEnd(elementScript, s[i:]); end == 0 {
				if _, err := io.WriteString(e.w, s[:i]); err != nil {
					return 0, err
				}
				e.ctx.jsCtx = nextJSCtx(s[:i], e.ctx.jsCtx)
				e.ctx.state = stateText
				e.ctx.element = elementNone
				return i, nil
			}
		}
		switch c {
		case '"', '\'':
			if _, err := io.WriteString(e.w, s[:i]); err != nil {
				return 0, err
			}
			e.ctx.jsCtx = nextJSCtx(s[:i], e.ctx.jsCtx)
			if _, err := io.WriteString(e.w, s[i:i+1]); err != nil {
				return 0, err
			}
			if c == '"' {
				e.ctx.state = stateJSDqStr
			} else {
				e.ctx.state = stateJSSqStr
			}
			return i + 1, nil
		case '/':
			if i+1 < len(s) && s[i+1] == '/' {
				if _, err := io.WriteString(e.w, s[:i]); err != nil {
					return 0, err
				}
				e.ctx.state = stateJSLineCmt
				return i + 2, nil
			}
			if i+1 < len(s) && s[i+1] == '*' {
				if _, err := io.WriteString(e.w, s[:i]); err != nil {
					return 0, err
				}
				e.ctx.state = stateJSBlockCmt
				return i + 2, nil
			}
			jsCtx := nextJSCtx(s[:i], e.ctx.jsCtx)
			if jsCtx == jsCtxRegexp {
				if _, err := io.WriteString(e.w, s[:i]); err != nil {
					return 0, err
				}
				if _, err := io.WriteString(e.w, "/"); err != nil {
					return 0, err
				}
				e.ctx.state = stateJSRegexp
				return i + 1, nil
			}
			i++
			continue
		}
		i++
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return 0, err
	}
	e.ctx.jsCtx = nextJSCtx(s, e.ctx.jsCtx)
	return len(s), nil
}

// tJSDelimited handles JSDqStr, JSSqStr, and JSRegexp: scan for the
// unescaped closing delimiter, treating '\' as consuming the next byte
// unconditionally.
func tJSDelimited(e *Writer, s string) (int, error) {
	var closeByte byte
	switch e.ctx.state {
	case stateJSDqStr:
		closeByte = '"'
	case stateJSSqStr:
		closeByte = '\''
	default: // stateJSRegexp
		closeByte = '/'
	}
	inClass := false
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return fail(e, ErrBadHTML, "unterminated escape in JS literal")
			}
			i += 2
			continue
		case '\n', '\r':
			return fail(e, ErrBadHTML, "unterminated JS literal")
		case '[':
			if e.ctx.state == stateJSRegexp {
				inClass = true
			}
			i++
			continue
		case ']':
			if e.ctx.state == stateJSRegexp {
				inClass = false
			}
			i++
			continue
		}
		if s[i] == closeByte && !(closeByte == '/' && inClass) {
			if _, err := io.WriteString(e.w, s[:i+1]); err != nil {
				return 0, err
			}
			e.ctx.state = stateJS
			e.ctx.jsCtx = jsCtxDivOp
			return i + 1, nil
		}
		i++
	}
	if inClass {
		return fail(e, ErrBadHTML, "unterminated character class in JS regexp")
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return 0, err
	}
	return len(s), nil
}

func tBlockCmt(e *Writer, s string) (int, error) {
	i := strings.Index(s, "*/")
	if i < 0 {
		if _, err := io.WriteString(e.w, s); err != nil {
			return 0, err
		}
		return len(s), nil
	}
	if _, err := io.WriteString(e.w, s[:i+2]); err != nil {
		return 0, err
	}
	if e.ctx.state == stateJSBlockCmt {
		e.ctx.state = stateJS
	} else {
		e.ctx.state = stateCSS
	}
	return i + 2, nil
}

func tLineCmt(e *Writer, s string) (int, error) {
	nlState := stateJS
	if e.ctx.state == stateCSSLineCmt {
		nlState = stateCSS
	}
	i := strings.IndexAny(s, "\n\r")
	if i < 0 {
		if end, _ := delimEnd(e.ctx.delim, s); e.ctx.delim != delimNone && end >= 0 {
			if _, err := io.WriteString(e.w, s[:end]); err != nil {
				return 0, err
			}
			if _, err := io.WriteString(e.w, `"`); err != nil {
				return 0, err
			}
			endAttrValue(e, false)
			return end, nil
		}
		if _, err := io.WriteString(e.w, s); err != nil {
			return 0, err
		}
		return len(s), nil
	}
	if _, err := io.WriteString(e.w, s[:i+1]); err != nil {
		return 0, err
	}
	e.ctx.state = nlState
	return i + 1, nil
}

func tCSS(e *Writer, s string) (int, error) {
	i := 0
	for i < len(s) {
		if end, closing := delimEnd(e.ctx.delim, s[i:]); e.ctx.delim != delimNone && end == 0 {
			if _, err := io.WriteString(e.w, s[:i]); err != nil {
				return 0, err
			}
			if closing {
				if _, err := io.WriteString(e.w, s[i:i+1]); err != nil {
					return 0, err
				}
				endAttrValue(e, true)
				return i + 1, nil
			}
			if _, err := io.WriteString(e.w, `"`); err != nil {
				return 0, err
			}
			endAttrValue(e, false)
			return i, nil
		}
		if e.ctx.delim == delimNone && e.ctx.element == elementStyle {
			if end := findSpecialTagEnd(elementStyle, s[i:]); end == 0 {
				if _, err := io.WriteString(e.w, s[:i]); err != nil {
					return 0, err
				}
				e.ctx.state = stateText
				e.ctx.element = elementNone
				return i, nil
			}
		}
		switch {
		case s[i] == '"':
			if _, err := io.WriteString(e.w, s[:i+1]); err != nil {
				return 0, err
			}
			e.ctx.state = stateCSSDqStr
			return i + 1, nil
		case s[i] == '\'':
			if _, err := io.WriteString(e.w, s[:i+1]); err != nil {
				return 0, err
			}
			e.ctx.state = stateCSSSqStr
			return i + 1, nil
		case hasPrefixFold(s[i:], "url("):
			if _, err := io.WriteString(e.w, s[:i+4]); err != nil {
				return 0, err
			}
			j := i + 4
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && s[j] == '"' {
				if _, err := io.WriteString(e.w, s[i+4:j+1]); err != nil {
					return 0, err
				}
				e.ctx.state = stateCSSDqURL
				return j + 1, nil
			}
			if j < len(s) && s[j] == '\'' {
				if _, err := io.WriteString(e.w, s[i+4:j+1]); err != nil {
					return 0, err
				}
				e.ctx.state = stateCSSSqURL
				return j + 1, nil
			}
			if _, err := io.WriteString(e.w, s[i+4:j]); err != nil {
				return 0, err
			}
			e.ctx.state = stateCSSURL
			return j, nil
		case i+1 < len(s) && s[i] == '/' && s[i+1] == '*':
			if _, err := io.WriteString(e.w, s[:i]); err != nil {
				return 0, err
			}
			e.ctx.state = stateCSSBlockCmt
			return i + 2, nil
		case i+1 < len(s) && s[i] == '/' && s[i+1] == '/':
			if _, err := io.WriteString(e.w, s[:i]); err != nil {
				return 0, err
			}
			e.ctx.state = stateCSSLineCmt
			return i + 2, nil
		}
		i++
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// tCSSStr handles CSSDqStr and CSSSqStr: scan for the unescaped matching
// quote, '\' consumes the next byte (including an escaped newline, CSS's
// line-continuation).
func tCSSStr(e *Writer, s string) (int, error) {
	closeByte := byte('"')
	nextState := stateCSSDqURL
	switch e.ctx.state {
	case stateCSSSqStr:
		closeByte = '\''
		nextState = stateCSSSqURL
	case stateCSSDqURL:
		closeByte = '"'
		nextState = stateCSS
	case stateCSSSqURL:
		closeByte = '\''
		nextState = stateCSS
	}
	isURL := e.ctx.state == stateCSSDqURL || e.ctx.state == stateCSSSqURL
	if !isURL {
		switch e.ctx.state {
		case stateCSSDqStr:
			nextState = stateCSS
		case stateCSSSqStr:
			nextState = stateCSS
		}
	}
	i := 0
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return fail(e, ErrBadHTML, "unterminated escape in CSS string")
			}
			i += 2
			continue
		case '\n', '\r':
			return fail(e, ErrBadHTML, "unterminated CSS string")
		}
		if s[i] == closeByte {
			if _, err := io.WriteString(e.w, s[:i+1]); err != nil {
				return 0, err
			}
			e.ctx.state = nextState
			return i + 1, nil
		}
		i++
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// tCSSURL handles the unquoted url(...) token: scan for ')' or whitespace.
func tCSSURL(e *Writer, s string) (int, error) {
	i := strings.IndexAny(s, ") \t\n\r\f")
	if i < 0 {
		if _, err := io.WriteString(e.w, s); err != nil {
			return 0, err
		}
		return len(s), nil
	}
	if _, err := io.WriteString(e.w, s[:i]); err != nil {
		return 0, err
	}
	if _, err := io.WriteString(e.w, s[i:i+1]); err != nil {
		return 0, err
	}
	e.ctx.state = stateCSS
	return i + 1, nil
}

func tMarkupCmt(e *Writer, s string) (int, error) {
	i := strings.Index(s, "-->")
	fromXML := e.ctx.xmlText
	if i < 0 {
		if fromXML {
			if _, err := io.WriteString(e.w, s); err != nil {
				return 0, err
			}
		}
		return len(s), nil
	}
	if fromXML {
		if _, err := io.WriteString(e.w, s[:i+3]); err != nil {
			return 0, err
		}
		e.ctx.state = stateXML
	} else {
		e.ctx.state = stateText
	}
	return i + 3, nil
}

func tCDATA(e *Writer, s string) (int, error) {
	i := strings.Index(s, "]]>")
	chunk := s
	if i >= 0 {
		chunk = s[:i]
	}
	if e.ctx.xmlText {
		if _, err := io.WriteString(e.w, chunk); err != nil {
			return 0, err
		}
	} else {
		if err := escapeHTML(chunk, e.w); err != nil {
			return 0, err
		}
	}
	if i < 0 {
		return len(s), nil
	}
	if _, err := io.WriteString(e.w, "]]>"); err != nil {
		return 0, err
	}
	if e.ctx.xmlText {
		e.ctx.state = stateXML
	} else {
		e.ctx.state = stateText
	}
	return i + 3, nil
}

func tRCDATA(e *Writer, s string) (int, error) {
	end := findSpecialTagEnd(e.ctx.element, s)
	chunk := s
	if end >= 0 {
		chunk = s[:end]
	}
	if err := escapeRCDATA(chunk, e.w); err != nil {
		return 0, err
	}
	if end < 0 {
		return len(s), nil
	}
	e.ctx.state = stateText
	e.ctx.element = elementNone
	return end, nil
}

// tXML handles text at the top level of a document that a non-whitelisted
// doctype switched out of HTML mode. It behaves like tText except that a
// tag start always leads into the same HTML-shaped Tag/AttrName/value
// machinery (XHTML-style foreign markup uses the same attribute and
// sublanguage rules), and comments/CDATA entered here are preserved rather
// than elided.
func tXML(e *Writer, s string) (int, error) {
	i := strings.IndexByte(s, '<')
	if i < 0 {
		if _, err := io.WriteString(e.w, s); err != nil {
			return 0, err
		}
		return len(s), nil
	}
	if i > 0 {
		if _, err := io.WriteString(e.w, s[:i]); err != nil {
			return 0, err
		}
	}
	rest := s[i:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		e.ctx.state = stateMarkupCmt
		e.ctx.xmlText = true
		if _, err := io.WriteString(e.w, "<!--"); err != nil {
			return 0, err
		}
		return i + 4, nil
	case hasPrefixFold(rest, "<![CDATA["):
		e.ctx.state = stateCDATA
		e.ctx.xmlText = true
		if _, err := io.WriteString(e.w, "<![CDATA["); err != nil {
			return 0, err
		}
		return i + 9, nil
	case len(rest) > 1 && rest[1] == '/':
		if _, err := io.WriteString(e.w, "</"); err != nil {
			return 0, err
		}
		e.ctx.state = stateTagName
		return i + 2, nil
	case len(rest) > 1 && isAsciiAlpha(rest[1]):
		if _, err := io.WriteString(e.w, "<"); err != nil {
			return 0, err
		}
		e.ctx.state = stateTagName
		return i + 1, nil
	default:
		if _, err := io.WriteString(e.w, "&lt;"); err != nil {
			return 0, err
		}
		return i + 1, nil
	}
}
