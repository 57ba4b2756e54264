// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"fmt"
	"io"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// jsStrReplacementTable escapes a value for inclusion in a JS string
// literal. HTML-special characters are escaped as hex so the output can
// also be embedded in an HTML attribute without further encoding; '/' is
// escaped to defend against an embedded "</script"; '+' guards against
// legacy UTF-7 content sniffing; U+2028/U+2029 are JS line terminators that
// cannot appear literally inside a string.
var jsStrReplacementTable = newReplacementTable().
	add(0, "\\0").
	add('`', "\\x60").
	add('"', "\\x22").
	add('&', "\\x26").
	add('\'', "\\x27").
	add('\t', "\\t").
	add('\n', "\\n").
	add('\v', "\\x0b"). // "\v" == "v" on IE 6.
	add('\f', "\\f").
	add('\r', "\\r").
	add('(', "\\(").
	add(')', "\\)").
	add('+', "\\x2b").
	add('/', "\\/").
	add('<', "\\x3c").
	add('>', "\\x3e").
	add('\\', "\\\\").
	add(0x2028, "\\u2028").
	add(0x2029, "\\u2029")

// jsStrNormReplacementTable is like jsStrReplacementTable but does not
// re-encode existing escapes, since it has no entry for '\\'. It is used
// when the value already carries the JSStr safe-content tag.
var jsStrNormReplacementTable = jsStrReplacementTable.clone().add('\\', nil)

// jsRegexpReplacementTable is the string table plus the characters with
// special meaning in a regular expression, so an interpolated value reads
// as a literal sequence rather than contributing metacharacters.
var jsRegexpReplacementTable = jsStrReplacementTable.clone().
	add('{', "\\{").
	add('|', "\\|").
	add('}', "\\}").
	add('$', "\\$").
	add('*', "\\*").
	add('-', "\\-").
	add('.', "\\.").
	add('?', "\\?").
	add('[', "\\[").
	add(']', "\\]").
	add('^', "\\^").
	withEmpty("(?:)")

func escapeJSStr(s string, w io.Writer) error {
	return jsStrReplacementTable.escapeString(s, w)
}

func escapeJSRegexp(s string, w io.Writer) error {
	return jsRegexpReplacementTable.escapeString(s, w)
}

// isJSIdentPart returns whether r is a JS identifier part. It does not
// handle all the non-Latin letters, joiners, and combining marks, but it
// does handle every code point that can occur in a numeric literal or a
// keyword, which is all nextJSCtx needs.
func isJSIdentPart(r rune) bool {
	return r == '$' || r == '_' ||
		('0' <= r && r <= '9') || ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z')
}

// regexpPrecederKeywords can precede a regular expression literal in JS
// source; a '/' following one of these is never a division operator.
var regexpPrecederKeywords = map[string]bool{
	"do": true, "in": true, "try": true,
	"case": true, "else": true, "void": true,
	"break": true, "throw": true,
	"delete": true, "return": true, "typeof": true,
	"finally":  true,
	"continue": true,
	"instanceof": true,
}

// nextJSCtx returns the jsCtx that determines whether a '/' following the
// run of JS tokens s starts a regular expression literal or a
// division operator. s must not contain any string, comment, or regexp
// literal tokens, or division operators -- tJS only calls this over runs it
// has already verified are free of those.
//
// This assumes the draft JavaScript 2.0 lexical grammar and one token of
// lookbehind; it fails on some valid but nonsensical programs like
// "x = ++/foo/i" (quite different from "x++/foo/i") but is not known to
// fail on any useful program.
func nextJSCtx(s string, precJSCtx jsCtx) jsCtx {
	e := len(s)
	for e > 0 {
		switch s[e-1] {
		case '\t', '\n', '\r', ' ':
			e--
			continue
		}
		if e >= 3 && (s[e-3:e] == " " || s[e-3:e] == " ") {
			e -= 3
			continue
		}
		break
	}
	if e == 0 {
		return precJSCtx
	}

	c := s[e-1]
	switch c {
	case '+', '-':
		// ++ and -- are not regexp preceders, but + and - are whether
		// used as infix or prefix operators.
		start := e - 1
		for start > 0 && s[start-1] == c {
			start--
		}
		if (e-start)&1 == 1 {
			// Reached for a trailing run of minus signs since "---" is
			// the same as "-- -".
			return jsCtxRegexp
		}
		return jsCtxDivOp
	case '.':
		// Handle "42."
		if e >= 2 && '0' <= s[e-2] && s[e-2] <= '9' {
			return jsCtxDivOp
		}
		return jsCtxRegexp
	case ',', '<', '>', '=', '*', '%', '&', '|', '^', '?':
		return jsCtxRegexp
	case '!', '~':
		return jsCtxRegexp
	case '(', '[':
		return jsCtxRegexp
	case ':', ';', '{':
		return jsCtxRegexp
	case '}':
		// The close punctuators ')' and ']' precede division ops and are
		// handled by the default case below, but '}' can precede a
		// division op too, as in ({ valueOf: function() { return 42 } } / 2).
		// In practice developers don't divide object literals, so treating
		// '}' as a regexp preceder works well for the common case of
		// function() { ... } /foo/.test(x) && sideEffect().
		return jsCtxRegexp
	default:
		j := e
		for j > 0 {
			r := rune(s[j-1])
			if !isJSIdentPart(r) {
				break
			}
			j--
		}
		if regexpPrecederKeywords[s[j:e]] {
			return jsCtxRegexp
		}
		// Otherwise a punctuator not listed above, or a string (which
		// precedes a div op), or an identifier (which precedes a div op).
		return jsCtxDivOp
	}
}

func escapeJSValue(v interface{}, w io.Writer) error {
	enc := &jsValueEncoder{w: w}
	return enc.encode(v, true)
}

// jsValueEncoder dispatches an untrusted Go value to a JS literal by
// runtime type: null/absent becomes " null "; numbers and booleans are
// inlined textually; a value carrying the JS safe-content tag is inserted
// verbatim; a value carrying the JSStr tag is single-quoted with string
// escapes; a JSONMarshaler's output is validated against a JSON-token
// grammar before being trusted; slices, arrays, and maps render as JS
// array/object literals recursively; everything else is stringified and
// single-quoted. An identity set guards against cycles in container
// values.
type jsValueEncoder struct {
	w    io.Writer
	seen map[interface{}]bool
}

func (e *jsValueEncoder) encode(v interface{}, protectBoundaries bool) error {
	if v == nil {
		return e.writeNull(protectBoundaries)
	}
	rv := reflect.ValueOf(v)
	if isPointerLike(rv) && rv.IsNil() {
		return e.writeNull(protectBoundaries)
	}
	if e.seen != nil && isIdentityKeyable(rv) {
		key := identityKey(rv)
		if e.seen[key] {
			return e.writeNull(protectBoundaries)
		}
	}

	// The safe-content tags are string types. Only those are stringified
	// here, since stringifying a cyclic container would not terminate.
	if reflect.TypeOf(indirect(v)).Kind() == reflect.String {
		if s, ok := derefSafeContent(contentTypeJS, v); ok {
			return e.writeVerbatim(s, protectBoundaries)
		}
		if s, ok := derefSafeContent(contentTypeJSStr, v); ok {
			return e.writeJSStrTag(s)
		}
	}
	if jm, ok := v.(JSONMarshaler); ok {
		json, err := jm.ToJSON()
		if err != nil {
			return e.writeJSONFailure(err.Error())
		}
		return e.writeJSON(json, protectBoundaries)
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Float32, reflect.Float64:
		if protectBoundaries {
			if err := e.writeByte(' '); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(e.w, fmt.Sprint(v)); err != nil {
			return err
		}
		if protectBoundaries {
			return e.writeByte(' ')
		}
		return nil
	case reflect.Ptr, reflect.Interface:
		return e.encode(rv.Elem().Interface(), protectBoundaries)
	case reflect.Slice, reflect.Array:
		return e.encodeSequence(rv)
	case reflect.Map:
		return e.encodeMap(rv)
	}
	// Strings and anything else fall through to a quoted string.
	return e.writeQuoted(fmt.Sprint(v))
}

func (e *jsValueEncoder) markSeen(rv reflect.Value) {
	if e.seen == nil {
		e.seen = make(map[interface{}]bool)
	}
	if isIdentityKeyable(rv) {
		e.seen[identityKey(rv)] = true
	}
}

func isPointerLike(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

func isIdentityKeyable(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

func identityKey(rv reflect.Value) interface{} {
	return rv.Pointer()
}

func (e *jsValueEncoder) writeByte(b byte) error {
	_, err := e.w.Write([]byte{b})
	return err
}

func (e *jsValueEncoder) writeNull(protectBoundaries bool) error {
	if protectBoundaries {
		_, err := io.WriteString(e.w, " null ")
		return err
	}
	_, err := io.WriteString(e.w, "null")
	return err
}

func (e *jsValueEncoder) writeVerbatim(s string, protectBoundaries bool) error {
	if protectBoundaries {
		if err := e.writeByte(' '); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return err
	}
	if protectBoundaries {
		return e.writeByte(' ')
	}
	return nil
}

func (e *jsValueEncoder) writeJSStrTag(s string) error {
	trailingSlashes := 0
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '\\' {
			break
		}
		trailingSlashes++
	}
	if err := e.writeByte('\''); err != nil {
		return err
	}
	if err := jsStrNormReplacementTable.escapeString(s, e.w); err != nil {
		return err
	}
	if trailingSlashes%2 != 0 {
		// Complete an incomplete trailing escape sequence.
		if err := e.writeByte('\\'); err != nil {
			return err
		}
	}
	return e.writeByte('\'')
}

func (e *jsValueEncoder) writeQuoted(s string) error {
	if err := e.writeByte('\''); err != nil {
		return err
	}
	if err := jsStrReplacementTable.escapeString(s, e.w); err != nil {
		return err
	}
	return e.writeByte('\'')
}

func (e *jsValueEncoder) writeJSONFailure(problem string) error {
	if len(problem) > 40 {
		problem = problem[:37] + "..."
	}
	problem = strings.ReplaceAll(problem, "*", "* ")
	_, err := io.WriteString(e.w, " /* json: "+problem+" */ null ")
	return err
}

// jsonTokenPattern matches a sequence of one or more valid JSON tokens, per
// RFC 4627, used to sanity-check a JSONMarshaler's output before trusting
// it to preserve string boundaries and contain no free variables.
var jsonTokenPattern = regexp.MustCompile(
	`^[\t\n\r ]*(?:(?:[\[\]{}:,]|` +
		`(?:false|null|true|` +
		`-?(?:0|[1-9][0-9]*)(?:[.][0-9]+)?(?:[eE][+-]?[0-9]+)?|` +
		`"(?:[^\\"\x00-\x1f]|\\(?:["\\/bfnrt]|u[0-9a-fA-F]{4}))*"` +
		`))[\t\n\r ]*)+$`)

func (e *jsValueEncoder) writeJSON(json string, protectBoundaries bool) error {
	if len(json) == 0 || !jsonTokenPattern.MatchString(json) {
		return e.writeJSONFailure(firstProblem(json))
	}
	json = strings.ReplaceAll(json, " ", "\\u2028")
	json = strings.ReplaceAll(json, " ", "\\u2029")
	if protectBoundaries && isJSIdentPart(rune(json[0])) {
		if err := e.writeByte(' '); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(e.w, json); err != nil {
		return err
	}
	if protectBoundaries && isJSIdentPart(rune(json[len(json)-1])) {
		return e.writeByte(' ')
	}
	return nil
}

func firstProblem(json string) string {
	if json == "" {
		return "empty JSON"
	}
	return json
}

func (e *jsValueEncoder) encodeSequence(rv reflect.Value) error {
	e.markSeen(rv)
	n := rv.Len()
	if n == 0 {
		_, err := io.WriteString(e.w, "[]")
		return err
	}
	if err := e.writeByte('['); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := e.writeByte(','); err != nil {
				return err
			}
		}
		if err := e.encode(rv.Index(i).Interface(), false); err != nil {
			return err
		}
	}
	return e.writeByte(']')
}

func (e *jsValueEncoder) encodeMap(rv reflect.Value) error {
	e.markSeen(rv)
	keys := rv.MapKeys()
	if len(keys) == 0 {
		_, err := io.WriteString(e.w, "{}")
		return err
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	if err := e.writeByte('{'); err != nil {
		return err
	}
	for i, k := range keys {
		if i > 0 {
			if err := e.writeByte(','); err != nil {
				return err
			}
		}
		if err := e.writeByte('\''); err != nil {
			return err
		}
		if err := jsStrReplacementTable.escapeString(fmt.Sprint(k.Interface()), e.w); err != nil {
			return err
		}
		if _, err := io.WriteString(e.w, "':"); err != nil {
			return err
		}
		if err := e.encode(rv.MapIndex(k).Interface(), false); err != nil {
			return err
		}
	}
	return e.writeByte('}')
}
