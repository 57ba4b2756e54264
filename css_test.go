// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"bytes"
	"regexp"
	"testing"
)

func TestEscapeCSS(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeCSS(`"foo"; bar: baz`, &buf); err != nil {
		t.Fatal(err)
	}
	want := `\22 foo\22 \3b  bar\3a  baz`
	if got := buf.String(); got != want {
		t.Errorf("escapeCSS = %q, want %q", got, want)
	}
}

func TestFilterCSSValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"red", "red"},
		{"10px", "10px"},
		{"50%", "50%"},
		{`red; background: url(javascript:alert(1))`, filterFailsafe},
		{`"quoted"`, filterFailsafe},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		if err := filterCSSValue(test.in, &buf); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("filterCSSValue(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestFilterCSSURL(t *testing.T) {
	// Disallowed schemes are replaced outright; allowed ones are passed
	// through cssEscapeURL, which backslash-escapes ':' and '/' along with
	// percent-encoding, so only the disallowed-scheme case has a fixed
	// expected string here -- the allowed cases are checked for properties
	// (no raw quote/paren/space survives) rather than an exact transcript.
	// The space that ends a "\HH " hex escape belongs to the escape, so
	// escapes are removed before looking for a raw space.
	hexEscape := regexp.MustCompile(`\\[0-9a-fA-F]{1,6} `)
	var buf bytes.Buffer
	if err := filterCSSURL("javascript:alert(1)", &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != filterReplacementURL {
		t.Errorf("filterCSSURL(javascript:...) = %q, want %q", got, filterReplacementURL)
	}

	for _, in := range []string{"/img/foo.png", "http://example.com/a b"} {
		buf.Reset()
		if err := filterCSSURL(in, &buf); err != nil {
			t.Fatal(err)
		}
		got := buf.String()
		if bytes.ContainsAny([]byte(hexEscape.ReplaceAllString(got, "")), " \"'()") {
			t.Errorf("filterCSSURL(%q) = %q, left an unescaped CSS-breaking character", in, got)
		}
	}
}

func TestCSSEscapeURLHandlesReservedChars(t *testing.T) {
	var buf bytes.Buffer
	if err := cssEscapeURL(`a "b" c`, &buf); err != nil {
		t.Fatal(err)
	}
	// The quote must not survive unescaped: it would terminate
	// whichever quoting (or lack of it) wraps the url(...) token.
	if bytes.ContainsRune(buf.Bytes(), '"') {
		t.Errorf("cssEscapeURL left a raw quote in %q", buf.String())
	}
}
