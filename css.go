// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"io"
	"strings"
)

// cssReplacementTable hex-escapes everything that could end a CSS string or
// introduce a new token: quotes, backslash, the characters that start a
// comment, parens and the characters url(...) is sensitive to, and
// whitespace (CSS string escapes of the form "\HH " require a trailing
// space or another hex digit would be absorbed into the escape).
var cssReplacementTable = newReplacementTable().
	add(0, "�").
	add('\t', "\\9 ").
	add('\n', "\\a ").
	add('\v', "\\b ").
	add('\f', "\\c ").
	add('\r', "\\d ").
	add('"', "\\22 ").
	add('&', "\\26 ").
	add('\'', "\\27 ").
	add('(', "\\28 ").
	add(')', "\\29 ").
	add('+', "\\2b ").
	add('/', "\\2f ").
	add(':', "\\3a ").
	add(';', "\\3b ").
	add('<', "\\3c ").
	add('=', "\\3d ").
	add('>', "\\3e ").
	add('@', "\\40 ").
	add('\\', "\\5c ").
	add('{', "\\7b ").
	add('}', "\\7d ")

func escapeCSS(s string, w io.Writer) error {
	return cssReplacementTable.escapeString(s, w)
}

// cssValueSafe reports whether r may appear unescaped in an unquoted CSS
// value: letters, digits, and the small set of punctuation that cannot
// introduce a new declaration, string, url(), or comment.
func cssValueSafe(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z', '0' <= r && r <= '9':
		return true
	}
	switch r {
	case '-', '.', ',', '%', '#', ' ', '!', '_':
		return true
	}
	return false
}

// filterCSSValue emits s unchanged if every character is cssValueSafe;
// otherwise it emits filterFailsafe in place of the whole value (no
// error is returned). It backs
// FILTER_CSS_VALUE, the escaper for an untrusted value interpolated
// directly into a CSS declaration's value position outside any string.
func filterCSSValue(s string, w io.Writer) error {
	for _, r := range s {
		if !cssValueSafe(r) {
			_, err := io.WriteString(w, filterFailsafe)
			return err
		}
	}
	_, err := io.WriteString(w, s)
	return err
}

// cssEscapeURL percent-escapes s for use inside a CSS url(...) token,
// additionally backslash-escaping the characters that would otherwise end
// the CSS token (quotes, parens, whitespace) on top of the URL percent
// rules, since url(...) can appear unquoted.
func cssEscapeURL(s string, w io.Writer) error {
	var b strings.Builder
	if err := normalizeURL(s, &b); err != nil {
		return err
	}
	return cssReplacementTable.escapeString(b.String(), w)
}

// filterCSSURL is FILTER_CSS_URL: the content of a url(...) token before any
// '?' has been seen must pass the same protocol whitelist as an HTML URL
// attribute, since "background: url(javascript:...)" is exploitable in
// older engines. Past the gate it applies the same CSS-safe percent
// encoding as cssEscapeURL.
func filterCSSURL(s string, w io.Writer) error {
	if !urlPrefixAllowed(s) {
		_, err := io.WriteString(w, filterReplacementURL)
		return err
	}
	return cssEscapeURL(s, w)
}
