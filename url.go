// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"io"
	"strings"
)

// filterReplacementURL is emitted in place of a URL value whose scheme is
// not on the whitelist -- the anti-"javascript:" gate. It is syntactically
// inert wherever a URL is accepted: not a valid scheme, not a valid
// relative-path segment that resolves anywhere useful.
const filterReplacementURL = "#ZautoescZ"

// urlNoEncode is the set of octets escapeURL lets through unescaped: the
// unreserved set from RFC 3986, plus '~' which some older RFCs excluded but
// modern ones fold back in.
const urlNoEncode = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~"

// urlNormNoEncode extends urlNoEncode with reserved and sub-delim
// punctuation that is safe to leave alone in normalize mode, where the
// value is assumed to already be a syntactically valid URL and '%' is
// additionally preserved so existing "%HH" escapes are not doubled.
const urlNormNoEncode = urlNoEncode + "!#$&*+,/:;=?@[]%"

func isURLNoEncode(b byte) bool {
	return strings.IndexByte(urlNoEncode, b) >= 0
}

func isURLNormNoEncode(b byte) bool {
	return strings.IndexByte(urlNormNoEncode, b) >= 0
}

const hexDigits = "0123456789ABCDEF"

func writePercentEscape(w io.Writer, b byte) error {
	buf := [3]byte{'%', hexDigits[b>>4], hexDigits[b&0xf]}
	_, err := w.Write(buf[:])
	return err
}

// urlEscapeOnto is shared by escapeURL and normalizeURL. allowed reports
// whether a byte may pass through unescaped; in normalize mode an existing
// "%HH" triple is also passed through verbatim rather than having its '%'
// re-encoded.
func urlEscapeOnto(s string, w io.Writer, allowed func(byte) bool, normalize bool) error {
	i := 0
	for i < len(s) {
		b := s[i]
		if normalize && b == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			if _, err := io.WriteString(w, s[i:i+3]); err != nil {
				return err
			}
			i += 3
			continue
		}
		if allowed(b) {
			if err := writeByteTo(w, b); err != nil {
				return err
			}
			i++
			continue
		}
		if err := writePercentEscape(w, b); err != nil {
			return err
		}
		i++
	}
	return nil
}

func isHex(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func writeByteTo(w io.Writer, b byte) error {
	buf := [1]byte{b}
	_, err := w.Write(buf[:])
	return err
}

// escapeURL percent-encodes every byte outside urlNoEncode: full escaping
// for a value known to follow the '?' or '#' of a URL, where reserved
// punctuation must not be interpreted structurally.
func escapeURL(s string, w io.Writer) error {
	return urlEscapeOnto(s, w, isURLNoEncode, false)
}

// normalizeURL is like escapeURL but additionally preserves reserved and
// sub-delim punctuation and existing "%HH" escapes, for a value that
// precedes the '?' and is assumed to already look like a URL.
func normalizeURL(s string, w io.Writer) error {
	return urlEscapeOnto(s, w, isURLNormNoEncode, true)
}

// urlPrefixAllowed reports whether the scheme prefix of s (the run before
// the first '/', if it contains a ':') is an allowed protocol. A value with
// no ':' before the first '/' is a relative reference and is always
// allowed.
func urlPrefixAllowed(s string) bool {
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return true
	}
	if slash := strings.IndexByte(s, '/'); slash >= 0 && slash < colon {
		// The colon is past the first path segment, e.g. "/a:b", so it
		// cannot introduce a scheme.
		return true
	}
	scheme := strings.ToLower(s[:colon])
	switch scheme {
	case "http", "https", "mailto":
		return true
	}
	return false
}

// filterURL applies the anti-javascript: gate: if the prefix before any '/'
// names a scheme outside the whitelist, the whole value is replaced by
// filterReplacementURL. Otherwise it behaves like normalizeURL.
func filterURL(s string, w io.Writer) error {
	if !urlPrefixAllowed(s) {
		_, err := io.WriteString(w, filterReplacementURL)
		return err
	}
	return normalizeURL(s, w)
}
