// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"bytes"
	"testing"
)

func TestEscapeURL(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeURL("a b&c=d", &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "a%20b%26c%3Dd"; got != want {
		t.Errorf("escapeURL = %q, want %q", got, want)
	}
}

func TestNormalizeURLPreservesStructure(t *testing.T) {
	var buf bytes.Buffer
	if err := normalizeURL("/a/b?c=d&e=f#g", &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "/a/b?c=d&e=f#g"; got != want {
		t.Errorf("normalizeURL = %q, want %q", got, want)
	}
}

func TestNormalizeURLDoesNotDoubleEncodePercent(t *testing.T) {
	var buf bytes.Buffer
	if err := normalizeURL("/a%20b", &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "/a%20b"; got != want {
		t.Errorf("normalizeURL = %q, want %q", got, want)
	}
}

// TestNormalizeURLPreservesBarePercent documents that normalize mode, which
// assumes its input already looks like a syntactically valid URL, leaves a
// literal '%' alone even when it is not followed by two hex digits: '%' is
// in the preserved reserved/sub-delim set regardless of what follows it.
func TestNormalizeURLPreservesBarePercent(t *testing.T) {
	var buf bytes.Buffer
	if err := normalizeURL("/a%zzb", &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "/a%zzb"; got != want {
		t.Errorf("normalizeURL = %q, want %q", got, want)
	}
}

func TestURLPrefixAllowed(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"http://example.com/", true},
		{"HTTPS://example.com/", true},
		{"mailto:a@b.com", true},
		{"javascript:alert(1)", false},
		{"data:text/html,x", false},
		{"/relative/path", true},
		{"relative/path", true},
		{"/a:b", true}, // colon past the first path segment is not a scheme
		{"", true},
	}
	for _, test := range tests {
		if got := urlPrefixAllowed(test.in); got != test.want {
			t.Errorf("urlPrefixAllowed(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestFilterURL(t *testing.T) {
	var buf bytes.Buffer
	if err := filterURL("javascript:alert(1)", &buf); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != filterReplacementURL {
		t.Errorf("filterURL(javascript:...) = %q, want %q", got, filterReplacementURL)
	}

	buf.Reset()
	if err := filterURL("/search?q=1", &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "/search?q=1"; got != want {
		t.Errorf("filterURL(%q) = %q, want %q", "/search?q=1", got, want)
	}
}
