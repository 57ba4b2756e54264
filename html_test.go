// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"bytes"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct{ in, want string }{
		{``, ``},
		{`plain text`, `plain text`},
		{`<b>&"'` + "`", `&lt;b&gt;&amp;&#34;&#39;&#96;`},
		{"a+b", "a&#43;b"},
		{"\x00", "�"},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		if err := escapeHTML(test.in, &buf); err != nil {
			t.Fatalf("escapeHTML(%q): %v", test.in, err)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestNormalizeHTMLPreservesEntities(t *testing.T) {
	var buf bytes.Buffer
	if err := normalizeHTML(`&amp; <b>`, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `&amp; &lt;b&gt;`; got != want {
		t.Errorf("normalizeHTML = %q, want %q", got, want)
	}
}

func TestFilterNameOnto(t *testing.T) {
	tests := []struct{ in, want string }{
		{"onclick", "onclick"},
		{"foo-bar:baz_1", "foo-bar:baz_1"},
		{"foo bar", "foo"},
		{"", ""},
		{" foo", ""},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		if err := filterNameOnto(test.in, &buf); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("filterNameOnto(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestMaybeUnescape(t *testing.T) {
	if s, ok := maybeUnescape("no entities here"); ok || s != "" {
		t.Errorf("maybeUnescape with no '&' = (%q, %v), want (\"\", false)", s, ok)
	}
	if s, ok := maybeUnescape("a &amp; b"); !ok || s != "a & b" {
		t.Errorf("maybeUnescape(%q) = (%q, %v), want (\"a & b\", true)", "a &amp; b", s, ok)
	}
}

func TestEscapeRCDATA(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeRCDATA(`<b>&amp;</b>`, &buf); err != nil {
		t.Fatal(err)
	}
	// RCDATA normalization does not re-encode an existing entity.
	if got, want := buf.String(), `&lt;b&gt;&amp;&lt;/b&gt;`; got != want {
		t.Errorf("escapeRCDATA = %q, want %q", got, want)
	}
}
