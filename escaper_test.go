// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"bytes"
	"html/template"
	"testing"
)

// TestScenarios exercises the concrete safe-prefix/unsafe-value/expected-
// output table: each case writes the safe prefix, then the unsafe value,
// and compares the accumulated output.
func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		unsafe interface{}
		want   string
	}{
		{
			name:   "javascript url gated",
			prefix: `<a href="`,
			unsafe: "javascript:alert(1)",
			want:   `<a href="#ZautoescZ`,
		},
		{
			name:   "url after query percent-encodes",
			prefix: `<a href="/search?q=`,
			unsafe: "a b&c",
			want:   `<a href="/search?q=a%20b%26c`,
		},
		{
			name:   "js string in attribute",
			prefix: `<a onclick="alert(`,
			unsafe: `hello "world"`,
			want:   `<a onclick="alert('hello \x22world\x22'`,
		},
		{
			name:   "js string closes script tag safely",
			prefix: `<script>var x=`,
			unsafe: `"</script>"`,
			want:   `<script>var x='\x22\x3c\/script\x3e\x22'`,
		},
		{
			name:   "empty regexp stays a regexp",
			prefix: `<script>var r = /`,
			unsafe: "",
			want:   `<script>var r = /(?:)`,
		},
		{
			name:   "css url percent-encodes",
			prefix: `<style>background: url(`,
			unsafe: "foo bar",
			want:   `<style>background: url(foo%20bar`,
		},
		{
			name:   "unquoted attr value gets quoted",
			prefix: `<input value=`,
			unsafe: "a b",
			want:   `<input value="a b`,
		},
		{
			name:   "textarea body normalized as RCDATA",
			prefix: `<textarea>`,
			unsafe: "<b>hi</b>",
			want:   `<textarea>&lt;b&gt;hi&lt;/b&gt;`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := New(&buf)
			if err := w.WriteSafe(test.prefix); err != nil {
				t.Fatalf("WriteSafe(%q): %v", test.prefix, err)
			}
			if err := w.WriteUnsafe(test.unsafe); err != nil {
				t.Fatalf("WriteUnsafe(%v): %v", test.unsafe, err)
			}
			if got := buf.String(); got != test.want {
				t.Errorf("output = %q, want %q", got, test.want)
			}
		})
	}
}

// TestUnquotedAttributeClosesAtTagEnd checks that the quote inserted for an
// unquoted attribute value is closed when the tag ends, per scenario 7's
// full lifecycle.
func TestUnquotedAttributeClosesAtTagEnd(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, `<input value=`)
	mustWriteUnsafe(t, w, "a b")
	mustWriteSafe(t, w, `>`)
	want := `<input value="a b">`
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if w.Context().state != stateText {
		t.Errorf("final state = %v, want Text", w.Context().state)
	}
}

// TestSafeContentIdempotence covers invariant 4: a value carrying a tag
// honoured by the active escaper is passed through verbatim.
func TestSafeContentIdempotence(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, `<div>`)
	mustWriteUnsafe(t, w, template.HTML(`<b>bold</b>`))
	want := `<div><b>bold</b>`
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestRoundTripOnWellFormedInput covers invariant 3: scanning already
// well-formed trusted markup changes nothing but comment normalization,
// unquoted-attribute quoting, and DOCTYPE-driven XML switching.
func TestRoundTripOnWellFormedInput(t *testing.T) {
	src := `<div id="a" class='b'><p>hello <!-- note --> world</p></div>`
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, src)
	if got := buf.String(); got != `<div id="a" class='b'><p>hello  world</p></div>` {
		t.Errorf("output = %q", got)
	}
}

func TestCloseRequiresTextState(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, `<div`)
	if err := w.Close(); err == nil {
		t.Fatal("Close succeeded on an unclosed tag, want an error")
	} else if e, ok := err.(*Error); !ok || e.Kind != ErrEndContext {
		t.Errorf("Close err = %v, want ErrEndContext", err)
	}
}

func TestCloseAtTextSucceeds(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, `<div>hi</div>`)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestSetSoftPreservesEntities(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.SetSoft(true)
	if !w.IsSoft() {
		t.Fatal("IsSoft() = false after SetSoft(true)")
	}
	mustWriteUnsafe(t, w, "&amp; <b>")
	want := "&amp; &lt;b&gt;"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestMalformedAttrNameFails(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	err := w.WriteSafe(`<div a"b=1>`)
	if err == nil {
		t.Fatal("WriteSafe with a quote in an attribute name succeeded, want error")
	}
	if e, ok := err.(*Error); !ok || e.Kind != ErrBadHTML {
		t.Errorf("err = %v, want ErrBadHTML", err)
	}
}

func TestDoctypeSwitchesToXML(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, `<!doctype feed><feed>`)
	if w.Context().state != stateXML {
		t.Fatalf("state after non-whitelisted doctype = %v, want XML", w.Context().state)
	}
	mustWriteSafe(t, w, `</feed>`)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDoctypeHTMLStaysText(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, `<!doctype html><p>hi</p>`)
	if w.Context().state != stateText {
		t.Fatalf("state after html doctype = %v, want Text", w.Context().state)
	}
}

// TestXMLModePreservesComments covers the REDESIGN behavior that a comment
// scanned after a non-whitelisted doctype is preserved verbatim, unlike the
// elision TestRoundTripOnWellFormedInput exercises in ordinary HTML text.
func TestXMLModePreservesComments(t *testing.T) {
	src := `<!doctype feed><feed><!-- note --></feed>`
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, src)
	if got := buf.String(); got != src {
		t.Errorf("output = %q, want %q", got, src)
	}
	if w.Context().state != stateXML {
		t.Errorf("final state = %v, want XML", w.Context().state)
	}
}

// TestAttrMarkupStripsTags covers ESCAPE_HTML_ATTR: a value carrying the
// Markup safe-content tag has its tags stripped rather than escaped when it
// lands in an attribute-value context.
func TestAttrMarkupStripsTags(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	mustWriteSafe(t, w, `<div title="`)
	mustWriteUnsafe(t, w, template.HTML(`<b>x</b>`))
	want := `<div title="x`
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func mustWriteSafe(t *testing.T, w *Writer, s string) {
	t.Helper()
	if err := w.WriteSafe(s); err != nil {
		t.Fatalf("WriteSafe(%q): %v", s, err)
	}
}

func mustWriteUnsafe(t *testing.T, w *Writer, v interface{}) {
	t.Helper()
	if err := w.WriteUnsafe(v); err != nil {
		t.Fatalf("WriteUnsafe(%v): %v", v, err)
	}
}
