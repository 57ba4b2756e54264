// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"io"
	"strconv"
	"strings"
)

// replacementTable is a character->string map applied as a streaming
// transform: every byte of the input is either copied through unchanged or
// replaced by the string registered for its code point. It composes by
// copy-and-override (clone then add), and carries one hook for what to emit
// when the entire input is empty -- relevant to the JS regexp escaper, whose
// empty replacement must be "(?:)" so that "/" + "" + "/" does not become a
// "//" line comment.
type replacementTable struct {
	ascii   [128]*string
	extra   map[rune]string
	onEmpty string
}

func newReplacementTable() *replacementTable {
	return &replacementTable{}
}

// clone returns an independent copy so callers can add overrides without
// mutating a shared base table.
func (t *replacementTable) clone() *replacementTable {
	nt := &replacementTable{ascii: t.ascii, onEmpty: t.onEmpty}
	if len(t.extra) > 0 {
		nt.extra = make(map[rune]string, len(t.extra))
		for k, v := range t.extra {
			nt.extra[k] = v
		}
	}
	return nt
}

// add registers repl as the replacement for r, or clears any replacement
// for r if repl is nil. It returns the receiver so calls can be chained.
func (t *replacementTable) add(r rune, repl interface{}) *replacementTable {
	var sp *string
	if repl != nil {
		s := repl.(string)
		sp = &s
	}
	if r < 128 {
		t.ascii[r] = sp
	} else {
		if sp == nil {
			if t.extra != nil {
				delete(t.extra, r)
			}
		} else {
			if t.extra == nil {
				t.extra = make(map[rune]string)
			}
			t.extra[r] = *sp
		}
	}
	return t
}

// withEmpty sets the string emitted in place of a completely empty input.
func (t *replacementTable) withEmpty(s string) *replacementTable {
	t.onEmpty = s
	return t
}

// escapeString runs the table over s, writing the result to w.
func (t *replacementTable) escapeString(s string, w io.Writer) error {
	if len(s) == 0 {
		if t.onEmpty != "" {
			_, err := io.WriteString(w, t.onEmpty)
			return err
		}
		return nil
	}
	last := 0
	for i, r := range s {
		var repl *string
		if r < 128 {
			repl = t.ascii[r]
		} else if t.extra != nil {
			if rs, ok := t.extra[r]; ok {
				repl = &rs
			}
		}
		if repl == nil {
			continue
		}
		if i > last {
			if _, err := io.WriteString(w, s[last:i]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, *repl); err != nil {
			return err
		}
		last = i + len(string(r))
	}
	if last < len(s) {
		if _, err := io.WriteString(w, s[last:]); err != nil {
			return err
		}
	}
	return nil
}

// escapeRune applies the table to a single code point. Nothing in the
// package calls it; quoteSafeWriter uses escapeString.
func (t *replacementTable) escapeRune(r rune, w io.Writer) error {
	var repl *string
	if r < 128 {
		repl = t.ascii[r]
	} else if t.extra != nil {
		if rs, ok := t.extra[r]; ok {
			repl = &rs
		}
	}
	if repl != nil {
		_, err := io.WriteString(w, *repl)
		return err
	}
	_, err := w.Write([]byte(string(r)))
	return err
}

// quoteSafeWriter wraps an io.Writer so that every byte written through it
// is first passed through a replacement table. It is installed transiently
// at an untrusted-value boundary so escapers never need to special-case
// "am I inside a quoted attribute"; the active delimiter is simply added to
// the table's already-escaped set.
type quoteSafeWriter struct {
	w  io.Writer
	rt *replacementTable
}

func (q *quoteSafeWriter) Write(p []byte) (int, error) {
	if err := q.rt.escapeString(string(p), q.w); err != nil {
		return 0, err
	}
	return len(p), nil
}

// hexEscapeUpper renders cp as upper-case hex digits, with no backslash or
// other prefix. The CSS and JS replacement tables spell out their escapes
// literally and do not call it.
func hexEscapeUpper(cp rune) string {
	return strings.ToUpper(strconv.FormatInt(int64(cp), 16))
}
