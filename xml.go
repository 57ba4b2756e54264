// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"io"
	"strings"
)

// xmlReplacementTable is the XML analogue of htmlReplacementTable. XML
// cannot contain NULs even encoded, so NUL is replaced with U+FFFD, the
// replacement character, rather than elided.
var xmlReplacementTable = newReplacementTable().
	add('`', "&#96;").
	add('<', "&lt;").
	add('>', "&gt;").
	add('+', "&#43;").
	add('\'', "&#39;").
	add('&', "&amp;").
	add('"', "&#34;").
	add(0, "�")

var xmlNormReplacementTable = xmlReplacementTable.clone().add('&', nil)

func escapeXML(s string, w io.Writer) error {
	return xmlReplacementTable.escapeString(s, w)
}

func normalizeXML(s string, w io.Writer) error {
	return xmlNormReplacementTable.escapeString(s, w)
}

// escapeCDATA emits s unchanged as the content of a <![CDATA[...]]>
// section, unless s starts with ">" or "]>" or contains "]]>", in which
// case it splits the CDATA section around the offending run so that no
// consumer ever sees a "]]>" that isn't the one this writer emitted
// (the "]]]]><![CDATA[>" trick). NULs, which are not allowed in XML even
// inside CDATA, are elided first.
func escapeCDATA(s string, w io.Writer) error {
	if len(s) == 0 {
		return nil
	}
	if strings.IndexByte(s, 0) >= 0 {
		s = strings.ReplaceAll(s, "\x00", "")
		if len(s) == 0 {
			return nil
		}
	}

	// Make sure the start of the string can't combine with any characters
	// already on w to break out of the CDATA section.
	if s[0] == '>' || (s[0] == ']' && len(s) > 1 && s[1] == '>') {
		if _, err := io.WriteString(w, "]]><![CDATA["); err != nil {
			return err
		}
	}

	off := 0
	for i := 0; i+2 < len(s); i++ {
		if s[i] == ']' && s[i+1] == ']' && s[i+2] == '>' {
			if _, err := io.WriteString(w, s[off:i]); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "]]]]><![CDATA[>"); err != nil {
				return err
			}
			i += 2
			off = i + 1
		}
	}
	if _, err := io.WriteString(w, s[off:]); err != nil {
		return err
	}
	// Prevent the next character written to w from combining with a
	// trailing ']' from s to form "]]>".
	if s[len(s)-1] == ']' {
		if _, err := io.WriteString(w, "]]><![CDATA["); err != nil {
			return err
		}
	}
	return nil
}
