// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestNudge checks the three empty-transition cases documented on nudge,
// using cmp.Diff to compare the full context struct rather than asserting
// on individual fields one at a time.
func TestNudge(t *testing.T) {
	tests := []struct {
		name string
		in   context
		want context
	}{
		{
			name: "tag position is an attribute name",
			in:   context{state: stateTag},
			want: context{state: stateAttrName},
		},
		{
			name: "undelimited value start state depends on the attr class",
			in:   context{state: stateBeforeValue, attr: attrURL},
			want: context{state: stateURL, delim: delimSpaceOrTagEnd},
		},
		{
			name: "a no-value attribute name is followed by another name",
			in:   context{state: stateAfterName, attr: attrURL},
			want: context{state: stateAttrName},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := nudge(test.in)
			if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(context{})); diff != "" {
				t.Errorf("nudge(%+v) mismatch (-want +got):\n%s", test.in, diff)
			}
		})
	}
}
