// Copyright 2026 The Adapter Registry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package specificity ranks trie candidates by the positional-index
// tuples described in section 4.1 of the design: for a registered spec r
// matched against a query q, the rank is the index of r within
// ancestors(q), with NULL_SPEC ranking one position past the end. Lookup
// picks the candidate with the smallest tuple; subscription merging walks
// candidates from the largest tuple to the smallest.
package specificity

import "golang.org/x/exp/constraints"

// Tuple is a fixed-arity specificity vector: one index per required
// position, followed by the provided spec's index. Smaller is more
// specific.
type Tuple []int

// Compare returns -1, 0, or 1 as a compares less than, equal to, or
// greater than b, lexicographically over their elements. a and b must be
// the same length; this holds for every pair of tuples the registry
// compares, since both are built from the same query's arity.
func Compare(a, b Tuple) int {
	return compareSlices(a, b)
}

// Less reports whether a is strictly more specific than b.
func Less(a, b Tuple) bool { return Compare(a, b) < 0 }

func compareSlices[T constraints.Ordered](a, b []T) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
