package resolver

import "sort"

// candidateSet is a transient collection of filesystem matches gathered
// during a search. It only lives long enough to decide between "exactly
// one", "none", and "ambiguous", and to enumerate candidates in
// diagnostics; it is never persisted.
type candidateSet []string

func (c candidateSet) sort() {
	sort.Strings(c)
}
