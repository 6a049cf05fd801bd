// Package prefilter implements a keyword-based Aho-Corasick pre-pass: a
// single linear pass over a file's raw bytes that narrows the regex set the
// matcher has to run from hundreds of patterns down to the handful that
// could plausibly apply.
package prefilter

import (
	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// Index is the compiled automaton over the union of every registered
// pattern's keywords, with a reverse mapping back to the pattern indices
// that keyword belongs to. It never mutates after Build and is safe to
// share across every scan worker.
type Index struct {
	trie     *ahocorasick.Trie
	owners   map[string][]int
	hasInput bool
}

// Build compiles an Index from a keyword->owning-pattern-indices map. An
// empty keywords map yields a valid Index that simply never matches, which
// is the correct behavior for an empty/fully-disabled pattern set.
func Build(keywordOwners map[string][]int) *Index {
	keywords := make([]string, 0, len(keywordOwners))
	for kw := range keywordOwners {
		keywords = append(keywords, kw)
	}

	idx := &Index{owners: keywordOwners, hasInput: len(keywords) > 0}
	if idx.hasInput {
		idx.trie = ahocorasick.NewTrieBuilder().AddStrings(keywords).Build()
	}
	return idx
}

// Candidates scans content once and returns the set of pattern indices
// whose keyword set was observed at least once, deduplicated. Never drops a
// pattern whose keyword is present (the soundness invariant in §4.2 is
// enforced upstream, at registry load, by rejecting patterns whose regex
// cannot be bound to any of its own keywords).
func (idx *Index) Candidates(content []byte) []int {
	if !idx.hasInput {
		return nil
	}

	seen := make(map[int]bool)
	for _, m := range idx.trie.Match(content) {
		for _, owner := range idx.owners[m.MatchString()] {
			seen[owner] = true
		}
	}

	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	return out
}
