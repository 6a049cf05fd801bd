package registry

import (
	"regexp"

	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/prefilter"
)

// Matcher is the compiled artifact produced by Registry.Enabled: the
// prefilter.Index over the union of keywords, plus the parallel vector of
// patterns/regexes it resolves to. It is immutable after compilation and
// safe to share across every worker goroutine (§5).
type Matcher struct {
	Patterns []entities.Pattern

	index *prefilter.Index
}

// Candidates returns, for a given file's raw bytes, the set of pattern
// indices whose keywords were observed in the file at least once. This
// delegates to the prefilter package (§4.2); Matcher's only job is to keep
// the index and the pattern vector compiled together so indices agree.
func (m *Matcher) Candidates(content []byte) []int {
	if m.index == nil {
		return nil
	}
	return m.index.Candidates(content)
}

// compileMatcher builds the prefilter index and one compiled regexp per
// pattern, in lockstep with the pattern vector so indices agree.
func compileMatcher(patterns []entities.Pattern) (*Matcher, error) {
	keywordOwners := make(map[string][]int)

	for i, p := range patterns {
		for _, kw := range p.Keywords {
			keywordOwners[kw] = append(keywordOwners[kw], i)
		}
	}

	return &Matcher{
		Patterns: patterns,
		index:    prefilter.Build(keywordOwners),
	}, nil
}

// compileRegexLinear compiles a regex with Go's RE2 engine, the linear-time
// guarantee the anti-backtracking design note requires; it never falls back
// to a backtracking engine.
func compileRegexLinear(source string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		source = "(?i)" + source
	}
	return regexp.Compile(source)
}
