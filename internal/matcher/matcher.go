// Package matcher implements the regex matching step of the scan pipeline
// (§4.3): given the prefilter's candidate pattern indices for a file, run
// each pattern's compiled RE2 regex over the file bytes and emit one
// Candidate per accepted match.
package matcher

import (
	"bytes"
	"context"
	"sort"

	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/registry"
)

// Candidate is a single accepted regex match, upstream of the entropy gate,
// fingerprinting, and dedup.
type Candidate struct {
	Pattern    entities.Pattern
	Secret     []byte
	ByteOffset int // offset of the secret capture
	MatchStart int
	MatchEnd   int
	Line       int // 1-based
	Column     int // 0-based
}

// Scan runs every prefilter-selected pattern's regex over content and
// returns one Candidate per match, ordered by ascending byte offset then by
// pattern id, so downstream stages see a deterministic sequence. ctx is
// checked before each pattern's regex evaluation (§5: "before each regex
// evaluation exceeding a soft budget"), so a file that has already burned
// through its soft per-file budget stops evaluating further patterns
// instead of running every remaining one to completion.
func Scan(ctx context.Context, m *registry.Matcher, content []byte) []Candidate {
	if m == nil {
		return nil
	}

	lineIndex := newLineIndex(content)
	var out []Candidate

	for _, idx := range m.Candidates(content) {
		if ctx.Err() != nil {
			break
		}
		p := m.Patterns[idx]
		out = append(out, matchPattern(p, content, lineIndex)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ByteOffset != out[j].ByteOffset {
			return out[i].ByteOffset < out[j].ByteOffset
		}
		return out[i].Pattern.ID.String() < out[j].Pattern.ID.String()
	})
	return out
}

// matchPattern runs one pattern's regex over content and resolves the
// same-offset tie-break (§4.3): among matches starting at the same offset
// that differ only in trailing context, keep the longest secret capture.
func matchPattern(p entities.Pattern, content []byte, li *lineIndex) []Candidate {
	locs := p.Regex.FindAllSubmatchIndex(content, -1)
	if locs == nil {
		return nil
	}

	byOffset := make(map[int]Candidate)
	order := make([]int, 0, len(locs))

	for _, loc := range locs {
		secretStart, secretEnd := loc[2*p.SecretGroup], loc[2*p.SecretGroup+1]
		if secretStart < 0 {
			continue // capture group didn't participate in this match
		}
		matchStart, matchEnd := loc[0], loc[1]

		existing, ok := byOffset[secretStart]
		if ok && secretEnd-secretStart <= len(existing.Secret) {
			continue
		}
		if !ok {
			order = append(order, secretStart)
		}

		line, col := li.lineColumn(secretStart)
		byOffset[secretStart] = Candidate{
			Pattern:    p,
			Secret:     append([]byte(nil), content[secretStart:secretEnd]...),
			ByteOffset: secretStart,
			MatchStart: matchStart,
			MatchEnd:   matchEnd,
			Line:       line,
			Column:     col,
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, off := range order {
		out = append(out, byOffset[off])
	}
	return out
}

// lineIndex maps byte offsets to 1-based line / 0-based column, built once
// per file and reused across every pattern's matches.
type lineIndex struct {
	newlineOffsets []int
}

func newLineIndex(content []byte) *lineIndex {
	li := &lineIndex{}
	offset := 0
	for {
		i := bytes.IndexByte(content[offset:], '\n')
		if i < 0 {
			break
		}
		li.newlineOffsets = append(li.newlineOffsets, offset+i)
		offset += i + 1
	}
	return li
}

func (li *lineIndex) lineColumn(byteOffset int) (line, column int) {
	// number of newlines strictly before byteOffset gives the 0-based line
	// index; sort.Search finds the first newline offset >= byteOffset.
	n := sort.Search(len(li.newlineOffsets), func(i int) bool {
		return li.newlineOffsets[i] >= byteOffset
	})
	line = n + 1

	lineStart := 0
	if n > 0 {
		lineStart = li.newlineOffsets[n-1] + 1
	}
	return line, byteOffset - lineStart
}
