// Package suppress implements the suppression resolver (§4.7): inline
// vet:ignore directives, config ignores, and baseline entries, each
// evaluated independently and unioned to decide whether a finding is
// dropped.
package suppress

import (
	"bufio"
	"bytes"
	"regexp"
)

// directivePattern matches `vet:ignore` and the narrowed
// `vet:ignore[pattern_id]` form, anywhere on a line (typically inside a
// trailing comment).
var directivePattern = regexp.MustCompile(`vet:ignore(?:\[([^\]]+)\])?`)

// Directives maps a 1-based line number to the set of pattern ids it
// suppresses; an empty set (present but nil slice) means "suppress every
// pattern on this line".
type Directives map[int][]string

// ParseDirectives scans file content once for inline vet:ignore comments.
// The directive's line is the line bearing the comment, which is matched
// against a finding's primary line: the line containing the first byte of
// the secret capture, not the whole match's start line.
func ParseDirectives(content []byte) Directives {
	directives := make(Directives)

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		matches := directivePattern.FindAllStringSubmatch(scanner.Text(), -1)
		if matches == nil {
			continue
		}
		for _, m := range matches {
			if m[1] == "" {
				directives[line] = nil // unrestricted: suppress everything on this line
				continue
			}
			if existing, ok := directives[line]; ok && existing == nil {
				continue // already unrestricted, narrowing further is a no-op
			}
			directives[line] = append(directives[line], m[1])
		}
	}
	return directives
}

// Suppresses reports whether a directive on line suppresses patternID.
func (d Directives) Suppresses(line int, patternID string) bool {
	ids, ok := d[line]
	if !ok {
		return false
	}
	if ids == nil {
		return true
	}
	for _, id := range ids {
		if id == patternID {
			return true
		}
	}
	return false
}
