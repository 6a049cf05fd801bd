// Package entities contains the core, infrastructure-free domain types of
// the detection model: patterns, findings and the error kinds raised while
// building or applying them.
package entities

import (
	"fmt"
	"regexp"

	"github.com/spikermint/vet/internal/domain/values"
)

// VerifierHandle identifies a verification strategy registered for a
// pattern. It is looked up in a dispatch table, never used for runtime
// subtype polymorphism (see the design notes on verifier dispatch).
type VerifierHandle string

// Pattern is an immutable, globally-unique (by ID) detection rule.
type Pattern struct {
	ID             values.PatternID
	Group          values.Group
	Name           string
	Description    string
	Severity       values.Severity
	Regex          *regexp.Regexp
	SecretGroup    int // capture-group index designating the secret value
	Keywords       []string
	MinEntropy     *float64 // nil means no entropy floor
	DefaultEnabled bool
	Verifier       VerifierHandle // empty means unverifiable
	CaseSensitive  bool
}

// Validate enforces the registry-load-time invariants from the data model:
// a non-empty keyword set, a capturing group matching SecretGroup, and the
// "every true positive contains a keyword" soundness check approximated
// structurally (full soundness is exercised by the prefilter+matcher
// integration tests, not provable from the regex alone).
func (p Pattern) Validate() error {
	if p.ID.IsZero() {
		return fmt.Errorf("pattern has empty id")
	}
	if p.Regex == nil {
		return fmt.Errorf("pattern %s: regex is nil", p.ID)
	}
	if len(p.Keywords) == 0 {
		return fmt.Errorf("pattern %s: keywords must be non-empty", p.ID)
	}
	for _, kw := range p.Keywords {
		if kw == "" {
			return fmt.Errorf("pattern %s: keywords must not contain the empty string", p.ID)
		}
	}
	if p.SecretGroup < 1 || p.SecretGroup > p.Regex.NumSubexp() {
		return fmt.Errorf("pattern %s: secret_group %d out of range for %d capturing groups", p.ID, p.SecretGroup, p.Regex.NumSubexp())
	}
	if p.Severity.IsZero() {
		return fmt.Errorf("pattern %s: severity is required", p.ID)
	}
	return nil
}
