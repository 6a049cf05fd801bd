// Package registry builds the immutable pattern catalogue and compiles it
// into a Matcher artifact consumed by the prefilter and regex matcher
// stages.
package registry

// PatternSpec is the declarative, not-yet-compiled form of a pattern, as it
// arrives from a built-in source (gitleaks's rule catalogue, adapted) or a
// user's `.vet.toml` [[patterns]] block.
type PatternSpec struct {
	ID             string
	Group          string // empty: inferred from ID's group token
	Name           string
	Description    string
	Severity       string
	Regex          string
	SecretGroup    int // 0 means "infer: 1 if the regex has exactly one group"
	Keywords       []string
	MinEntropy     *float64
	DefaultEnabled bool
	Verifier       string
	CaseSensitive  bool

	// Override, when true, lets a user spec replace a built-in of the same
	// ID instead of raising RegistryError::DuplicateId.
	Override bool
}
