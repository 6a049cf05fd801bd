package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/domain/values"
)

// Registry is the immutable, process-lifetime catalogue of every known
// pattern, built once at startup from built-in and user sources.
type Registry struct {
	byID    map[string]entities.Pattern
	ordered []entities.Pattern // stable: sorted by ID, for deterministic output
}

// Load merges built-in and user-defined pattern specs into a Registry.
// User specs override a built-in of the same ID only when Override is true;
// otherwise a collision is a fatal RegistryError (DuplicateIDError).
func Load(builtin, user []PatternSpec) (*Registry, error) {
	byID := make(map[string]entities.Pattern)

	for _, spec := range builtin {
		p, err := compile(spec)
		if err != nil {
			return nil, err
		}
		if _, exists := byID[p.ID.String()]; exists {
			return nil, &entities.RegistryError{PatternID: p.ID.String(), Reason: "duplicate id within built-in catalogue"}
		}
		byID[p.ID.String()] = p
	}

	for _, spec := range user {
		p, err := compile(spec)
		if err != nil {
			return nil, err
		}
		existing, exists := byID[p.ID.String()]
		if exists && !spec.Override {
			return nil, &entities.DuplicateIDError{PatternID: p.ID.String()}
		}
		if exists && spec.Override {
			_ = existing // explicit override: replace silently
		}
		byID[p.ID.String()] = p
	}

	ordered := make([]entities.Pattern, 0, len(byID))
	for _, p := range byID {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID.String() < ordered[j].ID.String() })

	return &Registry{byID: byID, ordered: ordered}, nil
}

// LoadDefault builds a Registry from the gitleaks-derived built-in catalogue
// and the given user specs; this is the entry point ordinary callers use.
func LoadDefault(user []PatternSpec) (*Registry, error) {
	return Load(builtinSpecs(), user)
}

// Get returns a pattern by id.
func (r *Registry) Get(id string) (entities.Pattern, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns every registered pattern, ID-sorted.
func (r *Registry) All() []entities.Pattern {
	return r.ordered
}

// EnabledOptions selects the subset of the registry a scan should run with.
type EnabledOptions struct {
	SeverityFloor values.Severity
	DisabledIDs   map[string]bool
	EnabledIDs    map[string]bool
}

// Enabled filters and compiles the Matcher a scan actually uses.
// Precedence (highest first): explicit enable, explicit disable, severity
// floor, default_enabled.
func (r *Registry) Enabled(opts EnabledOptions) *Matcher {
	var selected []entities.Pattern
	for _, p := range r.ordered {
		id := p.ID.String()

		if opts.EnabledIDs[id] {
			selected = append(selected, p)
			continue
		}
		if opts.DisabledIDs[id] {
			continue
		}
		if !opts.SeverityFloor.IsZero() && !p.Severity.AtLeast(opts.SeverityFloor) {
			continue
		}
		if p.DefaultEnabled {
			selected = append(selected, p)
		}
	}

	matcher, err := compileMatcher(selected)
	if err != nil {
		// compileMatcher only fails on automaton construction; with
		// already-validated patterns this is unreachable, but degrade to
		// an empty matcher rather than panicking on adversarial input.
		return &Matcher{}
	}
	return matcher
}

// compile turns a declarative PatternSpec into a validated entities.Pattern,
// enforcing the registry-load invariants from the data model (§3): a
// compiled regex, a non-empty keyword set, and, as a prefilter-soundness
// check, at least one keyword appearing verbatim in the regex source, so a
// pattern whose regex could fire on text containing none of its keywords is
// rejected before it ever reaches a worker.
func compile(spec PatternSpec) (entities.Pattern, error) {
	id, err := values.NewPatternID(spec.ID)
	if err != nil {
		return entities.Pattern{}, &entities.RegistryError{PatternID: spec.ID, Reason: err.Error()}
	}

	group := spec.Group
	if group == "" {
		group = id.Group()
	}
	g, err := values.NewGroup(group)
	if err != nil {
		return entities.Pattern{}, &entities.RegistryError{PatternID: spec.ID, Reason: err.Error()}
	}

	sev, err := values.NewSeverity(spec.Severity)
	if err != nil {
		return entities.Pattern{}, &entities.RegistryError{PatternID: spec.ID, Reason: err.Error()}
	}

	if len(spec.Keywords) == 0 {
		return entities.Pattern{}, &entities.RegistryError{PatternID: spec.ID, Reason: "keywords must be non-empty"}
	}
	if err := checkKeywordSoundness(spec.Regex, spec.Keywords); err != nil {
		return entities.Pattern{}, &entities.RegistryError{PatternID: spec.ID, Reason: err.Error()}
	}

	re, err := compileRegexLinear(spec.Regex, spec.CaseSensitive)
	if err != nil {
		return entities.Pattern{}, &entities.RegistryError{PatternID: spec.ID, Reason: fmt.Sprintf("regex compile: %v", err)}
	}

	secretGroup := spec.SecretGroup
	if secretGroup == 0 {
		secretGroup = 1
	}

	p := entities.Pattern{
		ID:             id,
		Group:          g,
		Name:           spec.Name,
		Description:    spec.Description,
		Severity:       sev,
		Regex:          re,
		SecretGroup:    secretGroup,
		Keywords:       spec.Keywords,
		MinEntropy:     spec.MinEntropy,
		DefaultEnabled: spec.DefaultEnabled,
		Verifier:       entities.VerifierHandle(spec.Verifier),
		CaseSensitive:  spec.CaseSensitive,
	}
	if err := p.Validate(); err != nil {
		return entities.Pattern{}, &entities.RegistryError{PatternID: spec.ID, Reason: err.Error()}
	}
	return p, nil
}

// checkKeywordSoundness rejects patterns whose regex source could not
// possibly require any of the declared keywords: it demands at least one
// keyword appear verbatim (case-insensitively) in the regex source text,
// the structural proxy this module uses for the "every true positive
// contains a keyword" invariant (§3) at load time, before any file is ever
// scanned.
func checkKeywordSoundness(regexSource string, keywords []string) error {
	lowerSource := strings.ToLower(regexSource)
	for _, kw := range keywords {
		if kw == "" {
			return fmt.Errorf("keywords must not contain the empty string")
		}
		if strings.Contains(lowerSource, strings.ToLower(kw)) {
			return nil
		}
	}
	return fmt.Errorf("regex does not contain any declared keyword verbatim; prefilter could drop true positives")
}
