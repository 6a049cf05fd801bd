package suppress

import (
	"github.com/spikermint/vet/internal/domain/entities"
)

// Source identifies which suppression mechanism dropped a finding, for the
// per-source telemetry counts the resolver records.
type Source string

const (
	SourceInline   Source = "inline_directive"
	SourceConfig   Source = "config_ignore"
	SourceBaseline Source = "baseline"
)

// Counts tallies suppressions per source for one resolve pass.
type Counts map[Source]int

// Resolver evaluates the union of inline directives, config ignores, and
// baseline entries against a deduped finding stream (§4.7). Findings are
// dropped silently; only aggregate counts are surfaced to the caller.
type Resolver struct {
	ConfigIgnores []ConfigIgnore
	Baseline      *Baseline
}

// Resolve filters findings, returning the survivors and suppression counts.
// directivesByFile supplies each finding's file's parsed inline directives
// (callers build this once per file during the scan, since directives are
// file-scoped); secretHashByFingerprint supplies the secret hash needed for
// the baseline triple match, keyed by fingerprint (the resolver never sees
// raw secret bytes itself).
func (r *Resolver) Resolve(
	findings []entities.Finding,
	directivesByFile map[string]Directives,
	secretHashByFingerprint map[string]string,
) ([]entities.Finding, Counts) {
	counts := make(Counts)
	var survivors []entities.Finding

	for _, f := range findings {
		if directives, ok := directivesByFile[f.Location.Path]; ok {
			if directives.Suppresses(f.Location.Line, f.PatternID.String()) {
				counts[SourceInline]++
				continue
			}
		}

		env := FindingEnv{
			Fingerprint: f.Fingerprint.String(),
			PatternID:   f.PatternID.String(),
			Severity:    f.Severity.String(),
			File:        f.Location.Path,
		}
		if MatchesAny(r.ConfigIgnores, env) {
			counts[SourceConfig]++
			continue
		}

		if r.Baseline != nil {
			secretHash := secretHashByFingerprint[f.Fingerprint.String()]
			if r.Baseline.Suppresses(f.Fingerprint.String(), f.PatternID.String(), f.Location.Path, secretHash) {
				counts[SourceBaseline]++
				continue
			}
		}

		survivors = append(survivors, f)
	}
	return survivors, counts
}
