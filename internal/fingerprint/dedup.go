package fingerprint

import (
	"sort"
	"sync"

	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/matcher"
)

// ResolveCrossPattern implements the cross-pattern half of §4.6: when two
// different patterns match the exact same byte range with the exact same
// secret capture within one file, only the higher-severity pattern's
// candidate survives (tie-break: lexicographic pattern id).
func ResolveCrossPattern(candidates []matcher.Candidate) []matcher.Candidate {
	type key struct {
		start, end int
		secret     string
	}

	winners := make(map[key]matcher.Candidate)
	var order []key

	for _, c := range candidates {
		k := key{start: c.MatchStart, end: c.MatchEnd, secret: string(c.Secret)}
		winner, ok := winners[k]
		if !ok {
			winners[k] = c
			order = append(order, k)
			continue
		}
		if beats(c, winner) {
			winners[k] = c
		}
	}

	out := make([]matcher.Candidate, 0, len(order))
	for _, k := range order {
		out = append(out, winners[k])
	}
	return out
}

func beats(candidate, incumbent matcher.Candidate) bool {
	if !candidate.Pattern.Severity.Equal(incumbent.Pattern.Severity) {
		return candidate.Pattern.Severity.Higher(incumbent.Pattern.Severity)
	}
	return candidate.Pattern.ID.String() < incumbent.Pattern.ID.String()
}

// Deduper collapses candidates sharing an identical fingerprint into one
// Finding, across every file a scan visits, merging their locations in
// ascending-byte-offset order. Safe for concurrent use by scan workers.
type Deduper struct {
	mu  sync.Mutex
	byFP map[string]*entities.Finding
}

// NewDeduper returns an empty Deduper.
func NewDeduper() *Deduper {
	return &Deduper{byFP: make(map[string]*entities.Finding)}
}

// Add folds one finding into the accumulator. If its fingerprint has been
// seen before, the new location is merged into the existing finding instead
// of creating a duplicate.
func (d *Deduper) Add(f entities.Finding) {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := f.Fingerprint.String()
	existing, ok := d.byFP[key]
	if !ok {
		d.byFP[key] = &f
		return
	}

	existing.Locations = mergeLocations(existing.Locations, f.Locations)
	existing.Location = existing.Locations[0]
}

func mergeLocations(a, b []entities.Location) []entities.Location {
	seen := make(map[entities.Location]bool, len(a)+len(b))
	out := make([]entities.Location, 0, len(a)+len(b))
	for _, loc := range append(append([]entities.Location(nil), a...), b...) {
		if seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ByteOffset < out[j].ByteOffset })
	return out
}

// Findings returns every distinct finding, ordered by fingerprint for
// deterministic output across runs.
func (d *Deduper) Findings() []entities.Finding {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]entities.Finding, 0, len(d.byFP))
	for _, f := range d.byFP {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Fingerprint.String() < out[j].Fingerprint.String()
	})
	return out
}
