package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/spikermint/vet/internal/domain/values"
)

// Location pinpoints a finding within a file.
type Location struct {
	Path       string // normalized, "/"-separated
	ByteOffset int    // offset of the secret capture
	Line       int    // 1-based line of the secret capture
	Column     int    // 0-based column of the secret capture
	MatchStart int    // whole-match byte start, for editor highlight
	MatchEnd   int    // whole-match byte end, exclusive
}

// VerificationStatus is the terminal (or in-flight) state of a verification
// attempt. See the verifier dispatch state machine in the design notes.
type VerificationStatus string

const (
	VerificationUnverified   VerificationStatus = "unverified"
	VerificationVerifying    VerificationStatus = "verifying"
	VerificationLive         VerificationStatus = "live"
	VerificationInactive     VerificationStatus = "inactive"
	VerificationInconclusive VerificationStatus = "inconclusive"
)

// Verification carries the outcome of an optional liveness probe.
type Verification struct {
	Status     VerificationStatus
	Provider   string
	Details    string
	Reason     string // set when Status is Inconclusive
	VerifiedAt time.Time
}

// Finding is an accepted, fingerprinted, un-suppressed candidate.
type Finding struct {
	FindingID      uuid.UUID // editor-protocol correlation id, not part of identity
	Fingerprint    values.Fingerprint
	PatternID      values.PatternID
	Severity       values.Severity
	ProviderGroup  values.Group
	Location       Location
	SecretPreview  string
	Verifiable     bool
	VerifierHandle VerifierHandle // empty when Verifiable is false
	Verification   *Verification

	// Locations accumulates every occurrence collapsed into this finding by
	// dedup (§4.6), ordered by byte offset. Location always equals
	// Locations[0].
	Locations []Location
}

// SecretPreview builds the "first two / last two characters" preview
// mandated by the non-leakage invariant (spec §3, §8.7). Secrets of length
// 4 or fewer are fully elided, since a partial preview would be the whole
// secret.
func SecretPreview(secret []byte) string {
	const elision = "…"
	n := len(secret)
	if n <= 4 {
		return elision
	}
	return string(secret[:2]) + elision + string(secret[n-2:])
}
