package fingerprint

import (
	"github.com/google/uuid"
	"github.com/spikermint/vet/internal/domain/entities"
	"github.com/spikermint/vet/internal/domain/values"
	"github.com/spikermint/vet/internal/matcher"
)

// Build turns one matcher.Candidate into a fingerprinted entities.Finding.
// absPath is the file's absolute path; scanRoot, when non-empty, makes the
// fingerprinted path scan-root-relative per §4.6.
func Build(candidate matcher.Candidate, absPath, scanRoot string) entities.Finding {
	normalized := NormalizePath(scanRoot, absPath)
	fp := values.NewFingerprint(candidate.Pattern.ID, normalized, candidate.Secret)

	loc := entities.Location{
		Path:       normalized,
		ByteOffset: candidate.ByteOffset,
		Line:       candidate.Line,
		Column:     candidate.Column,
		MatchStart: candidate.MatchStart,
		MatchEnd:   candidate.MatchEnd,
	}

	return entities.Finding{
		FindingID:      uuid.New(),
		Fingerprint:    fp,
		PatternID:      candidate.Pattern.ID,
		Severity:       candidate.Pattern.Severity,
		ProviderGroup:  candidate.Pattern.Group,
		Location:       loc,
		SecretPreview:  entities.SecretPreview(candidate.Secret),
		Verifiable:     candidate.Pattern.Verifier != "",
		VerifierHandle: candidate.Pattern.Verifier,
		Locations:      []entities.Location{loc},
	}
}
