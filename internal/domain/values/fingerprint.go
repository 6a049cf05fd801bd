package values

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

const fingerprintSeparator = 0x1F

// Fingerprint is the deterministic identity of a finding: a SHA-256 digest
// over (pattern id, normalized path, sha256(secret)), prefixed "sha256:".
// It never embeds the secret itself.
type Fingerprint struct {
	value string
}

// NewFingerprint computes the fingerprint for (patternID, normalizedPath, secret).
// secret is hashed before being folded into the outer digest so the
// fingerprint never carries recoverable secret material.
func NewFingerprint(patternID PatternID, normalizedPath string, secret []byte) Fingerprint {
	secretSum := sha256.Sum256(secret)

	h := sha256.New()
	h.Write([]byte(patternID.String()))
	h.Write([]byte{fingerprintSeparator})
	h.Write([]byte(normalizedPath))
	h.Write([]byte{fingerprintSeparator})
	h.Write(secretSum[:])

	return Fingerprint{value: "sha256:" + hex.EncodeToString(h.Sum(nil))}
}

// ParseFingerprint validates a fingerprint string read back from a baseline
// or config ignore file.
func ParseFingerprint(s string) (Fingerprint, error) {
	const prefix = "sha256:"
	if !strings.HasPrefix(s, prefix) {
		return Fingerprint{}, fmt.Errorf("fingerprint %q missing %q prefix", s, prefix)
	}
	hexPart := s[len(prefix):]
	if len(hexPart) != 64 {
		return Fingerprint{}, fmt.Errorf("fingerprint %q must have 64 hex characters, got %d", s, len(hexPart))
	}
	for _, c := range hexPart {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return Fingerprint{}, fmt.Errorf("fingerprint %q must be lowercase hex", s)
		}
	}
	return Fingerprint{value: s}, nil
}

// MustFingerprint parses s or panics; for tests and static ignore/baseline
// fixtures where the value is known good at compile time.
func MustFingerprint(s string) Fingerprint {
	f, err := ParseFingerprint(s)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Fingerprint) String() string { return f.value }

func (f Fingerprint) Equal(other Fingerprint) bool { return f.value == other.value }

func (f Fingerprint) IsZero() bool { return f.value == "" }

func (f Fingerprint) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.value + `"`), nil
}

func (f *Fingerprint) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	fp, err := ParseFingerprint(s)
	if err != nil {
		return err
	}
	*f = fp
	return nil
}

// NormalizePath converts a platform-native path to the "/"-separated,
// scan-root-relative (or absolute, when no root is set) form used in
// fingerprint computation. normPath assumes p is already an absolute or
// root-joined path; callers are responsible for making it relative to the
// scan root first.
func NormalizePath(p string) string {
	return path.Clean(filepathToSlash(p))
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
