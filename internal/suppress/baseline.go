package suppress

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// currentBaselineVersion is the only baseline schema version this resolver
// understands. Unknown versions fail at load time rather than silently
// matching nothing.
const currentBaselineVersion = 1

const baselineSchemaJSON = `{
  "type": "object",
  "required": ["version", "entries"],
  "properties": {
    "version": {"type": "integer"},
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["fingerprint", "pattern_id", "file"],
        "properties": {
          "fingerprint":  {"type": "string"},
          "pattern_id":   {"type": "string"},
          "file":         {"type": "string"},
          "secret_hash":  {"type": "string"},
          "reason":       {"type": "string"}
        }
      }
    }
  }
}`

// BaselineEntry is one accepted/suppressed finding recorded in a baseline
// file. SecretHash is the hex sha256 of the raw secret bytes, recorded
// alongside the fingerprint so that (pattern_id, file, secret_hash) still
// matches after an unrelated byte-offset shift, per the data model's
// "re-scans after identical secret moves still re-surface" note: secret
// content unchanged, position moved, baseline entry still suppresses it.
type BaselineEntry struct {
	Fingerprint string `json:"fingerprint"`
	PatternID   string `json:"pattern_id"`
	File        string `json:"file"`
	SecretHash  string `json:"secret_hash,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// BaselineFile is the top-level `.vet-baseline.json` document shape.
type BaselineFile struct {
	Version int             `json:"version"`
	Entries []BaselineEntry `json:"entries"`
}

var baselineSchema = mustCompileSchema("baseline.json", baselineSchemaJSON)

func mustCompileSchema(name, schemaJSON string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, toJSONValue(schemaJSON)); err != nil {
		panic(fmt.Sprintf("suppress: invalid embedded schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("suppress: embedded schema %s failed to compile: %v", name, err))
	}
	return schema
}

func toJSONValue(schemaJSON string) any {
	var v any
	if err := json.Unmarshal([]byte(schemaJSON), &v); err != nil {
		panic(fmt.Sprintf("suppress: embedded schema is not valid JSON: %v", err))
	}
	return v
}

// LoadBaseline validates and parses a baseline document. A schema
// violation or an unrecognized version is a fatal load error, not a
// per-finding diagnostic: a corrupt baseline must never silently behave
// like an empty one.
func LoadBaseline(data []byte) (*BaselineFile, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("suppress: baseline is not valid JSON: %w", err)
	}
	if err := baselineSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("suppress: baseline failed schema validation: %w", err)
	}

	var bf BaselineFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("suppress: baseline decode: %w", err)
	}
	if bf.Version != currentBaselineVersion {
		return nil, fmt.Errorf("suppress: unsupported baseline version %d (expected %d)", bf.Version, currentBaselineVersion)
	}
	return &bf, nil
}

// SecretHash computes the hex sha256 baseline entries key on for the
// (pattern_id, file, secret_hash) triple match.
func SecretHash(secret []byte) string {
	sum := sha256.Sum256(secret)
	return hex.EncodeToString(sum[:])
}

// Baseline indexes a BaselineFile for fast per-finding lookups.
type Baseline struct {
	byFingerprint map[string]bool
	byTriple      map[string]bool
}

// IndexBaseline builds a Baseline lookup index. A nil BaselineFile yields a
// Baseline that never suppresses anything.
func IndexBaseline(bf *BaselineFile) *Baseline {
	b := &Baseline{byFingerprint: make(map[string]bool), byTriple: make(map[string]bool)}
	if bf == nil {
		return b
	}
	for _, e := range bf.Entries {
		b.byFingerprint[e.Fingerprint] = true
		if e.SecretHash != "" {
			b.byTriple[tripleKey(e.PatternID, e.File, e.SecretHash)] = true
		}
	}
	return b
}

// Suppresses reports whether the baseline covers a finding, by fingerprint
// or by the (pattern_id, file, secret_hash) triple.
func (b *Baseline) Suppresses(fingerprint, patternID, file, secretHash string) bool {
	if b.byFingerprint[fingerprint] {
		return true
	}
	return b.byTriple[tripleKey(patternID, file, secretHash)]
}

func tripleKey(patternID, file, secretHash string) string {
	return patternID + "\x1f" + file + "\x1f" + secretHash
}
