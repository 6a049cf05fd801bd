package values

import (
	"fmt"
	"strings"
)

// PatternID is the stable `<group>/<service-token-type>` identifier of a
// Pattern. It is also the identifier used in suppression lists, so its
// string form must be preserved exactly across config, baseline and
// registry layers.
type PatternID struct {
	value string
}

// NewPatternID validates and constructs a PatternID. The id must contain
// exactly one "/" separating a group token from a service-token-type token,
// neither of which may be empty.
func NewPatternID(id string) (PatternID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return PatternID{}, fmt.Errorf("pattern id cannot be empty")
	}
	parts := strings.SplitN(id, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return PatternID{}, fmt.Errorf("pattern id %q must have the form <group>/<name>", id)
	}
	return PatternID{value: id}, nil
}

func MustPatternID(id string) PatternID {
	pid, err := NewPatternID(id)
	if err != nil {
		panic(err)
	}
	return pid
}

func (p PatternID) String() string { return p.value }

func (p PatternID) IsZero() bool { return p.value == "" }

func (p PatternID) Equal(other PatternID) bool { return p.value == other.value }

// Group returns the group token preceding the first "/".
func (p PatternID) Group() string {
	i := strings.IndexByte(p.value, '/')
	if i < 0 {
		return ""
	}
	return p.value[:i]
}

func (p PatternID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.value + `"`), nil
}

func (p *PatternID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	id, err := NewPatternID(s)
	if err != nil {
		return err
	}
	*p = id
	return nil
}
