package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewFingerprint_Deterministic(t *testing.T) {
	id := MustPatternID("payments/stripe-live-key")
	a := NewFingerprint(id, "a/config.py", []byte("sk_live_51NzKDwH3JxMvRtYbUcE8q"))
	b := NewFingerprint(id, "a/config.py", []byte("sk_live_51NzKDwH3JxMvRtYbUcE8q"))
	assert.True(t, a.Equal(b))
	assert.Regexp(t, `^sha256:[0-9a-f]{64}$`, a.String())
}

func Test_NewFingerprint_PathDependent(t *testing.T) {
	id := MustPatternID("payments/stripe-live-key")
	secret := []byte("sk_live_51NzKDwH3JxMvRtYbUcE8q")
	a := NewFingerprint(id, "a/config.py", secret)
	b := NewFingerprint(id, "b/config.py", secret)
	assert.False(t, a.Equal(b))
}

func Test_NewFingerprint_PatternDependent(t *testing.T) {
	secret := []byte("sk_live_51NzKDwH3JxMvRtYbUcE8q")
	a := NewFingerprint(MustPatternID("payments/stripe-live-key"), "a.py", secret)
	b := NewFingerprint(MustPatternID("payments/stripe-test-key"), "a.py", secret)
	assert.False(t, a.Equal(b))
}

func Test_ParseFingerprint(t *testing.T) {
	id := MustPatternID("payments/stripe-live-key")
	fp := NewFingerprint(id, "a.py", []byte("secret"))

	parsed, err := ParseFingerprint(fp.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(fp))

	_, err = ParseFingerprint("not-a-fingerprint")
	assert.Error(t, err)

	_, err = ParseFingerprint("sha256:deadbeef")
	assert.Error(t, err)

	_, err = ParseFingerprint("sha256:" + "ZZ" + fp.String()[9:])
	assert.Error(t, err)
}
