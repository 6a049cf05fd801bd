package astscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LooksLikeSecretIdentifier(t *testing.T) {
	cases := map[string]bool{
		"apiKey":       true,
		"api_key":      true,
		"API_KEY":      true,
		"password":     true,
		"db_password":  true,
		"accessToken":  true,
		"secret":       true,
		"username":     false,
		"count":        false,
		"id":           false,
	}
	for name, want := range cases {
		assert.Equal(t, want, looksLikeSecretIdentifier(name), name)
	}
}

func Test_Unquote_StripsMatchingDelimiters(t *testing.T) {
	assert.Equal(t, []byte("hello"), unquote([]byte(`"hello"`)))
	assert.Equal(t, []byte("hello"), unquote([]byte(`'hello'`)))
	assert.Equal(t, []byte("hello"), unquote([]byte("`hello`")))
}

func Test_Unquote_LeavesUnquotedUntouched(t *testing.T) {
	assert.Equal(t, []byte("hello"), unquote([]byte("hello")))
}

func Test_PatternID_ScopedPerLanguage(t *testing.T) {
	assert.Equal(t, "generic/go-identifier", PatternID("go"))
	assert.Equal(t, "generic/python-identifier", PatternID("python"))
}

func Test_Scan_UnknownLanguageDowngradesGracefully(t *testing.T) {
	candidates, err := Scan(nil, "cobol", []byte("IDENTIFICATION DIVISION."), "x.cbl")
	assert.NoError(t, err)
	assert.Nil(t, candidates)
}
