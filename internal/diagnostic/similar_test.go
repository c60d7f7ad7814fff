package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestNames(t *testing.T) {
	cases := map[string][]Candidate{
		"usrname": {{"username", 3}, {"console", 1}, {"password", 5}},
	}
	for target, candidates := range cases {
		t.Run(target, func(t *testing.T) {
			got := NearestNames(target, candidates)
			if !assert.NotEmpty(t, got) {
				return
			}
			assert.Equal(t, "username", got[0].Name)
			assert.Equal(t, 3, got[0].Line)
		})
	}
}

func TestNearestNamesCap(t *testing.T) {
	candidates := []Candidate{
		{"aaaaa", 1}, {"aaaab", 2}, {"aaaac", 3}, {"aaaad", 4},
	}
	got := NearestNames("aaaaz", candidates)
	assert.LessOrEqual(t, len(got), 3)
}

func TestTranslateHostError(t *testing.T) {
	d := TranslateHostError("Cannot read properties of undefined (reading 'foo')", "main.ntl", 3, 1)
	assert.Equal(t, CodeNullAccess, d.Code)

	d = TranslateHostError("bar is not a function", "main.ntl", 4, 1)
	assert.Equal(t, CodeNotFunction, d.Code)

	d = TranslateHostError("qux is not defined", "main.ntl", 5, 1)
	assert.Equal(t, CodeUndefVar, d.Code)
}
