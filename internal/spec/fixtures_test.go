package spec_test

import (
	"testing"

	"github.com/ntl-lang/ntlc/driver"
	"github.com/ntl-lang/ntlc/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtures(t *testing.T) {
	fixtures, err := spec.LoadFixtures("fixtures")
	require.NoError(t, err)
	require.NotEmpty(t, fixtures)

	for _, fx := range fixtures {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			result := driver.CompileSource(fx.Name+".ntl", string(fx.InputNTL), driver.Options{})
			if fx.IsError {
				assert.False(t, result.Success)
				return
			}
			require.True(t, result.Success)
			if len(fx.OutputJS) > 0 {
				assert.Equal(t, string(fx.OutputJS), result.Code)
			}
		})
	}
}
