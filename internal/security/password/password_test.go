package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDefaultPolicy(t *testing.T) {
	ok, reasons := DefaultPolicy.Validate("MiPassword123!")
	assert.True(t, ok, reasons)

	cases := map[string]string{
		"Ab1!":                          "too_short",
		"mipassword123!":                "missing_upper",
		"MiPassword!!":                  "missing_digit",
		"MiPassword123":                 "missing_symbol",
		"A1!" + strings.Repeat("a", 62): "too_long",
	}
	for in, want := range cases {
		ok, reasons := DefaultPolicy.Validate(in)
		assert.False(t, ok, in)
		assert.Contains(t, reasons, want, in)
	}
}

func TestHashVerify(t *testing.T) {
	Cost = bcrypt.MinCost
	h, err := Hash("MiPassword123!")
	require.NoError(t, err)
	assert.True(t, Verify("MiPassword123!", h))
	assert.False(t, Verify("otra", h))
	assert.False(t, Verify("MiPassword123!", ""))

	_, err = Hash("")
	assert.Error(t, err)
}
