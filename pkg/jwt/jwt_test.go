package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	tok, err := Generate("secreto", "u1", "ana@fijosdn.co", "empleado", "fijosdn", 60)
	require.NoError(t, err)

	userID, email, role, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "ana@fijosdn.co", email)
	assert.Equal(t, "empleado", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("secreto", "u1", "ana@fijosdn.co", "empleado", "fijosdn", 60)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u1", "ana@fijosdn.co", "empleado", "fijosdn", 60)
	assert.Error(t, err)
}
