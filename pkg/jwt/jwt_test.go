package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	issuer, err := NewIssuer("secreto-de-prueba", "almacen-api", 60)
	require.NoError(t, err)

	token, err := issuer.Generate("user-1", "bodeguero")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "bodeguero", role)
}

func TestParseRechazaFirmaAjena(t *testing.T) {
	a, err := NewIssuer("secreto-a", "almacen-api", 60)
	require.NoError(t, err)
	b, err := NewIssuer("secreto-b", "almacen-api", 60)
	require.NoError(t, err)

	token, err := a.Generate("user-1", "admin")
	require.NoError(t, err)

	_, _, err = b.Parse(token)
	assert.Error(t, err)
}

func TestParseRechazaTokenExpirado(t *testing.T) {
	issuer, err := NewIssuer("secreto-de-prueba", "almacen-api", -1)
	require.NoError(t, err)

	token, err := issuer.Generate("user-1", "admin")
	require.NoError(t, err)

	_, _, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestNewIssuerSinSecreto(t *testing.T) {
	_, err := NewIssuer("", "almacen-api", 60)
	assert.Error(t, err)
}
