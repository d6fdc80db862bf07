package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/almacen-api/pkg/session"
)

const testSecret = "secret-de-prueba-para-sesiones"

func TestNewYParse_RoundTrip(t *testing.T) {
	token, expires, err := session.New(testSecret, "admin", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	username, err := session.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	token, _, err := session.New(testSecret, "admin", -time.Minute)
	require.NoError(t, err)

	_, err = session.Parse(testSecret, token)
	assert.Error(t, err, "un token vencido equivale a sesión inexistente")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	token, _, err := session.New(testSecret, "admin", time.Hour)
	require.NoError(t, err)

	_, err = session.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenMalformado_RetornaError(t *testing.T) {
	_, err := session.Parse(testSecret, "no.es.un.jwt")
	assert.Error(t, err)
}

func TestNew_SecretVacio_RetornaError(t *testing.T) {
	_, _, err := session.New("", "admin", time.Hour)
	assert.Error(t, err)
}
