package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testPrincipal = "00000000-0000-0000-0000-000000000001"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer(Config{
		Secret:     testSecret,
		Issuer:     "bizos-test",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return iss
}

func TestIssue_RoundTripStaff(t *testing.T) {
	iss := newTestIssuer(t)
	pair, err := iss.Issue(testPrincipal, KindStaff)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	ref, err := iss.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testPrincipal, ref.ID)
	assert.Equal(t, KindStaff, ref.Kind)
	assert.NotEmpty(t, ref.TokenID)
}

func TestIssue_RoundTripClient(t *testing.T) {
	iss := newTestIssuer(t)
	pair, err := iss.Issue(testPrincipal, KindClient)
	require.NoError(t, err)

	ref, err := iss.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, KindClient, ref.Kind)
}

func TestParse_TipoCruzadoRechazado(t *testing.T) {
	iss := newTestIssuer(t)
	pair, err := iss.Issue(testPrincipal, KindStaff)
	require.NoError(t, err)

	_, err = iss.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "un refresh token no sirve como access token")

	_, err = iss.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expirado(t *testing.T) {
	iss := newTestIssuer(t)
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }
	pair, err := iss.Issue(testPrincipal, KindStaff)
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	iss := newTestIssuer(t)
	pair, err := iss.Issue(testPrincipal, KindStaff)
	require.NoError(t, err)

	other, err := NewIssuer(Config{Secret: "otro", Issuer: "bizos-test", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	require.NoError(t, err)
	_, err = other.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformado(t *testing.T) {
	iss := newTestIssuer(t)
	_, err := iss.ParseAccess("token.invalido.aqui")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Un token firmado con la clave correcta pero con kind=client e is_client=false
// no debe aceptarse: ambos claims deben coincidir.
func TestParse_KindInconsistente(t *testing.T) {
	iss := newTestIssuer(t)
	now := time.Now()
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        "x",
			Issuer:    "bizos-test",
			Subject:   testPrincipal,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Minute)),
		},
		PrincipalID: testPrincipal,
		Kind:        KindClient,
		IsClient:    false,
		TokenType:   TypeAccess,
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = iss.ParseAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuer_Validaciones(t *testing.T) {
	_, err := NewIssuer(Config{Secret: "", AccessTTL: time.Minute, RefreshTTL: time.Minute})
	assert.Error(t, err)
	_, err = NewIssuer(Config{Secret: "x", AccessTTL: 0, RefreshTTL: time.Minute})
	assert.Error(t, err)
}

func TestIssue_KindDesconocido(t *testing.T) {
	iss := newTestIssuer(t)
	_, err := iss.Issue(testPrincipal, "admin")
	assert.Error(t, err)
}
