package http_test

import (
	"testing"
	"time"

	httpin "courierbot/internal/adapters/in/http"
	"courierbot/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	principal := httpin.Principal{
		ActorID: kernel.MustNewActorID("42"),
		Name:    "Alice",
		Role:    httpin.RoleDriver,
	}

	tok, err := httpin.IssueToken(principal, secret, time.Hour)
	require.NoError(t, err)

	got, err := httpin.ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, principal, got)

	_, err = httpin.ParseToken(tok, "wrong")
	require.Error(t, err)

	_, err = httpin.ParseToken(tok, "")
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := httpin.IssueToken(httpin.Principal{
		ActorID: kernel.MustNewActorID("42"),
		Role:    httpin.RoleDriver,
	}, secret, -time.Minute)
	require.NoError(t, err)

	_, err = httpin.ParseToken(tok, secret)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_InvalidClaims(t *testing.T) {
	sign := func(c jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
		require.NoError(t, err)
		return tok
	}

	_, err := httpin.ParseToken(sign(jwt.MapClaims{"role": "driver"}), secret)
	require.ErrorIs(t, err, httpin.ErrInvalidClaims)

	_, err = httpin.ParseToken(sign(jwt.MapClaims{"sub": "42", "role": "drone"}), secret)
	require.ErrorIs(t, err, httpin.ErrInvalidClaims)

	got, err := httpin.ParseToken(sign(jwt.MapClaims{"sub": "admin1", "role": "OPERATOR"}), secret)
	require.NoError(t, err)
	assert.Equal(t, httpin.RoleOperator, got.Role)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "42", "role": "driver"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = httpin.ParseToken(tok, secret)
	require.Error(t, err)
}
