package utils_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/viamundo/travel-sales-api/internal/utils"
)

func TestAccessTokenClaims(t *testing.T) {
	at, err := utils.NewAccessToken("secret", 42, "AGENT", 15)
	assert.NoError(t, err)
	assert.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	if assert.True(t, ok) {
		assert.Equal(t, float64(42), claims["sub"])
		assert.Equal(t, "AGENT", claims["role"])
	}
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	rt, err := utils.NewRefreshToken(30)
	assert.NoError(t, err)
	assert.NotEmpty(t, rt.Raw)

	h1 := utils.HashRefreshRaw(rt.Raw)
	h2 := utils.HashRefreshRaw(rt.Raw)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, rt.Raw, h1, "stored value must not be the raw token")

	other, err := utils.NewRefreshToken(30)
	assert.NoError(t, err)
	assert.NotEqual(t, utils.HashRefreshRaw(other.Raw), h1)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("hunter2", 4)
	assert.NoError(t, err)
	assert.True(t, utils.VerifyPassword(hash, "hunter2"))
	assert.False(t, utils.VerifyPassword(hash, "hunter3"))
}
