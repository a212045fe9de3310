package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("shop101")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "shop101", claims.ShopID)
}

func TestValidateSessionTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateSessionToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateSessionTokenRejectsTampered(t *testing.T) {
	token, err := GenerateSessionToken("shop101")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateSessionToken(tampered)
	assert.Error(t, err)
}
