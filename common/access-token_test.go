package common

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := generateAccessToken(42, RoleAdminUser, time.Now(), time.Hour, "secret")
	require.NoError(t, err)

	claims, err := parseAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserId)
	assert.Equal(t, RoleAdminUser, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestAccessTokenRejectsTampering(t *testing.T) {
	token, err := generateAccessToken(7, RoleCommonUser, time.Now(), time.Hour, "secret")
	require.NoError(t, err)

	_, err = parseAccessToken(token, "another-secret")
	assert.Error(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	forged, err := generateAccessToken(1, RoleRootUser, time.Now(), time.Hour, "attacker")
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")
	_, err = parseAccessToken(parts[0]+"."+forgedParts[1]+"."+parts[2], "secret")
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := generateAccessToken(7, RoleCommonUser, time.Now().Add(-2*time.Hour), time.Hour, "secret")
	require.NoError(t, err)

	_, err = parseAccessToken(token, "secret")
	assert.Error(t, err)
}
