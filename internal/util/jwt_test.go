package util

import (
	"errors"
	"testing"
	"time"

	"stackit_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func testUser() *model.User {
	u := &model.User{Username: "alice"}
	u.ID = 7
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), TokenTypeAccess, testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := ParseJWT(token, TokenTypeAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestParseJWT_WrongType(t *testing.T) {
	refresh, err := GenerateJWT(testUser(), TokenTypeRefresh, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(refresh, TokenTypeAccess, testSecret)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestParseJWT_Rejects(t *testing.T) {
	expired, err := GenerateJWT(testUser(), TokenTypeAccess, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, TokenTypeAccess, testSecret)
	assert.Error(t, err)

	valid, err := GenerateJWT(testUser(), TokenTypeAccess, testSecret, time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(valid, TokenTypeAccess, "other-secret")
	assert.Error(t, err)

	_, err = ParseJWT("not-a-token", TokenTypeAccess, testSecret)
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, s := range []string{"", "0", "-1", "abc"} {
		_, err := ParseID(s)
		assert.ErrorIs(t, err, ErrNotFound, s)
	}
}
