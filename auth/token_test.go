package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestVerifier_Accepts_Valid_Token(t *testing.T) {
	req := require.New(t)
	secret := uuid.NewString()
	userID := uuid.NewString()

	tokenString, err := GenerateToken(secret, userID, "alice", time.Hour)
	req.NoError(err)

	claims, err := NewVerifier(secret).Verify(tokenString)
	req.NoError(err)
	req.Equal(userID, claims.UserID)
	req.Equal("alice", claims.Username)
}

func TestVerifier_Rejects_Wrong_Secret(t *testing.T) {
	req := require.New(t)
	tokenString, err := GenerateToken("secret-a", uuid.NewString(), "alice", time.Hour)
	req.NoError(err)

	_, err = NewVerifier("secret-b").Verify(tokenString)
	req.Error(err)
}

func TestVerifier_Rejects_Expired_Token(t *testing.T) {
	req := require.New(t)
	secret := uuid.NewString()
	tokenString, err := GenerateToken(secret, uuid.NewString(), "alice", -time.Minute)
	req.NoError(err)

	_, err = NewVerifier(secret).Verify(tokenString)
	req.ErrorIs(err, jwt.ErrTokenExpired)
}

func TestVerifier_Rejects_Missing_UserID(t *testing.T) {
	req := require.New(t)
	secret := uuid.NewString()
	tokenString, err := GenerateToken(secret, "", "alice", time.Hour)
	req.NoError(err)

	_, err = NewVerifier(secret).Verify(tokenString)
	req.Error(err)
}

func TestVerifier_Rejects_Garbage(t *testing.T) {
	req := require.New(t)

	_, err := NewVerifier("secret").Verify("not-a-token")
	req.Error(err)
}
