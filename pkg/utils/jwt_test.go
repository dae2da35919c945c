package utils

import (
	"testing"

	"github.com/farebid/farebid-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := models.User{
		Model:    gorm.Model{ID: 42},
		Email:    "bob@example.com",
		UserType: models.UserTypeDriver,
	}

	tokenString, err := GenerateToken(&user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := ValidateToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["id"])
	assert.Equal(t, "bob@example.com", claims["email"])
	assert.Equal(t, "driver", claims["userType"])
}

func TestValidateTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := models.User{Model: gorm.Model{ID: 1}, UserType: models.UserTypeTraveler}
	tokenString, err := GenerateToken(&user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")

	_, err = ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}
