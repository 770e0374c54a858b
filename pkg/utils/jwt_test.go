package utils

import (
	"testing"

	"github.com/driveline/rental-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{
		Model: gorm.Model{ID: 42},
		Email: "staff@example.com",
		Role:  string(models.RoleEmployee),
	}

	tokenString, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected token to be valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if uint(claims["id"].(float64)) != 42 {
		t.Errorf("id claim = %v, want 42", claims["id"])
	}
	if claims["role"].(string) != "employee" {
		t.Errorf("role claim = %v, want employee", claims["role"])
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	user := &models.User{Model: gorm.Model{ID: 1}, Role: "admin"}

	tokenString, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	token, err := ValidateToken(tokenString)
	if err == nil && token.Valid {
		t.Fatal("expected validation to fail with a different secret")
	}
}
