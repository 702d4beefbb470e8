package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

func TestGenerateToken(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")
	defer viper.Set("JWT_SECRET", "")

	tokenString, err := GenerateToken(42, "a@b.com", "student")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		t.Fatal("token is not valid")
	}
	if claims["user_id"].(float64) != 42 {
		t.Fatalf("user_id = %v", claims["user_id"])
	}
	if claims["email"] != "a@b.com" || claims["role"] != "student" {
		t.Fatalf("unexpected claims: %v", claims)
	}

	exp := time.Unix(int64(claims["exp"].(float64)), 0)
	if until := time.Until(exp); until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("expiry %v is not ~24h out", until)
	}
}

func TestGenerateTokenWrongSecretRejected(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")
	defer viper.Set("JWT_SECRET", "")

	tokenString, err := GenerateToken(42, "a@b.com", "student")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	if err == nil {
		t.Fatal("token validated against the wrong secret")
	}
}
