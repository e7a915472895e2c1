package util

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "ada@example.com", Role: model.Instructor}
	user.ID = 42

	token, err := GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 || claims.Role != model.Instructor || claims.Email != "ada@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestParseJWT_WrongSecretRejected(t *testing.T) {
	user := &model.User{Email: "ada@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(token, "some-other-secret"); err == nil {
		t.Error("expected parse to fail with the wrong secret")
	}
}

func TestParseJWT_OnlyHS256Accepted(t *testing.T) {
	claims := &Claims{
		UserID: 1,
		Role:   model.Student,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	// Same key family, different algorithm. Must be rejected outright.
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(signed, testSecret); err == nil {
		t.Error("expected an HS384 token to be rejected")
	}
}

func TestParseJWT_ExpiredRejected(t *testing.T) {
	user := &model.User{Email: "ada@example.com", Role: model.Student}
	user.ID = 1

	token, err := GenerateJWT(user, testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}
