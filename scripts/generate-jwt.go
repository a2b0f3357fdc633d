package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Mints a short-lived bearer token for exercising the protected routes
// locally.
func main() {
	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: AUTH_JWT_SECRET environment variable must be set")
		fmt.Fprintln(os.Stderr, "Usage: AUTH_JWT_SECRET=secret [AUTH_ISSUER=...] [USER_ID=...] go run scripts/generate-jwt.go")
		os.Exit(1)
	}

	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = "test-user-id"
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	if iss := os.Getenv("AUTH_ISSUER"); iss != "" {
		claims["iss"] = iss
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(tokenString)
}
