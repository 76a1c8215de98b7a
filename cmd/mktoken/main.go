// Package main mints development bearer tokens for the arcanus API.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/arcanus/arcanus/internal/auth"
)

func main() {
	secret := flag.String("secret", "dev-secret-change-me", "signing secret (must match AUTH_SECRET)")
	userID := flag.String("user", "usr_dev", "user id to embed as the token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	token, err := auth.MintToken([]byte(*secret), *userID, *ttl)
	if err != nil {
		log.Fatalf("Failed to mint token: %v", err)
	}
	fmt.Println(token)
}
