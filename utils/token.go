package utils

import (
	"crypto/rand"
	"encoding/hex"
	"log"
)

// GenerateStateToken returns a random hex token used as the OAuth state
// parameter on the login URL.
func GenerateStateToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		log.Printf("Failed to generate state token: %v", err)
		return ""
	}
	return hex.EncodeToString(b)
}
