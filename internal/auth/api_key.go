package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/roamfare/roamfare/internal/config"
)

// HashAPIKey creates a SHA-256 hash of the API key
func HashAPIKey(key string) string {
	hasher := sha256.New()
	hasher.Write([]byte(key))
	return hex.EncodeToString(hasher.Sum(nil))
}

// GenerateAPIKey generates a new API key
// The key is returned in its raw form, it should be hashed before storing in config
func GenerateAPIKey() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return hex.EncodeToString(key)
}

// ValidateAPIKey validates an API key against the configuration
// Returns the key's grants if valid
func ValidateAPIKey(cfg *config.Configuration, key string) (*Claims, bool) {
	hashedKey := HashAPIKey(key)
	details, exists := cfg.Auth.APIKey.Keys[hashedKey]
	if !exists || !details.IsActive {
		return nil, false
	}
	return &Claims{
		UserID:   details.UserID,
		TenantID: details.TenantID,
		AgentID:  details.AgentID,
		Roles:    details.Roles,
	}, true
}
