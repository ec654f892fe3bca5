// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a URL-safe random token of the given byte
// length, for refresh and verification tokens.
func GenerateSecureToken(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken returns the hex SHA-256 digest of a token. Only digests are
// persisted; a leaked session store never yields usable tokens.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
