// Package auth provides password hashing and session token primitives.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keyFileName = "auth.key"

// LoadOrGenerateKey resolves the PASETO v4 symmetric key as a hex string.
//
// Precedence: an explicit secret (from TOKEN_SECRET) wins; otherwise the
// key is read from <dataPath>/auth.key, and generated and saved there on
// first run so tokens survive restarts.
func LoadOrGenerateKey(secret, dataPath string) (string, error) {
	if secret != "" {
		if err := validateKeyHex(secret); err != nil {
			return "", err
		}
		return secret, nil
	}

	keyPath := filepath.Join(dataPath, keyFileName)

	//#nosec G304 -- Auth key path is derived from the validated data path
	if keyBytes, err := os.ReadFile(keyPath); err == nil {
		keyHex := strings.TrimSpace(string(keyBytes))
		if err := validateKeyHex(keyHex); err != nil {
			return "", fmt.Errorf("stored auth key is unusable: %w", err)
		}
		return keyHex, nil
	}

	// First run: generate 32 bytes (256 bits) and persist as hex.
	key := make([]byte, keyBytesSize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate auth key: %w", err)
	}
	keyHex := hex.EncodeToString(key)

	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(keyHex), 0o600); err != nil {
		return "", fmt.Errorf("failed to save auth key: %w", err)
	}

	return keyHex, nil
}

func validateKeyHex(keyHex string) error {
	if len(keyHex) != keyHexSize {
		return fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", keyHexSize, len(keyHex))
	}
	if _, err := hex.DecodeString(keyHex); err != nil {
		return fmt.Errorf("invalid auth key format: not valid hex: %w", err)
	}
	return nil
}
