package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/serpcat/serp-backend/pkg/config"
)

// ErrHashMismatch is returned when a password does not match its stored hash.
var ErrHashMismatch = errors.New("security: password does not match")

// Hasher derives and verifies argon2id password hashes in the standard
// $argon2id$v=19$m=...,t=...,p=...$salt$hash encoding.
type Hasher struct {
	memoryKB    uint32
	time        uint32
	parallelism uint8
	saltLen     uint32
	keyLen      uint32
}

func NewHasher(cfg config.PasswordConfig) *Hasher {
	return &Hasher{
		memoryKB:    uint32(cfg.ArgonMemoryKB),
		time:        uint32(cfg.ArgonTime),
		parallelism: uint8(cfg.ArgonParallelism),
		saltLen:     uint32(cfg.ArgonSaltLen),
		keyLen:      uint32(cfg.ArgonKeyLen),
	}
}

func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memoryKB, h.parallelism, h.keyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memoryKB,
		h.time,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify checks the password against the encoded hash. The hash's own
// parameters are used, so old hashes keep verifying after config changes.
func (h *Hasher) Verify(password, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return fmt.Errorf("security: malformed password hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return fmt.Errorf("security: malformed hash version: %w", err)
	}
	if version != argon2.Version {
		return fmt.Errorf("security: unsupported argon2 version %d", version)
	}

	var memoryKB, timeCost uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryKB, &timeCost, &parallelism); err != nil {
		return fmt.Errorf("security: malformed hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("security: malformed hash salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("security: malformed hash key: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, timeCost, memoryKB, parallelism, uint32(len(expected)))
	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return ErrHashMismatch
	}
	return nil
}
