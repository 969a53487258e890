package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt
)

var (
	ErrMismatch      = errors.New("cryptox: secret does not match")
	ErrInvalidDigest = errors.New("cryptox: invalid digest format")
)

// Vault hashes and verifies user passwords and project secrets. Every digest
// is salted, and the server-wide pepper is appended to the secret before
// hashing so a leaked database alone is not enough to brute force it.
type Vault struct {
	pepper string
}

func NewVault(pepper string) *Vault {
	return &Vault{pepper: pepper}
}

// Hash returns a PHC-format Argon2id digest including salt and parameters.
func (v *Vault) Hash(secret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}
	hash := argon2.IDKey([]byte(secret+v.pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify reports whether secret matches digest. Malformed digests never match.
func (v *Vault) Verify(secret, digest string) bool {
	return v.Compare(secret, digest) == nil
}

// Compare is Verify with the reason for a failed match.
func (v *Vault) Compare(secret, digest string) error {
	switch {
	case strings.HasPrefix(digest, "$argon2id$"):
		return v.compareArgon2(secret, digest)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		// bcrypt digests predate the pepper
		if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return ErrMismatch
			}
			return fmt.Errorf("%w: %w", ErrInvalidDigest, err)
		}
		return nil
	default:
		return ErrInvalidDigest
	}
}

// compareArgon2 parses $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func (v *Vault) compareArgon2(secret, digest string) error {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[2] != "v=19" {
		return ErrInvalidDigest
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: parameters: %w", ErrInvalidDigest, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %w", ErrInvalidDigest, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return ErrInvalidDigest
	}

	computed := argon2.IDKey(
		[]byte(secret+v.pepper),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - decoded from our own digest
	)
	if subtle.ConstantTimeCompare(computed, expected) != 1 {
		return ErrMismatch
	}
	return nil
}
