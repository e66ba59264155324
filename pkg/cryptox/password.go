package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMismatch is returned by VerifyPassword when the candidate is wrong.
var ErrMismatch = errors.New("password does not match")

// Params are the Argon2id cost parameters written into every PHC string.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  int
}

// DefaultParams follow the OWASP minimum for Argon2id (19 MiB, t=2, p=1).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// HashPassword generates a PHC-format Argon2id hash string including salt and
// parameters, peppered with the configured pepper.
func HashPassword(password string) (string, error) {
	return hashWith(DefaultParams, password)
}

func hashWith(p Params, password string) (string, error) {
	pep, err := currentPepper()
	if err != nil {
		return "", err
	}

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password+pep), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id
// hash. It returns ErrMismatch for a wrong password and a descriptive error
// for a malformed hash.
func VerifyPassword(password, encodedHash string) error {
	p, salt, want, err := decodeHash(encodedHash)
	if err != nil {
		return err
	}

	pep, err := currentPepper()
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(password+pep), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

// decodeHash splits $argon2id$v=19$m=X,t=Y,p=Z$salt$hash into its parts.
func decodeHash(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Params{}, nil, nil, errors.New("invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return Params{}, nil, nil, errors.New("invalid hash format: not argon2id")
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return Params{}, nil, nil, errors.New("invalid hash format: wrong version")
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}
	if len(key) == 0 {
		return Params{}, nil, nil, errors.New("invalid hash format: empty hash")
	}

	p.SaltLength = len(salt)
	p.KeyLength = uint32(len(key)) // #nosec G115 - decoded from our own short hash
	return p, salt, key, nil
}

// Argon2Verifier adapts VerifyPassword to a yes/no check. Callers that only
// need to know whether a login succeeded use this and log malformed hashes
// separately.
type Argon2Verifier struct{}

// Verify reports whether candidate matches storedHash.
func (Argon2Verifier) Verify(candidate, storedHash string) bool {
	return VerifyPassword(candidate, storedHash) == nil
}

// Hash produces a new storable hash for password.
func (Argon2Verifier) Hash(password string) (string, error) {
	return HashPassword(password)
}
