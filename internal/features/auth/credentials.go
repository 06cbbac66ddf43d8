package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialValidator checks a candidate password against a static,
// ordered set of precomputed bcrypt hashes loaded once at process start.
// The set is held immutably for the process lifetime.
type CredentialValidator struct {
	hashes []string
}

// NewCredentialValidator copies the configured hash list so later config
// mutation cannot change what the process accepts.
func NewCredentialValidator(hashes []string) *CredentialValidator {
	return &CredentialValidator{
		hashes: append([]string(nil), hashes...),
	}
}

// Configured reports whether any credential hashes are loaded.
func (v *CredentialValidator) Configured() bool {
	return len(v.hashes) > 0
}

// Validate returns true if candidate matches at least one configured
// hash. With no hashes configured it fails closed without attempting a
// comparison. Each bcrypt comparison is deliberately slow (around 100ms
// at cost 12), so hash order affects latency but never the outcome.
func (v *CredentialValidator) Validate(candidate string) bool {
	if len(v.hashes) == 0 {
		return false
	}

	for _, hash := range v.hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil {
			return true
		}
	}
	return false
}
