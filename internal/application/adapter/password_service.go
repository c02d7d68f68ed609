// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and checks account passwords for register and login.
// Implementations decide the hashing scheme; callers only store the returned string.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns nil when password matches the stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength enforces the length bounds accepted at registration.
	ValidatePasswordStrength(password string) error
}
