// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and checks panel user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
	ValidatePasswordStrength(password string) error
}
