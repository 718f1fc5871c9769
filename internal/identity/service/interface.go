// Package service provides technical services for identity operations.
//
// This package implements password hashing and password-reset code
// generation using industry-standard cryptographic practices.
package service

// PasswordService defines operations for user password hashing and validation.
// Implementations must use a slow, salted hashing algorithm (e.g., argon2,
// bcrypt) so stored hashes resist offline attack.
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plainPassword string) (hashedPassword string, err error)

	// ComparePassword compares a plain text password against a stored hash.
	// Returns true if the password matches, false otherwise.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// ResetCodeService defines operations for short-lived password reset codes.
// Codes are human-enterable; only their hash is stored.
type ResetCodeService interface {
	// GenerateCode creates a new random human-enterable code.
	// Returns the plain code (to be delivered to the user out of band) and
	// its hash (to be stored).
	GenerateCode() (plainCode string, codeHash string, err error)

	// CompareCode compares a plain code against a stored hash.
	CompareCode(plainCode string, codeHash string) bool
}
