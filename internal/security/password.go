package security

import "golang.org/x/crypto/bcrypt"

// Cost matches the original registration flow.
const bcryptCost = 12

// HashPassword hashes a plain text password with bcrypt. Each call salts
// independently, so two hashes of the same password will differ.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
// Any error, including a malformed hash, means the credentials do not match.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
