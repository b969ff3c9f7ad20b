package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost of 8 keeps login under ~25ms on the small VPS the front desk
// runs on; the login rate limiter covers the difference.
const bcryptCost = 8

// HashPIN generates a bcrypt hash of the admin PIN.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPIN checks if the provided PIN matches the stored hash.
func VerifyPIN(hashedPIN, pin string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPIN), []byte(pin))
	return err == nil
}
