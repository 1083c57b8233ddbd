package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the bcrypt work factor. Tests lower it through SetBcryptCost.
var bcryptCost = 12

// SetBcryptCost overrides the work factor and returns the previous value.
func SetBcryptCost(cost int) int {
	prev := bcryptCost
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		bcryptCost = cost
	}
	return prev
}

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
