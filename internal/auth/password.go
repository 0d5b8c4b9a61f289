package auth

import "golang.org/x/crypto/bcrypt"

// defaultHashCost is used when the configured cost is outside bcrypt's
// accepted range. 13 matches the credential policy for this service.
const defaultHashCost = 13

// HashPassword hashes a plaintext password with the given bcrypt cost,
// falling back to the service default for out-of-range values.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultHashCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a plaintext candidate against a stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
