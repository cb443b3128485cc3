package utils

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength is shared by registration, password change and reset.
const MinPasswordLength = 5

var bcryptCost = bcrypt.DefaultCost

// SetBcryptCost overrides the hashing cost; values outside bcrypt's range are ignored.
func SetBcryptCost(cost int) {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		bcryptCost = cost
	}
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(b), err
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
