package bankauth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptEncoder is the default PasswordEncoder collaborator.
type BcryptEncoder struct {
	Cost int
}

// NewBcryptEncoder creates an encoder with the given cost, falling back
// to the bcrypt default when out of range.
func NewBcryptEncoder(cost int) BcryptEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptEncoder{Cost: cost}
}

// Hash will generate a password hash
func (e BcryptEncoder) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	cost := e.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// Compare will validate the given cleartext password matches the hash
func (e BcryptEncoder) Compare(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
