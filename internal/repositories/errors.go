package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound signals that an entity read-by-id matched nothing. It is
	// a result, not a fault; callers map it to a 404-style outcome.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey signals a store-enforced uniqueness violation
	// (duplicate email, duplicate enrollment pair).
	ErrDuplicateKey = errors.New("duplicate key")
)

// TranslateError maps driver/ORM errors onto the repository sentinels.
// Anything unrecognized passes through for the boundary to treat as
// internal.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey)
}
