package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedIdentifier means an identifier did not name a profile action.
	ErrUnrecognizedIdentifier = errors.New("not a profile action")

	// ErrInvalidClassification means a value outside the classification set
	// reached an operation that skipped normalization.
	ErrInvalidClassification = errors.New("invalid classification")

	// ErrInvalidWallet means a wallet address failed validation.
	ErrInvalidWallet = errors.New("invalid wallet address")
)

// StorageError wraps any failure talking to the persistence layer.
type StorageError struct {
	Op     string
	UserID int64
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s for user %d: %v", e.Op, e.UserID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err wraps a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func storageError(op string, userID int64, err error) error {
	return &StorageError{Op: op, UserID: userID, Err: err}
}

func invalidClassification(v string) error {
	return fmt.Errorf("%w: %q", ErrInvalidClassification, v)
}
