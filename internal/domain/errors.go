package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrInvalidChainID is returned when a chain ID is not a positive integer
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrInvalidTxHash is returned when a transaction hash is not 32 bytes of hex
	ErrInvalidTxHash = errors.New("invalid transaction hash")

	// ErrNoBlock is returned when block navigation has no known block to move from
	ErrNoBlock = errors.New("no block loaded")
)

// APIError is a failed response from the mevlog backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("mevlog backend returned status %d", e.Status)
	}
	return e.Message
}

// IsAPIError reports whether err wraps an APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
