// errors.go
package toolup

import (
	"errors"
	"fmt"
)

var (
	// ErrToolchainNotFound indicates the named toolchain is not installed
	ErrToolchainNotFound = errors.New("toolchain not found")

	// ErrNotDistributable indicates the toolchain is not managed by a
	// distribution channel and cannot be updated from one
	ErrNotDistributable = errors.New("toolchain is not distributable")

	// ErrInvalidToolchainName indicates a toolchain name that cannot be used
	// as a directory name
	ErrInvalidToolchainName = errors.New("invalid toolchain name")
)

// Error wraps an error with additional context
type Error struct {
	Op        string // Operation that failed
	Toolchain string // Toolchain name if applicable
	Err       error  // Underlying error
}

func (e *Error) Error() string {
	if e.Toolchain != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Toolchain, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
