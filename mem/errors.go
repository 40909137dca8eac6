package mem

import "errors"

var (
	// ErrBadCapacity indicates a tracker constructed with a non-positive capacity.
	ErrBadCapacity = errors.New("mem: capacity must be positive")

	// ErrBadSize indicates an allocation request for a non-positive size.
	ErrBadSize = errors.New("mem: allocation size must be positive")

	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("mem: no free block large enough")

	// ErrBadAddress indicates a deallocation address that is not the start of
	// an allocated block.
	ErrBadAddress = errors.New("mem: no allocated block at address")
)
