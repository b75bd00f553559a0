// SPDX-License-Identifier: MIT
// Package distance: sentinel error set.
// Every message is prefixed with "distance: ..."; wrap with fmt.Errorf
// ("ctx: %w", ErrX) when context helps, callers match with errors.Is.

package distance

import "errors"

var (
	// ErrGraphNil indicates that a nil *cave.Graph was passed to Build.
	ErrGraphNil = errors.New("distance: graph is nil")

	// ErrStartNotFound indicates the designated start valve is absent.
	ErrStartNotFound = errors.New("distance: start valve not found")

	// ErrUnreachable indicates a point of interest cannot be reached from
	// another one. The builder never substitutes a default distance.
	ErrUnreachable = errors.New("distance: point of interest unreachable")

	// ErrEmpty indicates a matrix with no rows.
	ErrEmpty = errors.New("distance: matrix is empty")

	// ErrNonSquare signals that a row length differs from the row count.
	ErrNonSquare = errors.New("distance: matrix is not square")

	// ErrNonZeroDiagonal signals a non-zero distance from a node to itself.
	ErrNonZeroDiagonal = errors.New("distance: diagonal not zero")

	// ErrNegativeDistance signals a negative entry.
	ErrNegativeDistance = errors.New("distance: negative distance")

	// ErrOutOfRange indicates that a row or column index is outside bounds.
	ErrOutOfRange = errors.New("distance: index out of range")

	// ErrUnknownID indicates a label that is not a point of interest.
	ErrUnknownID = errors.New("distance: unknown id")
)
