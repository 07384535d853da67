package coverage

import (
	"errors"
	"fmt"
)

// Planning errors.
var (
	ErrEmptyMesh         = errors.New("mesh has no vertices")
	ErrMismatchedNormals = errors.New("vertex and normal counts differ")
	ErrDegenerateNormal  = errors.New("bin normals sum to the zero vector")
	ErrInvalidDensity    = errors.New("density must be in (0, 1]")
	ErrUnknownStrategy   = errors.New("unknown ordering strategy")
	ErrUnknownPolicy     = errors.New("unknown degenerate normal policy")
)

// DegenerateBinError reports a bin whose normals cancelled out.
type DegenerateBinError struct {
	Cell    [3]int
	Members int
}

func (e *DegenerateBinError) Error() string {
	return fmt.Sprintf("cell %v (%d vertices): %v", e.Cell, e.Members, ErrDegenerateNormal)
}

func (e *DegenerateBinError) Unwrap() error {
	return ErrDegenerateNormal
}
