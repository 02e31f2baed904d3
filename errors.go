package qstab

import "errors"

// Operator errors
var (
	// ErrInvalidOperator indicates the operator is not a well-formed Pauli.
	ErrInvalidOperator = errors.New("operator is not a Pauli operator")

	// ErrDimensionMismatch indicates a qubit list disagrees with the width of
	// the operator or circuit it is applied with.
	ErrDimensionMismatch = errors.New("subsystem dimension mismatch")

	// ErrQubitOutOfRange indicates a qubit index outside [0, n).
	ErrQubitOutOfRange = errors.New("qubit index out of range")

	// ErrInvalidGate indicates an unknown gate or a wrong operand count.
	ErrInvalidGate = errors.New("invalid clifford gate")
)

// Tableau errors
var (
	// ErrTableauInvariant indicates a phase exponent or rowsum result outside
	// its valid domain. The tableau is corrupt; never recovered from.
	ErrTableauInvariant = errors.New("tableau invariant violated")

	// ErrInvalidState indicates the tableau is not symplectic.
	ErrInvalidState = errors.New("stabilizer state is not valid")
)

// Probability errors
var (
	// ErrInvalidTarget indicates a target bitstring of the wrong length or
	// containing characters other than 0 and 1.
	ErrInvalidTarget = errors.New("invalid target bitstring")

	// ErrInvalidShots indicates a negative shot count.
	ErrInvalidShots = errors.New("invalid number of shots")
)
