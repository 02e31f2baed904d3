package qstab

import (
	"fmt"
	"strings"
)

/*
Pauli is an n-qubit Pauli operator in symplectic form.

The operator is (-i)^Phase · P, where P is the tensor product of the single
qubit letters encoded by X and Z (both bits set means Y). Index 0 is qubit 0,
which is the rightmost letter of a label.
*/
type Pauli struct {
	X     []bool
	Z     []bool
	Phase int
}

// NewPauli returns the n-qubit identity.
func NewPauli(numQubits int) *Pauli {
	return &Pauli{
		X: make([]bool, numQubits),
		Z: make([]bool, numQubits),
	}
}

/*
ParsePauli reads a label such as "XZ", "-YI" or "-iXX". The optional prefix
is one of +, -, i, +i, -i (j is accepted for i). Letters are written highest
qubit first.
*/
func ParsePauli(label string) (*Pauli, error) {
	body, phase := splitPhasePrefix(label)

	if body == "" {
		return nil, fmt.Errorf("%w: empty label %q", ErrInvalidOperator, label)
	}

	pauli := NewPauli(len(body))
	pauli.Phase = phase

	for pos := 0; pos < len(body); pos++ {
		x, z, ok := letterBits(body[pos])
		if !ok {
			return nil, fmt.Errorf("%w: unexpected %q in label %q", ErrInvalidOperator, body[pos], label)
		}

		qubit := len(body) - pos - 1
		pauli.X[qubit] = x
		pauli.Z[qubit] = z
	}

	return pauli, nil
}

// MustParsePauli is ParsePauli for literals known to be valid.
func MustParsePauli(label string) *Pauli {
	pauli, err := ParsePauli(label)
	if err != nil {
		panic(err)
	}

	return pauli
}

func splitPhasePrefix(label string) (string, int) {
	for _, prefix := range []struct {
		text  string
		phase int
	}{
		{"+i", 3}, {"+j", 3}, {"-i", 1}, {"-j", 1},
		{"i", 3}, {"j", 3}, {"+", 0}, {"-", 2},
	} {
		if strings.HasPrefix(label, prefix.text) {
			return label[len(prefix.text):], prefix.phase
		}
	}

	return label, 0
}

// NumQubits returns the operator width.
func (pauli *Pauli) NumQubits() int {
	return len(pauli.X)
}

// Clone returns a deep copy.
func (pauli *Pauli) Clone() *Pauli {
	clone := &Pauli{
		X:     make([]bool, len(pauli.X)),
		Z:     make([]bool, len(pauli.Z)),
		Phase: pauli.Phase,
	}
	copy(clone.X, pauli.X)
	copy(clone.Z, pauli.Z)

	return clone
}

// Commutes reports whether the two operators commute.
func (pauli *Pauli) Commutes(other *Pauli) bool {
	return (countAnd(pauli.X, other.Z)+countAnd(pauli.Z, other.X))%2 == 0
}

// String renders the label form accepted by ParsePauli.
func (pauli *Pauli) String() string {
	var builder strings.Builder

	builder.WriteString([]string{"", "-i", "-", "i"}[((pauli.Phase%4)+4)%4])

	for qubit := pauli.NumQubits() - 1; qubit >= 0; qubit-- {
		builder.WriteByte(bitsLetter(pauli.X[qubit], pauli.Z[qubit]))
	}

	return builder.String()
}

// validate rejects operators that cannot be a Pauli.
func (pauli *Pauli) validate() error {
	if pauli == nil {
		return fmt.Errorf("%w: nil operator", ErrInvalidOperator)
	}

	if len(pauli.X) != len(pauli.Z) {
		return fmt.Errorf(
			"%w: x has %d qubits, z has %d", ErrInvalidOperator, len(pauli.X), len(pauli.Z),
		)
	}

	if pauli.Phase < 0 || pauli.Phase > 3 {
		return fmt.Errorf("%w: phase %d outside 0..3", ErrInvalidOperator, pauli.Phase)
	}

	return nil
}
