package qstab

import "strings"

/*
Tableau is the symplectic binary matrix of an n-qubit stabilizer state.

It holds 2n rows: rows 0..n-1 are destabilizers and rows n..2n-1 are
stabilizers. Every row is a signed Pauli string (-1)^phase · P given by its
x and z bits, where x=z=1 on a qubit means Y.

A Tableau is plain data. The exported StabilizerState never mutates one it
hands out; the measurement engine mutates private clones in place.
*/
type Tableau struct {
	n     int
	x     [][]bool
	z     [][]bool
	phase []bool
}

// pauliRow is a transient accumulator shaped like a tableau row.
type pauliRow struct {
	x     []bool
	z     []bool
	phase bool
}

func newPauliRow(numQubits int) pauliRow {
	return pauliRow{
		x: make([]bool, numQubits),
		z: make([]bool, numQubits),
	}
}

// NewTableau returns the identity tableau: destabilizer i is +X_i and
// stabilizer i is +Z_i, which is the all-zero ground state.
func NewTableau(numQubits int) *Tableau {
	tableau := &Tableau{
		n:     numQubits,
		x:     make([][]bool, 2*numQubits),
		z:     make([][]bool, 2*numQubits),
		phase: make([]bool, 2*numQubits),
	}

	for row := range tableau.x {
		tableau.x[row] = make([]bool, numQubits)
		tableau.z[row] = make([]bool, numQubits)
	}

	for qubit := 0; qubit < numQubits; qubit++ {
		tableau.x[qubit][qubit] = true
		tableau.z[numQubits+qubit][qubit] = true
	}

	return tableau
}

// NumQubits returns n.
func (tableau *Tableau) NumQubits() int {
	return tableau.n
}

// Clone returns a deep copy sharing no storage with the receiver.
func (tableau *Tableau) Clone() *Tableau {
	clone := &Tableau{
		n:     tableau.n,
		x:     make([][]bool, len(tableau.x)),
		z:     make([][]bool, len(tableau.z)),
		phase: make([]bool, len(tableau.phase)),
	}

	for row := range tableau.x {
		clone.x[row] = append([]bool(nil), tableau.x[row]...)
		clone.z[row] = append([]bool(nil), tableau.z[row]...)
	}
	copy(clone.phase, tableau.phase)

	return clone
}

func (tableau *Tableau) X(row, qubit int) bool       { return tableau.x[row][qubit] }
func (tableau *Tableau) Z(row, qubit int) bool       { return tableau.z[row][qubit] }
func (tableau *Tableau) Phase(row int) bool          { return tableau.phase[row] }
func (tableau *Tableau) SetX(row, qubit int, v bool) { tableau.x[row][qubit] = v }
func (tableau *Tableau) SetZ(row, qubit int, v bool) { tableau.z[row][qubit] = v }
func (tableau *Tableau) SetPhase(row int, v bool)    { tableau.phase[row] = v }

// row copies row i into a fresh accumulator.
func (tableau *Tableau) row(i int) pauliRow {
	return pauliRow{
		x:     append([]bool(nil), tableau.x[i]...),
		z:     append([]bool(nil), tableau.z[i]...),
		phase: tableau.phase[i],
	}
}

func (tableau *Tableau) setRow(i int, row pauliRow) {
	copy(tableau.x[i], row.x)
	copy(tableau.z[i], row.z)
	tableau.phase[i] = row.phase
}

// Stabilizer returns stabilizer generator i as a Pauli operator.
func (tableau *Tableau) Stabilizer(i int) *Pauli {
	return tableau.rowPauli(tableau.n + i)
}

// Destabilizer returns destabilizer generator i as a Pauli operator.
func (tableau *Tableau) Destabilizer(i int) *Pauli {
	return tableau.rowPauli(i)
}

func (tableau *Tableau) rowPauli(i int) *Pauli {
	pauli := NewPauli(tableau.n)
	copy(pauli.X, tableau.x[i])
	copy(pauli.Z, tableau.z[i])

	if tableau.phase[i] {
		pauli.Phase = 2
	}

	return pauli
}

// StabilizerLabels renders the stabilizer rows as signed labels.
func (tableau *Tableau) StabilizerLabels() []string {
	labels := make([]string, tableau.n)

	for i := range labels {
		var builder strings.Builder

		if tableau.phase[tableau.n+i] {
			builder.WriteByte('-')
		} else {
			builder.WriteByte('+')
		}

		for qubit := tableau.n - 1; qubit >= 0; qubit-- {
			builder.WriteByte(bitsLetter(tableau.x[tableau.n+i][qubit], tableau.z[tableau.n+i][qubit]))
		}

		labels[i] = builder.String()
	}

	return labels
}

/*
IsSymplectic checks the commutation structure: stabilizers pairwise commute,
destabilizers pairwise commute, and destabilizer i anticommutes with
stabilizer j exactly when i == j.
*/
func (tableau *Tableau) IsSymplectic() bool {
	for i := 0; i < 2*tableau.n; i++ {
		for j := i; j < 2*tableau.n; j++ {
			form := (countAnd(tableau.x[i], tableau.z[j]) + countAnd(tableau.z[i], tableau.x[j])) % 2
			want := 0

			if j == i+tableau.n {
				want = 1
			}

			if form != want {
				return false
			}
		}
	}

	return true
}

// EqualStabilizers compares the stabilizer rows bit for bit.
func (tableau *Tableau) EqualStabilizers(other *Tableau) bool {
	if other == nil || tableau.n != other.n {
		return false
	}

	for row := tableau.n; row < 2*tableau.n; row++ {
		if tableau.phase[row] != other.phase[row] {
			return false
		}

		for qubit := 0; qubit < tableau.n; qubit++ {
			if tableau.x[row][qubit] != other.x[row][qubit] || tableau.z[row][qubit] != other.z[row][qubit] {
				return false
			}
		}
	}

	return true
}

/*
Tensor returns the tableau of tableau ⊗ low, where low occupies qubits
0..low.n-1 and the receiver is shifted above it.
*/
func (tableau *Tableau) Tensor(low *Tableau) *Tableau {
	n := tableau.n + low.n
	out := NewTableau(n)

	place := func(src *Tableau, srcRow, dstRow, offset int) {
		for qubit := range out.x[dstRow] {
			out.x[dstRow][qubit] = false
			out.z[dstRow][qubit] = false
		}

		for qubit := 0; qubit < src.n; qubit++ {
			out.x[dstRow][offset+qubit] = src.x[srcRow][qubit]
			out.z[dstRow][offset+qubit] = src.z[srcRow][qubit]
		}

		out.phase[dstRow] = src.phase[srcRow]
	}

	for i := 0; i < low.n; i++ {
		place(low, i, i, 0)
		place(low, low.n+i, n+i, 0)
	}

	for i := 0; i < tableau.n; i++ {
		place(tableau, i, low.n+i, low.n)
		place(tableau, tableau.n+i, n+low.n+i, low.n)
	}

	return out
}

// conjugate flips the sign of every row holding an odd number of Y letters,
// giving the tableau of the complex-conjugate state.
func (tableau *Tableau) conjugate() {
	for row := range tableau.x {
		if countAnd(tableau.x[row], tableau.z[row])%2 == 1 {
			tableau.phase[row] = !tableau.phase[row]
		}
	}
}
