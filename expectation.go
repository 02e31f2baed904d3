package qstab

import "fmt"

/*
expectationValue returns <ψ|P|ψ> for a Pauli operator placed on qubits.
The result is always one of 0, 1, -1, i, -i. The tableau is read only.

If some stabilizer anticommutes with P the value is 0. Otherwise P equals
(-1)^a · Π S_j^{b_j}, where b_j is set exactly when P anticommutes with
destabilizer j, and the sign is recovered by multiplying those stabilizers
together while tracking the phase.
*/
func (e *engine) expectationValue(tableau *Tableau, oper *Pauli, qubits []int) (complex128, error) {
	if err := oper.validate(); err != nil {
		return 0, err
	}

	n := tableau.n

	if qubits == nil {
		qubits = allQubits(n)
	}

	if len(qubits) != oper.NumQubits() {
		return 0, fmt.Errorf(
			"%w: %d-qubit operator on %d qubits", ErrDimensionMismatch, oper.NumQubits(), len(qubits),
		)
	}

	if err := checkQubits(qubits, n); err != nil {
		return 0, err
	}

	pauli := NewPauli(n)
	phase := 0

	for pos, qubit := range qubits {
		pauli.X[qubit] = oper.X[pos]
		pauli.Z[qubit] = oper.Z[pos]

		if pauli.X[qubit] && pauli.Z[qubit] {
			phase++
		}
	}

	operPhase := powersOfMinusI[oper.Phase]

	for p := 0; p < n; p++ {
		anti := countAnd(pauli.Z, tableau.x[n+p]) + countAnd(pauli.X, tableau.z[n+p])
		if anti%2 == 1 {
			return 0, nil
		}
	}

	workZ := append([]bool(nil), pauli.Z...)

	for p := 0; p < n; p++ {
		anti := countAnd(pauli.Z, tableau.x[p]) + countAnd(pauli.X, tableau.z[p])
		if anti%2 == 0 {
			continue
		}

		stabX, stabZ := tableau.x[n+p], tableau.z[n+p]

		phase += 2 * bit(tableau.phase[n+p])
		phase += countAnd(stabZ, stabX)
		phase += 2 * countAnd(workZ, stabX)

		for qubit := range workZ {
			workZ[qubit] = workZ[qubit] != stabZ[qubit]
		}
	}

	if phase%4 != 0 {
		return -operPhase, nil
	}

	return operPhase, nil
}

// powersOfMinusI[q] is (-i)^q.
var powersOfMinusI = [4]complex128{1, -1i, -1, 1i}
