package qstab

import "fmt"

/*
letterBits returns the symplectic encoding of a single-qubit Pauli letter.
Y is encoded with both bits set.
*/
func letterBits(letter byte) (x, z bool, ok bool) {
	switch letter {
	case 'I':
		return false, false, true
	case 'X':
		return true, false, true
	case 'Y':
		return true, true, true
	case 'Z':
		return false, true, true
	}

	return false, false, false
}

// bitsLetter is the inverse of letterBits.
func bitsLetter(x, z bool) byte {
	switch {
	case x && z:
		return 'Y'
	case x:
		return 'X'
	case z:
		return 'Z'
	}

	return 'I'
}

func checkQubit(qubit, numQubits int) error {
	if qubit < 0 || qubit >= numQubits {
		return fmt.Errorf("%w: qubit %d on %d qubits", ErrQubitOutOfRange, qubit, numQubits)
	}

	return nil
}

func checkQubits(qubits []int, numQubits int) error {
	for _, qubit := range qubits {
		if err := checkQubit(qubit, numQubits); err != nil {
			return err
		}
	}

	return nil
}

// allQubits returns 0..n-1, the default subsystem for every operation.
func allQubits(numQubits int) []int {
	qubits := make([]int, numQubits)
	for i := range qubits {
		qubits[i] = i
	}

	return qubits
}

// countAnd counts the positions where both a and b are set.
func countAnd(a, b []bool) int {
	count := 0
	for i := range a {
		if a[i] && b[i] {
			count++
		}
	}

	return count
}
