package qstab

import "fmt"

func bit(b bool) int {
	if b {
		return 1
	}

	return 0
}

/*
phaseExponent returns the exponent g of i such that
Pauli(x1,z1) · Pauli(x2,z2) = i^g · Pauli(x1⊕x2, z1⊕z2) on a single qubit.

Valid inputs only ever produce 0, 1 or 3.
*/
func phaseExponent(x1, z1, x2, z2 bool) (int, error) {
	a, b, c, d := bit(x1), bit(z1), bit(x2), bit(z2)

	g := (c*b*(1+2*d+2*a) - a*d*(1+2*b+2*c)) % 4
	if g < 0 {
		g += 4
	}

	if g == 2 {
		return 0, fmt.Errorf(
			"%w: phase exponent 2 for (%d,%d)·(%d,%d)", ErrTableauInvariant, a, b, c, d,
		)
	}

	return g, nil
}

/*
rowsum is the Aaronson–Gottesman row multiplication: it returns row · accum
as a new accumulator. The two rows must commute, so the combined exponent of
i is 0 or 2 and folds into a sign bit.
*/
func rowsum(accum, row pauliRow) (pauliRow, error) {
	newr := 2*bit(row.phase) + 2*bit(accum.phase)

	for qubit := range row.x {
		g, err := phaseExponent(row.x[qubit], row.z[qubit], accum.x[qubit], accum.z[qubit])
		if err != nil {
			return pauliRow{}, err
		}

		newr += g
	}

	newr %= 4
	if newr != 0 && newr != 2 {
		return pauliRow{}, fmt.Errorf("%w: rowsum exponent %d", ErrTableauInvariant, newr)
	}

	out := newPauliRow(len(row.x))
	for qubit := range row.x {
		out.x[qubit] = accum.x[qubit] != row.x[qubit]
		out.z[qubit] = accum.z[qubit] != row.z[qubit]
	}
	out.phase = newr == 2

	return out, nil
}
