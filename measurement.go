package qstab

// isDeterministic reports whether measuring Z on qubit has a fixed outcome:
// no stabilizer anticommutes with it.
func isDeterministic(tableau *Tableau, qubit int) bool {
	for row := tableau.n; row < 2*tableau.n; row++ {
		if tableau.x[row][qubit] {
			return false
		}
	}

	return true
}

/*
measureAndUpdate measures Z on qubit, mutating tableau in place.

A deterministic outcome is read from the product of the stabilizers paired
with every destabilizer that has x set on the qubit, and the tableau is left
untouched. Otherwise the outcome is randomBit and the tableau collapses onto
it: the lowest anticommuting stabilizer becomes the pivot, every other
anticommuting row is multiplied by it, the pivot moves into its destabilizer
slot, and the stabilizer slot becomes ±Z on the qubit.
*/
func (e *engine) measureAndUpdate(tableau *Tableau, qubit int, randomBit uint8) (uint8, error) {
	if err := checkQubit(qubit, tableau.n); err != nil {
		return 0, err
	}

	n := tableau.n

	if isDeterministic(tableau, qubit) {
		e.metrics.measurement(measurementDeterministic)

		accum := newPauliRow(n)
		for i := 0; i < n; i++ {
			if !tableau.x[i][qubit] {
				continue
			}

			var err error
			if accum, err = e.rowsum(accum, tableau.row(n+i)); err != nil {
				return 0, err
			}
		}

		return uint8(bit(accum.phase)), nil
	}

	e.metrics.measurement(measurementRandom)

	outcome := randomBit & 1

	pivot := n
	for !tableau.x[pivot][qubit] {
		pivot++
	}

	pivotRow := tableau.row(pivot)

	for i := 0; i < 2*n; i++ {
		if i == pivot || i == pivot-n || !tableau.x[i][qubit] {
			continue
		}

		updated, err := e.rowsum(tableau.row(i), pivotRow)
		if err != nil {
			return 0, err
		}

		tableau.setRow(i, updated)
	}

	tableau.setRow(pivot-n, pivotRow)

	collapsed := newPauliRow(n)
	collapsed.z[qubit] = true
	collapsed.phase = outcome == 1
	tableau.setRow(pivot, collapsed)

	e.logger.Debug("collapsed qubit", "qubit", qubit, "pivot", pivot-n, "outcome", outcome)

	return outcome, nil
}
