package qstab

import "fmt"

// Gate names a Clifford gate.
type Gate string

const (
	GateI    Gate = "id"
	GateH    Gate = "h"
	GateS    Gate = "s"
	GateSdg  Gate = "sdg"
	GateX    Gate = "x"
	GateY    Gate = "y"
	GateZ    Gate = "z"
	GateCX   Gate = "cx"
	GateCZ   Gate = "cz"
	GateSwap Gate = "swap"
)

// arity is the operand count of each supported gate.
var arity = map[Gate]int{
	GateI: 1, GateH: 1, GateS: 1, GateSdg: 1, GateX: 1, GateY: 1, GateZ: 1,
	GateCX: 2, GateCZ: 2, GateSwap: 2,
}

// Instruction is one gate on circuit-local qubits.
type Instruction struct {
	Gate   Gate
	Qubits []int
}

/*
Circuit is an ordered list of Clifford gates on a fixed number of qubits.

Builder methods chain and never fail; operands are checked when the circuit
is applied, so a bad circuit surfaces ErrInvalidGate or ErrQubitOutOfRange
from FromCircuit or Evolve.
*/
type Circuit struct {
	numQubits    int
	instructions []Instruction
}

// NewCircuit returns an empty circuit on numQubits qubits.
func NewCircuit(numQubits int) *Circuit {
	return &Circuit{numQubits: numQubits}
}

// NumQubits returns the circuit width.
func (circuit *Circuit) NumQubits() int {
	return circuit.numQubits
}

// Instructions returns a copy of the gate list.
func (circuit *Circuit) Instructions() []Instruction {
	return append([]Instruction(nil), circuit.instructions...)
}

// Append adds any gate by name.
func (circuit *Circuit) Append(gate Gate, qubits ...int) *Circuit {
	circuit.instructions = append(circuit.instructions, Instruction{
		Gate:   gate,
		Qubits: append([]int(nil), qubits...),
	})

	return circuit
}

func (circuit *Circuit) H(qubit int) *Circuit   { return circuit.Append(GateH, qubit) }
func (circuit *Circuit) S(qubit int) *Circuit   { return circuit.Append(GateS, qubit) }
func (circuit *Circuit) Sdg(qubit int) *Circuit { return circuit.Append(GateSdg, qubit) }
func (circuit *Circuit) X(qubit int) *Circuit   { return circuit.Append(GateX, qubit) }
func (circuit *Circuit) Y(qubit int) *Circuit   { return circuit.Append(GateY, qubit) }
func (circuit *Circuit) Z(qubit int) *Circuit   { return circuit.Append(GateZ, qubit) }

func (circuit *Circuit) CX(control, target int) *Circuit {
	return circuit.Append(GateCX, control, target)
}

func (circuit *Circuit) CZ(a, b int) *Circuit {
	return circuit.Append(GateCZ, a, b)
}

func (circuit *Circuit) Swap(a, b int) *Circuit {
	return circuit.Append(GateSwap, a, b)
}

func (circuit *Circuit) validate() error {
	for _, instruction := range circuit.instructions {
		want, ok := arity[instruction.Gate]
		if !ok {
			return fmt.Errorf("%w: unknown gate %q", ErrInvalidGate, instruction.Gate)
		}

		if len(instruction.Qubits) != want {
			return fmt.Errorf(
				"%w: %s takes %d qubits, got %d",
				ErrInvalidGate, instruction.Gate, want, len(instruction.Qubits),
			)
		}

		if err := checkQubits(instruction.Qubits, circuit.numQubits); err != nil {
			return err
		}

		if want == 2 && instruction.Qubits[0] == instruction.Qubits[1] {
			return fmt.Errorf("%w: %s on repeated qubit %d", ErrInvalidGate, instruction.Gate, instruction.Qubits[0])
		}
	}

	return nil
}

/*
applyTo conjugates the tableau by every gate in order. Circuit qubit j acts on
tableau qubit qubits[j].
*/
func (circuit *Circuit) applyTo(tableau *Tableau, qubits []int) error {
	if err := circuit.validate(); err != nil {
		return err
	}

	if len(qubits) != circuit.numQubits {
		return fmt.Errorf(
			"%w: circuit on %d qubits applied to %d", ErrDimensionMismatch, circuit.numQubits, len(qubits),
		)
	}

	if err := checkQubits(qubits, tableau.n); err != nil {
		return err
	}

	for _, instruction := range circuit.instructions {
		a := qubits[instruction.Qubits[0]]

		switch instruction.Gate {
		case GateI:
		case GateH:
			tableau.applyH(a)
		case GateS:
			tableau.applyS(a)
		case GateSdg:
			tableau.applySdg(a)
		case GateX:
			tableau.applyX(a)
		case GateY:
			tableau.applyY(a)
		case GateZ:
			tableau.applyZ(a)
		case GateCX:
			tableau.applyCX(a, qubits[instruction.Qubits[1]])
		case GateCZ:
			tableau.applyCZ(a, qubits[instruction.Qubits[1]])
		case GateSwap:
			tableau.applySwap(a, qubits[instruction.Qubits[1]])
		}
	}

	return nil
}

func (tableau *Tableau) applyH(q int) {
	for row := range tableau.x {
		x, z := tableau.x[row][q], tableau.z[row][q]
		tableau.phase[row] = tableau.phase[row] != (x && z)
		tableau.x[row][q], tableau.z[row][q] = z, x
	}
}

func (tableau *Tableau) applyS(q int) {
	for row := range tableau.x {
		x, z := tableau.x[row][q], tableau.z[row][q]
		tableau.phase[row] = tableau.phase[row] != (x && z)
		tableau.z[row][q] = z != x
	}
}

func (tableau *Tableau) applySdg(q int) {
	for row := range tableau.x {
		x, z := tableau.x[row][q], tableau.z[row][q]
		tableau.phase[row] = tableau.phase[row] != (x && !z)
		tableau.z[row][q] = z != x
	}
}

func (tableau *Tableau) applyX(q int) {
	for row := range tableau.x {
		tableau.phase[row] = tableau.phase[row] != tableau.z[row][q]
	}
}

func (tableau *Tableau) applyY(q int) {
	for row := range tableau.x {
		tableau.phase[row] = tableau.phase[row] != (tableau.x[row][q] != tableau.z[row][q])
	}
}

func (tableau *Tableau) applyZ(q int) {
	for row := range tableau.x {
		tableau.phase[row] = tableau.phase[row] != tableau.x[row][q]
	}
}

func (tableau *Tableau) applyCX(control, target int) {
	for row := range tableau.x {
		x0, z0 := tableau.x[row][control], tableau.z[row][control]
		x1, z1 := tableau.x[row][target], tableau.z[row][target]

		tableau.phase[row] = tableau.phase[row] != (x0 && z1 && (x1 == z0))
		tableau.x[row][target] = x1 != x0
		tableau.z[row][control] = z0 != z1
	}
}

func (tableau *Tableau) applyCZ(a, b int) {
	for row := range tableau.x {
		x0, z0 := tableau.x[row][a], tableau.z[row][a]
		x1, z1 := tableau.x[row][b], tableau.z[row][b]

		tableau.phase[row] = tableau.phase[row] != (x0 && x1 && (z0 != z1))
		tableau.z[row][b] = z1 != x0
		tableau.z[row][a] = z0 != x1
	}
}

func (tableau *Tableau) applySwap(a, b int) {
	for row := range tableau.x {
		tableau.x[row][a], tableau.x[row][b] = tableau.x[row][b], tableau.x[row][a]
		tableau.z[row][a], tableau.z[row][b] = tableau.z[row][b], tableau.z[row][a]
	}
}
