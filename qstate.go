package qstab

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

/*
StabilizerState is an n-qubit stabilizer state backed by a Tableau.

It has value semantics: Measure, Reset, Evolve and the other transforming
operations return a new state and never touch the receiver's tableau.
Derived states share the receiver's random stream, config, metrics and
logger. A single value is not safe for concurrent use because sampling
advances the shared stream.
*/
type StabilizerState struct {
	tableau *Tableau
	rng     *RandomBits
	config  *Config
	metrics *Metrics
	logger  *log.Logger
}

// NewStabilizerState wraps a clone of tableau. A nil config uses NewConfig.
func NewStabilizerState(tableau *Tableau, config *Config) *StabilizerState {
	if config == nil {
		config = NewConfig()
	}

	rng := newEntropyBits()
	if config.Seeded {
		rng = NewRandomBits(config.Seed)
	}

	errnie.Info(
		"NewStabilizerState - qubits %d, seeded %v, caching %v",
		tableau.NumQubits(),
		config.Seeded,
		config.Caching,
	)

	state := &StabilizerState{
		tableau: tableau.Clone(),
		rng:     rng,
		config:  config,
		metrics: NewMetrics(config.Registerer),
		logger:  NewLogger(config.LogLevel),
	}

	if err := state.metrics.Err(); err != nil {
		state.logger.Error("metrics not registered", "err", err)
	}

	return state
}

// NewGroundState returns |0...0> on numQubits qubits.
func NewGroundState(numQubits int, config *Config) *StabilizerState {
	return NewStabilizerState(NewTableau(numQubits), config)
}

// FromCircuit runs circuit on the ground state.
func FromCircuit(circuit *Circuit, config *Config) (*StabilizerState, error) {
	tableau := NewTableau(circuit.NumQubits())

	if err := circuit.applyTo(tableau, allQubits(circuit.NumQubits())); err != nil {
		return nil, err
	}

	return NewStabilizerState(tableau, config), nil
}

// FromPauli returns P|0...0> for a Pauli P, dropping its global phase.
func FromPauli(pauli *Pauli, config *Config) (*StabilizerState, error) {
	if err := pauli.validate(); err != nil {
		return nil, err
	}

	circuit := NewCircuit(pauli.NumQubits())

	for qubit := 0; qubit < pauli.NumQubits(); qubit++ {
		switch bitsLetter(pauli.X[qubit], pauli.Z[qubit]) {
		case 'X':
			circuit.X(qubit)
		case 'Y':
			circuit.Y(qubit)
		case 'Z':
			circuit.Z(qubit)
		}
	}

	return FromCircuit(circuit, config)
}

func (state *StabilizerState) derive(tableau *Tableau) *StabilizerState {
	return &StabilizerState{
		tableau: tableau,
		rng:     state.rng,
		config:  state.config,
		metrics: state.metrics,
		logger:  state.logger,
	}
}

func (state *StabilizerState) engine() *engine {
	return newEngine(state.metrics, state.logger)
}

// NumQubits returns n.
func (state *StabilizerState) NumQubits() int {
	return state.tableau.NumQubits()
}

// Tableau returns a clone of the underlying tableau.
func (state *StabilizerState) Tableau() *Tableau {
	return state.tableau.Clone()
}

// Metrics returns the metrics shared by this state and its derivatives.
func (state *StabilizerState) Metrics() *Metrics {
	return state.metrics
}

// Copy returns an independent tableau with the same random stream.
func (state *StabilizerState) Copy() *StabilizerState {
	return state.derive(state.tableau.Clone())
}

// Seed reseeds the random stream shared with every derived state.
func (state *StabilizerState) Seed(seed uint64) {
	state.rng.Seed(seed)
}

func (state *StabilizerState) qubitsOrAll(qubits []int) ([]int, error) {
	if len(qubits) == 0 {
		return allQubits(state.NumQubits()), nil
	}

	if err := checkQubits(qubits, state.NumQubits()); err != nil {
		return nil, err
	}

	return qubits, nil
}

/*
Measure samples the listed qubits (all when none are given) in order and
returns the outcome string, last measured qubit leftmost, together with the
collapsed state.
*/
func (state *StabilizerState) Measure(qubits ...int) (string, *StabilizerState, error) {
	qubits, err := state.qubitsOrAll(qubits)
	if err != nil {
		return "", nil, err
	}

	randomBits := state.rng.Bits(len(qubits))
	ret := state.Copy()
	e := ret.engine()

	outcomes := make([]uint8, len(qubits))
	for i, qubit := range qubits {
		if outcomes[i], err = e.measureAndUpdate(ret.tableau, qubit, randomBits[i]); err != nil {
			return "", nil, err
		}
	}

	return outcomeString(outcomes), ret, nil
}

/*
Reset returns the state with the listed qubits set to |0>. With no qubits the
ground state is returned without sampling. Otherwise each qubit is measured
and flipped back when it collapsed to 1.
*/
func (state *StabilizerState) Reset(qubits ...int) (*StabilizerState, error) {
	if len(qubits) == 0 {
		return state.derive(NewTableau(state.NumQubits())), nil
	}

	if err := checkQubits(qubits, state.NumQubits()); err != nil {
		return nil, err
	}

	randomBits := state.rng.Bits(len(qubits))
	ret := state.Copy()
	e := ret.engine()

	for i, qubit := range qubits {
		outcome, err := e.measureAndUpdate(ret.tableau, qubit, randomBits[i])
		if err != nil {
			return nil, err
		}

		if outcome == 1 {
			ret.tableau.applyX(qubit)
		}
	}

	return ret, nil
}

// ExpectationValue returns <ψ|P|ψ>, one of 0, 1, -1, i, -i. With qubits the
// operator acts on those subsystems, operator qubit j on qubits[j].
func (state *StabilizerState) ExpectationValue(pauli *Pauli, qubits ...int) (complex128, error) {
	if len(qubits) == 0 {
		qubits = nil
	}

	return state.engine().expectationValue(state.tableau, pauli, qubits)
}

// ExpectationValueLabel parses label with ParsePauli first.
func (state *StabilizerState) ExpectationValueLabel(label string, qubits ...int) (complex128, error) {
	pauli, err := ParsePauli(label)
	if err != nil {
		return 0, err
	}

	return state.ExpectationValue(pauli, qubits...)
}

// SampleMemory returns shots independent measurement strings, each taken on a
// fresh copy of the state.
func (state *StabilizerState) SampleMemory(shots int, qubits ...int) ([]string, error) {
	if shots < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	memory := make([]string, 0, shots)

	for shot := 0; shot < shots; shot++ {
		outcome, _, err := state.Copy().Measure(qubits...)
		if err != nil {
			return nil, err
		}

		memory = append(memory, outcome)
	}

	return memory, nil
}

// SampleCounts tallies SampleMemory.
func (state *StabilizerState) SampleCounts(shots int, qubits ...int) (map[string]int, error) {
	memory, err := state.SampleMemory(shots, qubits...)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, outcome := range memory {
		counts[outcome]++
	}

	return counts, nil
}

// Evolve applies a Clifford circuit, circuit qubit j on qubits[j]. With no
// qubits the circuit must span the whole state.
func (state *StabilizerState) Evolve(circuit *Circuit, qubits ...int) (*StabilizerState, error) {
	if len(qubits) == 0 {
		if circuit.NumQubits() != state.NumQubits() {
			return nil, fmt.Errorf(
				"%w: %d-qubit circuit on %d-qubit state",
				ErrDimensionMismatch, circuit.NumQubits(), state.NumQubits(),
			)
		}

		qubits = allQubits(state.NumQubits())
	}

	tableau := state.tableau.Clone()
	if err := circuit.applyTo(tableau, qubits); err != nil {
		return nil, err
	}

	return state.derive(tableau), nil
}

// Conjugate returns the complex conjugate of the state.
func (state *StabilizerState) Conjugate() *StabilizerState {
	tableau := state.tableau.Clone()
	tableau.conjugate()

	return state.derive(tableau)
}

// Tensor returns state ⊗ other, other on the low qubits.
func (state *StabilizerState) Tensor(other *StabilizerState) *StabilizerState {
	return state.derive(state.tableau.Tensor(other.tableau))
}

// Expand returns other ⊗ state, state on the low qubits.
func (state *StabilizerState) Expand(other *StabilizerState) *StabilizerState {
	return state.derive(other.tableau.Tensor(state.tableau))
}

/*
Equiv reports whether both generating sets stabilize the same state: every
stabilizer of other commutes with every stabilizer of state and has
expectation exactly 1 on it.
*/
func (state *StabilizerState) Equiv(other *StabilizerState) bool {
	if other == nil || other.NumQubits() != state.NumQubits() {
		return false
	}

	n := state.NumQubits()
	e := state.engine()

	for i := 0; i < n; i++ {
		mine := state.tableau.Stabilizer(i)

		for j := 0; j < n; j++ {
			if !mine.Commutes(other.tableau.Stabilizer(j)) {
				return false
			}
		}
	}

	for i := 0; i < n; i++ {
		value, err := e.expectationValue(state.tableau, other.tableau.Stabilizer(i), nil)
		if err != nil || value != 1 {
			return false
		}
	}

	return true
}

// Equal compares stabilizer generators bit for bit.
func (state *StabilizerState) Equal(other *StabilizerState) bool {
	return other != nil && state.tableau.EqualStabilizers(other.tableau)
}

// IsValid reports whether the tableau has the symplectic structure.
func (state *StabilizerState) IsValid() bool {
	return state.tableau.IsSymplectic()
}

// Trace is 1 for every valid stabilizer state.
func (state *StabilizerState) Trace() (float64, error) {
	if !state.IsValid() {
		return 0, ErrInvalidState
	}

	return 1, nil
}

// Purity is 1 for every valid stabilizer state.
func (state *StabilizerState) Purity() (float64, error) {
	if !state.IsValid() {
		return 0, ErrInvalidState
	}

	return 1, nil
}

func (state *StabilizerState) String() string {
	return "StabilizerState([" + strings.Join(state.tableau.StabilizerLabels(), ", ") + "])"
}
