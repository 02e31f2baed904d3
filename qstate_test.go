package qstab

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/smartystreets/goconvey/convey"
)

func testConfig() *Config {
	return &Config{
		Caching:              true,
		Decimals:             -1,
		Seeded:               true,
		Seed:                 42,
		LogLevel:             "error",
		MaxEnumerationQubits: 20,
	}
}

func mustState(circuit *Circuit) *StabilizerState {
	return mustStateWith(circuit, testConfig())
}

func mustStateWith(circuit *Circuit, config *Config) *StabilizerState {
	state, err := FromCircuit(circuit, config)
	if err != nil {
		panic(err)
	}

	return state
}

func TestStabilizerStateMeasure(t *testing.T) {
	Convey("Given a two-qubit state with qubit 0 flipped", t, func() {
		state := mustState(NewCircuit(2).X(0))

		Convey("Then measuring everything puts qubit 0 rightmost", func() {
			outcome, _, err := state.Measure()
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, "01")
		})

		Convey("Then the last measured qubit is leftmost", func() {
			outcome, _, err := state.Measure(1, 0)
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, "10")
		})

		Convey("Then qubits outside the register are rejected", func() {
			_, _, err := state.Measure(5)
			So(errors.Is(err, ErrQubitOutOfRange), ShouldBeTrue)
		})
	})

	Convey("Given a Bell pair", t, func() {
		state := mustState(NewCircuit(2).H(0).CX(0, 1))
		before := state.Tableau()

		Convey("When it is measured", func() {
			outcome, collapsed, err := state.Measure()

			Convey("Then both bits agree", func() {
				So(err, ShouldBeNil)
				So(outcome, ShouldBeIn, []string{"00", "11"})
			})

			Convey("Then the receiver is untouched", func() {
				So(state.Tableau(), ShouldResemble, before)
			})

			Convey("Then the collapsed state repeats the outcome", func() {
				again, _, err := collapsed.Measure()
				So(err, ShouldBeNil)
				So(again, ShouldEqual, outcome)
			})
		})
	})

	Convey("Given a Pauli-prepared state", t, func() {
		state, err := FromPauli(MustParsePauli("XII"), testConfig())
		So(err, ShouldBeNil)

		Convey("Then the flipped qubit reads 1", func() {
			outcome, _, err := state.Measure()
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, "100")
		})

		Convey("Then an invalid operator is rejected", func() {
			_, err := FromPauli(nil, testConfig())
			So(errors.Is(err, ErrInvalidOperator), ShouldBeTrue)
		})
	})
}

func TestStabilizerStateProbabilities(t *testing.T) {
	Convey("Given a Bell pair", t, func() {
		state := mustState(NewCircuit(2).H(0).CX(0, 1))
		targets := ManyTargets{"00", "01", "10", "11"}
		want := map[string]float64{"00": 0.5, "01": 0, "10": 0, "11": 0.5}

		Convey("Then targeted probabilities include the impossible outcomes", func() {
			cached, err := state.ProbabilitiesDictFromBitstrings(WithTarget(targets))
			So(err, ShouldBeNil)
			So(cached, ShouldResemble, want)

			uncached, err := state.ProbabilitiesDictFromBitstrings(WithTarget(targets), WithCache(false))
			So(err, ShouldBeNil)
			So(uncached, ShouldResemble, want)
		})

		Convey("Then ProbabilitiesDict ignores the target", func() {
			probs, err := state.ProbabilitiesDict(WithTarget(OneTarget("00")))
			So(err, ShouldBeNil)
			So(probs, ShouldResemble, map[string]float64{"00": 0.5, "11": 0.5})
		})

		Convey("Then the dense vector is indexed by the outcome string", func() {
			dense, err := state.Probabilities()
			So(err, ShouldBeNil)
			So(dense, ShouldResemble, []float64{0.5, 0, 0, 0.5})
		})

		Convey("Then a single qubit is an even coin", func() {
			dense, err := state.Probabilities(OnQubits(1))
			So(err, ShouldBeNil)
			So(dense, ShouldResemble, []float64{0.5, 0.5})
		})

		Convey("Then malformed targets are rejected", func() {
			_, err := state.ProbabilitiesDictFromBitstrings(WithTarget(OneTarget("0")))
			So(errors.Is(err, ErrInvalidTarget), ShouldBeTrue)
		})
	})

	Convey("Given a register too wide for a dense vector", t, func() {
		state := NewGroundState(maxDenseQubits+1, testConfig())

		Convey("Then Probabilities refuses before enumerating", func() {
			dense, err := state.Probabilities()
			So(dense, ShouldBeNil)
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
			So(state.Metrics().ExportMetrics()["enumerations"], ShouldEqual, int64(0))
		})

		Convey("Then a narrow subsystem is still served", func() {
			dense, err := state.Probabilities(OnQubits(0, maxDenseQubits))
			So(err, ShouldBeNil)
			So(dense, ShouldResemble, []float64{1, 0, 0, 0})
		})
	})

	Convey("Given a basis state", t, func() {
		state := mustState(NewCircuit(2).X(0))

		Convey("Then the dense vector has a single one", func() {
			dense, err := state.Probabilities()
			So(err, ShouldBeNil)
			So(dense, ShouldResemble, []float64{0, 1, 0, 0})
		})
	})

	Convey("Given the uniform superposition on three qubits", t, func() {
		state := mustState(NewCircuit(3).H(0).H(1).H(2))

		Convey("Then rounding is half to even", func() {
			probs, err := state.ProbabilitiesDict(WithDecimals(2))
			So(err, ShouldBeNil)
			So(probs, ShouldHaveLength, 8)

			for _, value := range probs {
				So(value, ShouldEqual, 0.12)
			}
		})

		Convey("Then the configured cache is shared across targets", func() {
			_, err := state.ProbabilitiesDictFromBitstrings(WithTarget(ManyTargets(allBitstrings(3))))
			So(err, ShouldBeNil)
			So(state.Metrics().ExportMetrics()["cache_hits_node"], ShouldBeGreaterThan, 0.0)
		})
	})
}

func TestStabilizerStateExpectation(t *testing.T) {
	Convey("Given a GHZ state", t, func() {
		state := mustState(NewCircuit(3).H(0).CX(0, 1).CX(1, 2))

		Convey("Then labelled operators keep their phase", func() {
			for label, want := range map[string]complex128{
				"XXX": 1, "-XXX": -1, "iXXX": 1i, "YYX": -1, "IZZ": 1, "ZII": 0,
			} {
				value, err := state.ExpectationValueLabel(label)
				So(err, ShouldBeNil)
				So(value, ShouldEqual, want)
			}
		})

		Convey("Then operators can target a subsystem", func() {
			value, err := state.ExpectationValueLabel("ZZ", 0, 2)
			So(err, ShouldBeNil)
			So(value, ShouldEqual, complex128(1))
		})

		Convey("Then a bad label is an invalid operator", func() {
			_, err := state.ExpectationValueLabel("XQX")
			So(errors.Is(err, ErrInvalidOperator), ShouldBeTrue)
		})
	})
}

func TestStabilizerStateTransforms(t *testing.T) {
	Convey("Given a three-qubit ground state", t, func() {
		state := NewGroundState(3, testConfig())

		Convey("When a one-qubit circuit evolves qubit 2", func() {
			evolved, err := state.Evolve(NewCircuit(1).X(0), 2)
			So(err, ShouldBeNil)

			Convey("Then only qubit 2 is flipped", func() {
				outcome, _, err := evolved.Measure()
				So(err, ShouldBeNil)
				So(outcome, ShouldEqual, "100")
			})

			Convey("Then the original is still the ground state", func() {
				So(state.Equal(NewGroundState(3, testConfig())), ShouldBeTrue)
			})
		})

		Convey("When the circuit width disagrees with the state", func() {
			_, err := state.Evolve(NewCircuit(2).H(0))
			So(errors.Is(err, ErrDimensionMismatch), ShouldBeTrue)
		})
	})

	Convey("Given single-qubit states", t, func() {
		zero := NewGroundState(1, testConfig())
		one, err := FromPauli(MustParsePauli("X"), testConfig())
		So(err, ShouldBeNil)

		Convey("Then Tensor puts the argument on the low qubits", func() {
			outcome, _, err := zero.Tensor(one).Measure()
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, "01")
		})

		Convey("Then Expand puts the receiver on the low qubits", func() {
			outcome, _, err := zero.Expand(one).Measure()
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, "10")
		})
	})

	Convey("Given a Bell pair", t, func() {
		state := mustState(NewCircuit(2).H(0).CX(0, 1))

		Convey("When both qubits are reset", func() {
			reset, err := state.Reset(0, 1)
			So(err, ShouldBeNil)

			Convey("Then the state is |00>", func() {
				probs, err := reset.ProbabilitiesDict()
				So(err, ShouldBeNil)
				So(probs, ShouldResemble, map[string]float64{"00": 1})
			})
		})

		Convey("When everything is reset", func() {
			reset, err := state.Reset()
			So(err, ShouldBeNil)
			So(reset.Equal(NewGroundState(2, testConfig())), ShouldBeTrue)
		})

		Convey("When a qubit outside the register is reset", func() {
			_, err := state.Reset(2)
			So(errors.Is(err, ErrQubitOutOfRange), ShouldBeTrue)
		})
	})
}

func TestStabilizerStateConjugate(t *testing.T) {
	Convey("Given the |+i> state", t, func() {
		state := mustState(NewCircuit(1).H(0).S(0))
		conjugate := state.Conjugate()

		Convey("Then the conjugate is |-i>", func() {
			value, err := conjugate.ExpectationValueLabel("Y")
			So(err, ShouldBeNil)
			So(value, ShouldEqual, complex128(-1))
			So(conjugate.String(), ShouldEqual, "StabilizerState([-Y])")
		})

		Convey("Then the receiver is untouched", func() {
			value, err := state.ExpectationValueLabel("Y")
			So(err, ShouldBeNil)
			So(value, ShouldEqual, complex128(1))
		})

		Convey("Then conjugating twice gives the state back", func() {
			So(conjugate.Conjugate().Tableau(), ShouldResemble, state.Tableau())
			So(conjugate.IsValid(), ShouldBeTrue)
		})
	})

	Convey("Given a state with a real amplitude vector", t, func() {
		state := mustState(NewCircuit(3).H(0).CX(0, 1).CX(1, 2))

		Convey("Then it is its own conjugate", func() {
			So(state.Conjugate().Equiv(state), ShouldBeTrue)
		})
	})

	Convey("Given a Y-type stabilizer pair", t, func() {
		state := mustState(NewCircuit(2).H(0).CX(0, 1).S(0).S(1))

		Convey("Then an even number of Y letters keeps its sign", func() {
			before, err := state.ExpectationValueLabel("YY")
			So(err, ShouldBeNil)

			after, err := state.Conjugate().ExpectationValueLabel("YY")
			So(err, ShouldBeNil)
			So(after, ShouldEqual, before)
		})
	})
}

func TestStabilizerStateEquivalence(t *testing.T) {
	Convey("Given the same Bell state prepared two ways", t, func() {
		left := mustState(NewCircuit(2).H(0).CX(0, 1))
		right := mustState(NewCircuit(2).H(1).CX(1, 0))

		t.Log(spew.Sdump(left.Tableau().StabilizerLabels(), right.Tableau().StabilizerLabels()))

		Convey("Then the generators differ", func() {
			So(left.Equal(right), ShouldBeFalse)
		})

		Convey("Then the states are equivalent", func() {
			So(left.Equiv(right), ShouldBeTrue)
			So(right.Equiv(left), ShouldBeTrue)
		})

		Convey("Then a different state is not equivalent", func() {
			So(left.Equiv(mustState(NewCircuit(2).H(0))), ShouldBeFalse)
			So(left.Equiv(NewGroundState(3, testConfig())), ShouldBeFalse)
		})
	})

	Convey("Given a Bell pair", t, func() {
		state := mustState(NewCircuit(2).H(0).CX(0, 1))

		Convey("Then trace and purity are one", func() {
			trace, err := state.Trace()
			So(err, ShouldBeNil)
			So(trace, ShouldEqual, 1.0)

			purity, err := state.Purity()
			So(err, ShouldBeNil)
			So(purity, ShouldEqual, 1.0)
		})

		Convey("Then it renders its stabilizers", func() {
			So(state.String(), ShouldEqual, "StabilizerState([+XX, +ZZ])")
		})
	})

	Convey("Given a tableau without symplectic structure", t, func() {
		tableau := NewTableau(1)
		tableau.SetZ(1, 0, false)
		tableau.SetX(1, 0, true)
		state := NewStabilizerState(tableau, testConfig())

		Convey("Then it is not a valid state", func() {
			So(state.IsValid(), ShouldBeFalse)

			_, err := state.Trace()
			So(errors.Is(err, ErrInvalidState), ShouldBeTrue)
		})
	})
}

func TestStabilizerStateSampling(t *testing.T) {
	Convey("Given a Bell pair", t, func() {
		state := mustState(NewCircuit(2).H(0).CX(0, 1))

		Convey("Then every shot is correlated", func() {
			memory, err := state.SampleMemory(64)
			So(err, ShouldBeNil)
			So(memory, ShouldHaveLength, 64)

			for _, outcome := range memory {
				So(outcome, ShouldBeIn, []string{"00", "11"})
			}
		})

		Convey("Then counts add up to the shot count", func() {
			counts, err := state.SampleCounts(100)
			So(err, ShouldBeNil)
			So(counts["00"]+counts["11"], ShouldEqual, 100)
		})

		Convey("Then a negative shot count is rejected", func() {
			_, err := state.SampleMemory(-1)
			So(errors.Is(err, ErrInvalidShots), ShouldBeTrue)
		})

		Convey("Then a seeded state is reproducible", func() {
			first, err := mustState(NewCircuit(2).H(0).CX(0, 1)).SampleMemory(32)
			So(err, ShouldBeNil)

			second, err := mustState(NewCircuit(2).H(0).CX(0, 1)).SampleMemory(32)
			So(err, ShouldBeNil)

			So(first, ShouldResemble, second)
		})

		Convey("Then reseeding replays the stream", func() {
			state.Seed(9)
			first, err := state.SampleMemory(32)
			So(err, ShouldBeNil)

			state.Seed(9)
			second, err := state.SampleMemory(32)
			So(err, ShouldBeNil)

			So(first, ShouldResemble, second)
		})
	})
}
