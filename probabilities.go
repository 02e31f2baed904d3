package qstab

// probabilityRequest collects the options of one probability call.
type probabilityRequest struct {
	qubits   []int
	decimals int
	target   Target
	useCache bool
}

// ProbabilityOption configures Probabilities, ProbabilitiesDict and
// ProbabilitiesDictFromBitstrings.
type ProbabilityOption func(*probabilityRequest)

// OnQubits restricts the measurement to qubits, qubits[0] rightmost in keys.
func OnQubits(qubits ...int) ProbabilityOption {
	return func(request *probabilityRequest) {
		request.qubits = append([]int(nil), qubits...)
	}
}

// WithDecimals rounds every probability to decimals places.
func WithDecimals(decimals int) ProbabilityOption {
	return func(request *probabilityRequest) {
		request.decimals = decimals
	}
}

// WithTarget restricts the enumeration to the target bitstrings.
func WithTarget(target Target) ProbabilityOption {
	return func(request *probabilityRequest) {
		request.target = target
	}
}

// WithCache turns branch memoization across targets on or off.
func WithCache(useCache bool) ProbabilityOption {
	return func(request *probabilityRequest) {
		request.useCache = useCache
	}
}

func (state *StabilizerState) newProbabilityRequest(opts []ProbabilityOption) *probabilityRequest {
	request := &probabilityRequest{
		decimals: state.config.Decimals,
		target:   NoTarget{},
		useCache: state.config.Caching,
	}

	for _, opt := range opts {
		opt(request)
	}

	return request
}

/*
ProbabilitiesDictFromBitstrings returns measurement probabilities in the
computational basis keyed by outcome string.

Without a target every outcome with non-zero probability is returned. With
OneTarget or ManyTargets exactly the requested strings are returned, zero
for impossible ones, and only the branches leading to them are explored.
With more than one target and caching on, partially explored branches are
reused between targets; the result is the same either way.
*/
func (state *StabilizerState) ProbabilitiesDictFromBitstrings(opts ...ProbabilityOption) (map[string]float64, error) {
	return state.probabilitiesDict(state.newProbabilityRequest(opts))
}

// ProbabilitiesDict returns every outcome with non-zero probability. Target
// and cache options are ignored.
func (state *StabilizerState) ProbabilitiesDict(opts ...ProbabilityOption) (map[string]float64, error) {
	request := state.newProbabilityRequest(opts)
	request.target = NoTarget{}
	request.useCache = false

	return state.probabilitiesDict(request)
}

// Probabilities returns the dense vector of length 2^k indexed by the outcome
// string read as a binary number. Widths above maxDenseQubits are rejected
// with ErrDimensionMismatch; use ProbabilitiesDict for those.
func (state *StabilizerState) Probabilities(opts ...ProbabilityOption) ([]float64, error) {
	request := state.newProbabilityRequest(opts)

	width := len(request.qubits)
	if width == 0 {
		width = state.NumQubits()
	}

	if err := checkDenseWidth(width); err != nil {
		return nil, err
	}

	probs, err := state.probabilitiesDict(request)
	if err != nil {
		return nil, err
	}

	return denseProbabilities(probs, width)
}

func (state *StabilizerState) probabilitiesDict(request *probabilityRequest) (map[string]float64, error) {
	qubits, err := state.qubitsOrAll(request.qubits)
	if err != nil {
		return nil, err
	}

	targets, restricted, err := resolveTargets(request.target, len(qubits))
	if err != nil {
		return nil, err
	}

	if !restricted && len(qubits) > state.config.MaxEnumerationQubits {
		state.logger.Warn(
			"unrestricted enumeration may visit 2^k outcomes",
			"k", len(qubits),
			"threshold", state.config.MaxEnumerationQubits,
		)
	}

	probs, err := state.engine().enumerate(state.tableau, qubits, targets, restricted, request.useCache)
	if err != nil {
		return nil, err
	}

	return roundProbabilities(probs, request.decimals), nil
}
