package qstab

import (
	"fmt"
	"math"
	"strconv"
)

/*
roundProbabilities rounds every value to decimals places, half to even.
Negative decimals leave the map untouched.
*/
func roundProbabilities(probs map[string]float64, decimals int) map[string]float64 {
	if decimals < 0 {
		return probs
	}

	scale := math.Pow(10, float64(decimals))

	for key, value := range probs {
		probs[key] = math.RoundToEven(value*scale) / scale
	}

	return probs
}

// maxDenseQubits bounds the width of a dense probability vector.
const maxDenseQubits = 30

func checkDenseWidth(width int) error {
	if width < 0 || width > maxDenseQubits {
		return fmt.Errorf(
			"%w: dense vector over %d qubits, limit is %d", ErrDimensionMismatch, width, maxDenseQubits,
		)
	}

	return nil
}

// denseProbabilities lays a probability map out as a 2^width vector indexed
// by the outcome string read as a binary number.
func denseProbabilities(probs map[string]float64, width int) ([]float64, error) {
	if err := checkDenseWidth(width); err != nil {
		return nil, err
	}

	dense := make([]float64, 1<<width)

	for key, value := range probs {
		if key == "" {
			dense[0] = value
			continue
		}

		place, err := strconv.ParseUint(key, 2, 64)
		if err != nil || place >= uint64(len(dense)) {
			return nil, fmt.Errorf("%w: outcome %q", ErrInvalidTarget, key)
		}

		dense[place] = value
	}

	return dense, nil
}

// outcomeString builds a measurement string with the last measured qubit
// leftmost.
func outcomeString(bits []uint8) string {
	out := make([]byte, len(bits))
	for i, b := range bits {
		out[len(bits)-1-i] = '0' + b
	}

	return string(out)
}
