package qstab

import "fmt"

/*
Target restricts a probability enumeration to chosen outcome strings.
It is one of NoTarget, OneTarget or ManyTargets and is resolved once, at the
entry point, into a plain list of bitstrings.
*/
type Target interface {
	bitstrings() []string
}

// NoTarget enumerates every outcome with non-zero probability.
type NoTarget struct{}

// OneTarget asks for the probability of a single outcome string.
type OneTarget string

// ManyTargets asks for the probability of each listed outcome string.
type ManyTargets []string

func (NoTarget) bitstrings() []string { return nil }

func (target OneTarget) bitstrings() []string { return []string{string(target)} }

func (targets ManyTargets) bitstrings() []string {
	out := make([]string, len(targets))
	copy(out, targets)

	return out
}

/*
resolveTargets validates every bitstring against the outcome width. The
restricted result is false for NoTarget (or nil), in which case the search
is unrestricted.
*/
func resolveTargets(target Target, width int) (bitstrings []string, restricted bool, err error) {
	if target == nil {
		return nil, false, nil
	}

	if _, ok := target.(NoTarget); ok {
		return nil, false, nil
	}

	bitstrings = target.bitstrings()

	for _, bitstring := range bitstrings {
		if len(bitstring) != width {
			return nil, false, fmt.Errorf(
				"%w: %q has %d bits, want %d", ErrInvalidTarget, bitstring, len(bitstring), width,
			)
		}

		for pos := 0; pos < len(bitstring); pos++ {
			if bitstring[pos] != '0' && bitstring[pos] != '1' {
				return nil, false, fmt.Errorf("%w: %q contains %q", ErrInvalidTarget, bitstring, bitstring[pos])
			}
		}
	}

	return bitstrings, true, nil
}
