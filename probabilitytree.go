package qstab

import "time"

/*
probabilityTree is the state of one enumeration call: the measured qubits,
the result map being filled, and the optional branch cache.

Outcome position i stands for qubits[k-1-i], so the highest-indexed measured
qubit is the leftmost character.
*/
type probabilityTree struct {
	engine *engine
	qubits []int
	probs  map[string]float64
	cache  *branchCache
}

/*
enumerate computes outcome probabilities for measuring qubits on tableau.

An unrestricted run (restricted false) returns every outcome with non-zero
probability. A restricted run returns exactly one entry per target, zero for
impossible targets. The cache is only built for more than one target, since
a single path has nothing to share.
*/
func (e *engine) enumerate(
	tableau *Tableau, qubits []int, targets []string, restricted, useCache bool,
) (map[string]float64, error) {
	started := time.Now()

	tree := &probabilityTree{
		engine: e,
		qubits: qubits,
		probs:  make(map[string]float64),
	}

	if restricted && useCache && len(targets) > 1 {
		tree.cache = newBranchCache(e.metrics)
	}

	runs := targets
	if !restricted {
		runs = []string{""}
	}

	for _, target := range runs {
		outcome := make([]byte, len(qubits))
		for i := range outcome {
			outcome[i] = 'X'
		}

		start, probability := tableau.Clone(), 1.0

		if tree.cache != nil {
			if key, cached, snapshot, ok := tree.cache.lookup(target); ok {
				e.logger.Debug("resuming from cached branch", "target", target, "key", key)
				outcome, probability, start = []byte(key), cached, snapshot
			}
		}

		if err := tree.descend(start, outcome, probability, target); err != nil {
			return nil, err
		}
	}

	e.metrics.enumeration(len(tree.probs), time.Since(started))

	if tree.cache != nil {
		e.logger.Debug("enumeration finished", "targets", len(targets), "cached", tree.cache.len())
	}

	return tree.probs, nil
}

/*
descend explores one node. It owns tableau and outcome and may mutate both.
An empty target means no restriction.
*/
func (tree *probabilityTree) descend(tableau *Tableau, outcome []byte, probability float64, target string) error {
	tree.engine.metrics.treeNode()

	k := len(tree.qubits)
	key := string(outcome)

	if tree.cache != nil {
		tree.cache.store(key, probability, tableau)
	}

	branch := -1

	for i := k - 1; i >= 0; i-- {
		if outcome[i] != 'X' {
			continue
		}

		qubit := tree.qubits[k-1-i]

		if !tree.isDeterministic(key, tableau, qubit) {
			if branch == -1 {
				branch = i
			}

			continue
		}

		resolved, err := tree.engine.measureAndUpdate(tableau, qubit, 0)
		if err != nil {
			return err
		}

		outcome[i] = '0' + resolved

		if target != "" && outcome[i] != target[i] {
			tree.probs[target] = 0
			return nil
		}
	}

	if branch == -1 {
		tree.engine.metrics.leaf()
		tree.probs[string(outcome)] = probability
		return nil
	}

	tree.engine.metrics.branch()

	bits := []uint8{0, 1}
	if target != "" {
		bits = []uint8{target[branch] - '0'}
	}

	for _, b := range bits {
		child := tableau.Clone()

		if _, err := tree.engine.measureAndUpdate(child, tree.qubits[k-1-branch], b); err != nil {
			return err
		}

		childOutcome := append([]byte(nil), outcome...)
		childOutcome[branch] = '0' + b

		if err := tree.descend(child, childOutcome, 0.5*probability, target); err != nil {
			return err
		}
	}

	return nil
}

func (tree *probabilityTree) isDeterministic(key string, tableau *Tableau, qubit int) bool {
	if tree.cache != nil {
		return tree.cache.isDeterministic(key, tableau, qubit)
	}

	return isDeterministic(tableau, qubit)
}
