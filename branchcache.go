package qstab

import (
	"strconv"
	"strings"
)

// branchEntry is the memoized state of one partially resolved search node.
type branchEntry struct {
	probability float64
	tableau     *Tableau
}

/*
branchCache memoizes the probability search across the targets of a single
enumeration call. It is created by enumerate, threaded through the recursion
by pointer, and dropped when enumerate returns.

Node entries are keyed by the partial outcome string of the node, which fixes
the post-measurement state regardless of the order the bits were found in.
Determinism flags are keyed by node and qubit.
*/
type branchCache struct {
	nodes         map[string]branchEntry
	deterministic map[string]bool
	metrics       *Metrics
}

func newBranchCache(metrics *Metrics) *branchCache {
	return &branchCache{
		nodes:         make(map[string]branchEntry),
		deterministic: make(map[string]bool),
		metrics:       metrics,
	}
}

// isPartialOutcome holds for keys with at least one X and one resolved bit.
// The root and the leaves carry nothing worth reusing.
func isPartialOutcome(key string) bool {
	return strings.Contains(key, "X") && strings.ContainsAny(key, "01")
}

// store snapshots the node. The cache keeps its own clone of tableau.
func (cache *branchCache) store(key string, probability float64, tableau *Tableau) {
	if !isPartialOutcome(key) {
		return
	}

	cache.nodes[key] = branchEntry{
		probability: probability,
		tableau:     tableau.Clone(),
	}
	cache.metrics.cacheStore()
}

/*
lookup finds the deepest cached node on the path to target. Candidates are
"X"*level + target[level:] for level 1..k-1; the smallest level is the most
resolved node, so the first hit wins. Each level has exactly one candidate.

The returned tableau is a fresh clone the caller owns.
*/
func (cache *branchCache) lookup(target string) (string, float64, *Tableau, bool) {
	for level := 1; level < len(target); level++ {
		key := strings.Repeat("X", level) + target[level:]

		if entry, ok := cache.nodes[key]; ok {
			cache.metrics.cacheHit(cacheHitNode)
			return key, entry.probability, entry.tableau.Clone(), true
		}
	}

	return "", 0, nil, false
}

// isDeterministic memoizes the determinism test of qubit at node key.
func (cache *branchCache) isDeterministic(key string, tableau *Tableau, qubit int) bool {
	flagKey := "D" + strconv.Itoa(qubit) + ":" + key

	if deterministic, ok := cache.deterministic[flagKey]; ok {
		cache.metrics.cacheHit(cacheHitDeterminism)
		return deterministic
	}

	deterministic := isDeterministic(tableau, qubit)
	cache.deterministic[flagKey] = deterministic

	return deterministic
}

func (cache *branchCache) len() int {
	return len(cache.nodes)
}
