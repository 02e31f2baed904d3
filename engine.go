package qstab

import "github.com/charmbracelet/log"

/*
engine bundles the collaborators every tableau algorithm reports to. It holds
no tableau state of its own; each call receives the tableau it may touch.
*/
type engine struct {
	metrics *Metrics
	logger  *log.Logger
}

func newEngine(metrics *Metrics, logger *log.Logger) *engine {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	if logger == nil {
		logger = NewLogger("info")
	}

	return &engine{metrics: metrics, logger: logger}
}

// rowsum counts and forwards to the pure rowsum, surfacing invariant errors.
func (e *engine) rowsum(accum, row pauliRow) (pauliRow, error) {
	e.metrics.rowsum()

	out, err := rowsum(accum, row)
	if err != nil {
		e.metrics.invariantError()
		e.logger.Error("rowsum failed", "err", err)
	}

	return out, err
}
