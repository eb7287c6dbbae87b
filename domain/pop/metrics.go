package pop

import (
	"github.com/kaspanet/popd/domain/pop/ruleerrors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "pop"
	ruleLabel        = "rule"
	resultLabel      = "result"
)

type metrics struct {
	endorsementsAccepted prometheus.Counter
	endorsementsRejected *prometheus.CounterVec
	reorgs               prometheus.Counter
	reorgDepth           prometheus.Histogram
	scoreCacheLookups    *prometheus.CounterVec
}

// newMetrics creates the engine metrics and registers them on registerer.
// A nil registerer leaves them unregistered.
func newMetrics(registerer prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		endorsementsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "endorsements_accepted",
			Help:      "Number of endorsements accepted into the block index",
		}),
		endorsementsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "endorsements_rejected",
			Help:      "Number of rejected endorsements by violated rule",
		}, []string{ruleLabel}),
		reorgs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reorgs",
			Help:      "Number of times the selected tip moved to a block outside its own future",
		}),
		reorgDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "reorg_depth",
			Help:      "Number of selected chain blocks disconnected by a reorg",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		scoreCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "score_cache_lookups",
			Help:      "Number of PopScore cache lookups by result",
		}, []string{resultLabel}),
	}
	if registerer == nil {
		return m, nil
	}

	for _, collector := range []prometheus.Collector{
		m.endorsementsAccepted,
		m.endorsementsRejected,
		m.reorgs,
		m.reorgDepth,
		m.scoreCacheLookups,
	} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, errors.Wrap(err, "failed registering engine metrics")
		}
	}
	return m, nil
}

func (m *metrics) markAccepted() {
	m.endorsementsAccepted.Inc()
}

func (m *metrics) markRejected(err error) {
	m.endorsementsRejected.WithLabelValues(ruleerrors.RuleName(err)).Inc()
}

func (m *metrics) markReorg(depth int) {
	if depth == 0 {
		return
	}
	m.reorgs.Inc()
	m.reorgDepth.Observe(float64(depth))
}

func (m *metrics) markScoreCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.scoreCacheLookups.WithLabelValues(result).Inc()
}
