package cosched

import "github.com/uber-go/tally/v4"

// Metric names reported through the scope given to WithMetrics.
const (
	MetricStarted  = "started"
	MetricLaunches = "launches"
	MetricSwitches = "switches"
	MetricHandoffs = "handoffs"
	MetricRetired  = "retired"
	MetricReaped   = "reaped"
	MetricPanics   = "panics"
	MetricLive     = "live"
)

type metrics struct {
	started  tally.Counter
	launches tally.Counter
	switches tally.Counter
	handoffs tally.Counter
	retired  tally.Counter
	reaped   tally.Counter
	panics   tally.Counter
	live     tally.Gauge
}

func newMetrics(scope tally.Scope) *metrics {
	return &metrics{
		started:  scope.Counter(MetricStarted),
		launches: scope.Counter(MetricLaunches),
		switches: scope.Counter(MetricSwitches),
		handoffs: scope.Counter(MetricHandoffs),
		retired:  scope.Counter(MetricRetired),
		reaped:   scope.Counter(MetricReaped),
		panics:   scope.Counter(MetricPanics),
		live:     scope.Gauge(MetricLive),
	}
}
