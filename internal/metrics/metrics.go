package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "opslogger"

// OtherOp is the op label for codes outside KnownOps.
const OtherOp = "other"

// KnownOps are the operation codes the calculator emits.
var KnownOps = map[string]struct{}{
	"SUMA": {},
	"MULT": {},
	"DIV":  {},
	"CRUD": {},
}

// OpLabel keeps the op label set bounded: any code the calculator does not
// emit is counted as OtherOp.
func OpLabel(op string) string {
	if _, ok := KnownOps[op]; ok {
		return op
	}
	return OtherOp
}

type Counter interface {
	Inc(labels ...string)
}

type Counters struct {
	LogsReceived Counter

	HTTPRequests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

func NewPrometheusCounter(name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{counter: newCounterVec(name, help, labels)}
	prometheus.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func New() *Counters {
	return &Counters{
		LogsReceived: NewPrometheusCounter(
			"operation_logs_received_total",
			"Operation logs stored, by operation code",
			[]string{"op"},
		),
		HTTPRequests: NewPrometheusCounter(
			"operation_log_requests_total",
			"Operation log API calls, by handler and outcome",
			[]string{"handler", "status"},
		),
	}
}

// NewTestCounters returns counters bound to a private registry so tests can
// build as many as they need.
func NewTestCounters() *Counters {
	reg := prometheus.NewRegistry()

	logsReceived := &PrometheusCounter{
		counter: newCounterVec("operation_logs_received_total", "Operation logs stored, by operation code", []string{"op"}),
	}
	httpRequests := &PrometheusCounter{
		counter: newCounterVec("operation_log_requests_total", "Operation log API calls, by handler and outcome", []string{"handler", "status"}),
	}

	reg.MustRegister(logsReceived.counter)
	reg.MustRegister(httpRequests.counter)

	return &Counters{
		LogsReceived: logsReceived,
		HTTPRequests: httpRequests,
	}
}
