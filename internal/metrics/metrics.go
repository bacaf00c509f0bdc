package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultValid     = "valid"
	ResultInvalid   = "invalid"
	ResultUnchecked = "unchecked"
)

type Recorder struct {
	validations *prometheus.CounterVec
	decisions   *prometheus.CounterVec
}

// NewRecorder registers collectors in reg
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modcheck",
			Name:      "validations_total",
			Help:      "Number of validated accounts by result.",
		}, []string{"result"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "modcheck",
			Name:      "exception_decisions_total",
			Help:      "Number of checks decided by an exception rule before the modulus comparison.",
		}, []string{"exception"}),
	}

	for _, c := range []prometheus.Collector{r.validations, r.decisions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Recorder) ObserveValidation(result string) {
	r.validations.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveDecision(exception string) {
	r.decisions.WithLabelValues(exception).Inc()
}
