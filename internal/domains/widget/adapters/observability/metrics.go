package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Apurer/go-cart-widget/internal/domains/widget/ports"
)

// Recorder exports controller activity as Prometheus counters.
type Recorder struct {
	events  *prometheus.CounterVec
	renders prometheus.Counter
}

// NewRecorder registers the widget counters on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cart_widget",
			Name:      "events_total",
			Help:      "Controller events by name and outcome.",
		}, []string{"event", "outcome"}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cart_widget",
			Name:      "renders_total",
			Help:      "Full page re-renders triggered by store writes.",
		}),
	}
	for _, c := range []prometheus.Collector{r.events, r.renders} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) RecordEvent(event, outcome string) {
	r.events.WithLabelValues(event, outcome).Inc()
}

func (r *Recorder) RecordRender() {
	r.renders.Inc()
}

var _ ports.EventRecorder = (*Recorder)(nil)
