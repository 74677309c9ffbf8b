package classifier

import "github.com/prometheus/client_golang/prometheus"

var decisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "modelgate",
		Subsystem: "classifier",
		Name:      "decisions_total",
		Help:      "Classification decisions by deciding stage and outcome",
	},
	[]string{"stage", "chat"},
)

func init() {
	prometheus.MustRegister(decisionsTotal)
}
