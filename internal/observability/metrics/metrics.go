package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for the chat and lead flows.
type ChatMetrics struct {
	chatRequests   *prometheus.CounterVec
	modelLatency   *prometheus.HistogramVec
	leadsExtracted *prometheus.CounterVec
	leadForwards   *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		chatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "widget",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total chat requests by outcome",
		}, []string{"status"}),
		modelLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "widget",
			Subsystem: "chat",
			Name:      "model_latency_seconds",
			Help:      "Latency of Gemini calls by call kind",
			Buckets:   prometheus.DefBuckets,
		}, []string{"call"}),
		leadsExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "widget",
			Subsystem: "chat",
			Name:      "leads_extracted_total",
			Help:      "Lead extraction attempts by outcome",
		}, []string{"outcome"}),
		leadForwards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "widget",
			Subsystem: "notify",
			Name:      "lead_forwards_total",
			Help:      "Telegram lead notifications by status",
		}, []string{"status"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "widget",
			Subsystem: "chat",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatRequests, m.modelLatency, m.leadsExtracted, m.leadForwards, m.activeSessions)
	return m
}

func (m *ChatMetrics) ObserveRequest(status string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(status).Inc()
}

func (m *ChatMetrics) ObserveModelLatency(call string, seconds float64) {
	if m == nil {
		return
	}
	m.modelLatency.WithLabelValues(call).Observe(seconds)
}

func (m *ChatMetrics) ObserveLeadExtraction(outcome string) {
	if m == nil {
		return
	}
	m.leadsExtracted.WithLabelValues(outcome).Inc()
}

func (m *ChatMetrics) ObserveLeadForward(status string) {
	if m == nil {
		return
	}
	m.leadForwards.WithLabelValues(status).Inc()
}

func (m *ChatMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
