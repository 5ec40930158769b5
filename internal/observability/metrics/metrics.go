package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters for the lead-capture flow.
type LeadMetrics struct {
	leadsCreated  prometheus.Counter
	welcomeEmails *prometheus.CounterVec
	cepLookups    *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		leadsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fretehub",
			Subsystem: "leads",
			Name:      "created_total",
			Help:      "Total leads persisted",
		}),
		welcomeEmails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fretehub",
			Subsystem: "notify",
			Name:      "welcome_email_total",
			Help:      "Welcome emails attempted, by outcome",
		}, []string{"status"}),
		cepLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fretehub",
			Subsystem: "cep",
			Name:      "validation_total",
			Help:      "Postal code validations, by outcome",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsCreated, m.welcomeEmails, m.cepLookups)
	return m
}

func (m *LeadMetrics) ObserveLeadCreated() {
	if m == nil {
		return
	}
	m.leadsCreated.Inc()
}

func (m *LeadMetrics) ObserveWelcomeEmail(status string) {
	if m == nil {
		return
	}
	m.welcomeEmails.WithLabelValues(status).Inc()
}

func (m *LeadMetrics) ObserveCEPValidation(status string) {
	if m == nil {
		return
	}
	m.cepLookups.WithLabelValues(status).Inc()
}
